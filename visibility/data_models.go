// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package visibility

import (
	"time"

	"github.com/agentplane/agentplane/logstore"
)

type (
	// Caller identifies who is asking. Token validation happened upstream;
	// by the time a request reaches the engine the identity is trusted.
	Caller struct {
		TenantId string
		UserId   string
	}

	// QueryCriteria is the set of optional filters of a listing query.
	// TenantId is always present and always renders as the first predicate.
	QueryCriteria struct {
		TenantId     string
		AgentName    string
		AgentNames   []string
		Status       string
		WorkflowType string
		OwnerUser    string
		IdPostfix    string
	}

	// CurrentActivity is the most recent unresolved scheduled activity of an
	// execution, derived from history, never stored
	CurrentActivity struct {
		ActivityType string `json:"activityType"`
		ActivityId   string `json:"activityId"`
	}

	// ExecutionProjection is the read-only view of one workflow instance,
	// assembled per request and never persisted
	ExecutionProjection struct {
		ExecutionId       string             `json:"executionId"`
		RunId             string             `json:"runId"`
		WorkflowType      string             `json:"workflowType"`
		TenantId          string             `json:"tenantId"`
		OwnerUserId       string             `json:"ownerUserId,omitempty"`
		AgentName         string             `json:"agentName,omitempty"`
		TaskQueue         string             `json:"taskQueue,omitempty"`
		Status            string             `json:"status"`
		StartTime         *time.Time         `json:"startTime,omitempty"`
		ExecutionTime     *time.Time         `json:"executionTime,omitempty"`
		CloseTime         *time.Time         `json:"closeTime,omitempty"`
		ParentExecutionId *string            `json:"parentExecutionId,omitempty"`
		ParentRunId       *string            `json:"parentRunId,omitempty"`
		HistoryLength     int64              `json:"historyLength"`
		CurrentActivity   *CurrentActivity   `json:"currentActivity,omitempty"`
		WorkerCount       string             `json:"workerCount,omitempty"`
		LastLog           *logstore.LogEntry `json:"lastLog,omitempty"`
	}

	// PageRequest asks for a 1-based page of a listing result. An empty
	// PageToken means the first page; the token format is owned by the engine
	// and opaque to callers.
	PageRequest struct {
		PageToken string
		PageSize  int
	}

	// PageResult is one page of execution projections
	PageResult struct {
		Executions    []ExecutionProjection `json:"executions"`
		NextPageToken *string               `json:"nextPageToken,omitempty"`
	}

	// ListRequest carries the caller-supplied filters plus paging of a
	// listing call
	ListRequest struct {
		AgentName    string
		Status       string
		WorkflowType string
		OwnerUser    string
		IdPostfix    string
		PageSize     int
		PageToken    string
	}
)

// HasNextPage is true exactly when a next-page token exists
func (p *PageResult) HasNextPage() bool {
	return p.NextPageToken != nil
}
