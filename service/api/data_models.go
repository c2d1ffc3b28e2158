// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"github.com/agentplane/agentplane/visibility"
)

type (
	ApiErrorResponse struct {
		Detail *string `json:"detail,omitempty"`
	}

	// caller identity is injected by the upstream gateway after token
	// validation; this service trusts it as-is
	CallerIdentity struct {
		TenantId string `json:"tenantId"`
		UserId   string `json:"userId"`
	}

	ExecutionGetRequest struct {
		Caller      CallerIdentity `json:"caller"`
		ExecutionId string         `json:"executionId"`
		RunId       string         `json:"runId,omitempty"`
	}

	ExecutionGetResponse struct {
		Execution visibility.ExecutionProjection `json:"execution"`
	}

	ExecutionListRequest struct {
		Caller        CallerIdentity `json:"caller"`
		AgentName     string         `json:"agentName,omitempty"`
		Status        string         `json:"status,omitempty"`
		WorkflowType  string         `json:"workflowType,omitempty"`
		OwnerUser     string         `json:"ownerUser,omitempty"`
		IdPostfix     string         `json:"idPostfix,omitempty"`
		PageSize      int            `json:"pageSize,omitempty"`
		NextPageToken string         `json:"nextPageToken,omitempty"`
	}

	ExecutionListResponse struct {
		Executions    []visibility.ExecutionProjection `json:"executions"`
		NextPageToken *string                          `json:"nextPageToken,omitempty"`
		HasNextPage   bool                             `json:"hasNextPage"`
	}

	DistinctTagValuesRequest struct {
		Caller CallerIdentity `json:"caller"`
	}

	DistinctTagValuesResponse struct {
		Values []string `json:"values"`
	}
)
