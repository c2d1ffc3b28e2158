// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"time"
)

type (
	// ExecutionStatus is the lifecycle status reported by the orchestration backend
	ExecutionStatus string

	// EventType is the type of a history event
	EventType string

	// Memo is the key-value metadata attached to an execution at start time.
	// The control plane writes ownership info into it; older executions may
	// miss keys, readers must tolerate absent entries.
	Memo map[string]string

	// HistoryEvent is one immutable record of an execution's append-only history
	HistoryEvent struct {
		EventId          int64     `json:"eventId"`
		EventType        EventType `json:"eventType"`
		EventTime        time.Time `json:"eventTime"`
		ActivityType     string    `json:"activityType,omitempty"`
		ActivityId       string    `json:"activityId,omitempty"`
		ScheduledEventId int64     `json:"scheduledEventId,omitempty"`
	}

	// ExecutionSummary is what the backend listing API returns per execution
	ExecutionSummary struct {
		ExecutionId       string          `json:"executionId"`
		RunId             string          `json:"runId"`
		WorkflowType      string          `json:"workflowType"`
		Status            ExecutionStatus `json:"status"`
		Memo              Memo            `json:"memo,omitempty"`
		HistoryLength     int64           `json:"historyLength"`
		StartTime         *time.Time      `json:"startTime,omitempty"`
		ExecutionTime     *time.Time      `json:"executionTime,omitempty"`
		CloseTime         *time.Time      `json:"closeTime,omitempty"`
		ParentExecutionId *string         `json:"parentExecutionId,omitempty"`
		ParentRunId       *string         `json:"parentRunId,omitempty"`
	}

	// DescribeResponse is the backend's describe result for one execution
	DescribeResponse struct {
		Execution ExecutionSummary `json:"execution"`
		TaskQueue string           `json:"taskQueue"`
	}

	// PollerInfo describes one worker that recently polled a task queue
	PollerInfo struct {
		Identity       string    `json:"identity"`
		LastAccessTime time.Time `json:"lastAccessTime"`
	}

	// TaskQueueInfo is the backend's describe result for one task queue
	TaskQueueInfo struct {
		Pollers []PollerInfo `json:"pollers"`
	}
)

const (
	ExecutionStatusRunning        ExecutionStatus = "Running"
	ExecutionStatusCompleted      ExecutionStatus = "Completed"
	ExecutionStatusFailed         ExecutionStatus = "Failed"
	ExecutionStatusCanceled       ExecutionStatus = "Canceled"
	ExecutionStatusTerminated     ExecutionStatus = "Terminated"
	ExecutionStatusContinuedAsNew ExecutionStatus = "ContinuedAsNew"
	ExecutionStatusTimedOut       ExecutionStatus = "TimedOut"
)

const (
	EventTypeWorkflowExecutionStarted        EventType = "WorkflowExecutionStarted"
	EventTypeWorkflowExecutionCompleted      EventType = "WorkflowExecutionCompleted"
	EventTypeWorkflowExecutionFailed         EventType = "WorkflowExecutionFailed"
	EventTypeWorkflowExecutionCanceled       EventType = "WorkflowExecutionCanceled"
	EventTypeWorkflowExecutionTerminated     EventType = "WorkflowExecutionTerminated"
	EventTypeWorkflowExecutionContinuedAsNew EventType = "WorkflowExecutionContinuedAsNew"
	EventTypeWorkflowExecutionTimedOut       EventType = "WorkflowExecutionTimedOut"

	EventTypeActivityTaskScheduled EventType = "ActivityTaskScheduled"
	EventTypeActivityTaskStarted   EventType = "ActivityTaskStarted"
	EventTypeActivityTaskCompleted EventType = "ActivityTaskCompleted"
	EventTypeActivityTaskFailed    EventType = "ActivityTaskFailed"
	EventTypeActivityTaskTimedOut  EventType = "ActivityTaskTimedOut"
	EventTypeActivityTaskCanceled  EventType = "ActivityTaskCanceled"
)

// memo keys written by the control plane at execution start
const (
	MemoKeyTenantId    = "tenantId"
	MemoKeyOwnerUserId = "ownerUserId"
	MemoKeyAgentName   = "agentName"
	MemoKeyIdPostfix   = "idPostfix"
)

// IsWorkflowClose returns true for workflow-level terminal events
func (t EventType) IsWorkflowClose() bool {
	switch t {
	case EventTypeWorkflowExecutionCompleted,
		EventTypeWorkflowExecutionFailed,
		EventTypeWorkflowExecutionCanceled,
		EventTypeWorkflowExecutionTerminated,
		EventTypeWorkflowExecutionContinuedAsNew,
		EventTypeWorkflowExecutionTimedOut:
		return true
	}
	return false
}

// IsActivityResolution returns true for events that resolve a scheduled
// activity: any correlated start, completion, failure, timeout or cancel
func (t EventType) IsActivityResolution() bool {
	switch t {
	case EventTypeActivityTaskStarted,
		EventTypeActivityTaskCompleted,
		EventTypeActivityTaskFailed,
		EventTypeActivityTaskTimedOut,
		EventTypeActivityTaskCanceled:
		return true
	}
	return false
}

// Get returns the memo value for key, or empty string when absent
func (m Memo) Get(key string) string {
	if m == nil {
		return ""
	}
	return m[key]
}
