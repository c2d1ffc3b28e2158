// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"context"
	"errors"
)

// ErrExecutionNotFound is returned when the backend reports that the
// requested execution does not exist
var ErrExecutionNotFound = errors.New("execution not found in orchestration backend")

// Client is the boundary to the remote workflow-orchestration backend.
// All operations are reads; the backend owns every piece of state behind them.
type Client interface {
	// Describe returns the current view of one execution.
	// runId is optional, empty string means the latest run.
	Describe(ctx context.Context, executionId string, runId string) (*DescribeResponse, error)
	// FetchHistory returns the full ordered history-event list of one execution
	FetchHistory(ctx context.Context, executionId string, runId string) ([]HistoryEvent, error)
	// ListExecutions returns a forward-only iterator over executions matching
	// the query. The backend supports no total count and no offset seeking;
	// fetchLimit caps how many items the iterator will yield in total.
	ListExecutions(ctx context.Context, query string, fetchLimit int) ExecutionIterator
	// DescribeTaskQueue returns poller reachability info for a task queue
	DescribeTaskQueue(ctx context.Context, taskQueue string) (*TaskQueueInfo, error)
}

// ExecutionIterator is a forward-only cursor over a listing result.
// HasNext may block on a remote fetch; a fetch failure is surfaced by the
// following Next call.
type ExecutionIterator interface {
	HasNext() bool
	Next() (*ExecutionSummary, error)
}
