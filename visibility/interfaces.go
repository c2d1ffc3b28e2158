// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package visibility

import (
	"context"
)

// Engine answers what agent executions exist, what they are doing right now
// and who may see them, on top of an orchestration backend that natively
// offers none of page-number pagination, current-activity projection or
// permission-aware filtering
type Engine interface {
	// GetExecution returns the projection of one execution.
	// runId is optional, empty string means the latest run.
	GetExecution(ctx context.Context, caller Caller, executionId string, runId string) (*ExecutionProjection, error)
	// ListExecutions returns one page of projections matching the filters
	ListExecutions(ctx context.Context, caller Caller, request ListRequest) (*PageResult, error)
	// GetDistinctTagValues returns the distinct id-postfix tag values across
	// the executions visible to the caller, sorted, cached per (tenant, user)
	GetDistinctTagValues(ctx context.Context, caller Caller) ([]string, error)
}
