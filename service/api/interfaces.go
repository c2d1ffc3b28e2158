// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
)

type Server interface {
	// Start will start running on the background
	Start() error
	Stop(ctx context.Context) error
}

// Service is the interface of API service, which decoupled from REST server framework like Gin
// So that users can choose to use other REST frameworks to serve requests
type Service interface {
	GetExecution(ctx context.Context, request ExecutionGetRequest) (
		resp *ExecutionGetResponse, err *ErrorWithStatus)
	ListExecutions(ctx context.Context, request ExecutionListRequest) (
		resp *ExecutionListResponse, err *ErrorWithStatus)
	GetDistinctTagValues(ctx context.Context, request DistinctTagValuesRequest) (
		resp *DistinctTagValuesResponse, err *ErrorWithStatus)
}
