// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/agentplane/agentplane/common/log"
	"github.com/agentplane/agentplane/common/log/tag"
	"github.com/agentplane/agentplane/config"
	"github.com/agentplane/agentplane/visibility"
)

type serviceImpl struct {
	cfg    config.Config
	engine visibility.Engine
	logger log.Logger
}

func NewServiceImpl(cfg config.Config, engine visibility.Engine, logger log.Logger) Service {
	return &serviceImpl{
		cfg:    cfg,
		engine: engine,
		logger: logger,
	}
}

func (s serviceImpl) GetExecution(
	ctx context.Context, request ExecutionGetRequest,
) (*ExecutionGetResponse, *ErrorWithStatus) {
	if errResp := validateCaller(request.Caller); errResp != nil {
		return nil, errResp
	}

	projection, err := s.engine.GetExecution(
		ctx, callerOf(request.Caller), request.ExecutionId, request.RunId)
	if err != nil {
		return nil, s.handleEngineError(err)
	}
	return &ExecutionGetResponse{
		Execution: *projection,
	}, nil
}

func (s serviceImpl) ListExecutions(
	ctx context.Context, request ExecutionListRequest,
) (*ExecutionListResponse, *ErrorWithStatus) {
	if errResp := validateCaller(request.Caller); errResp != nil {
		return nil, errResp
	}

	result, err := s.engine.ListExecutions(ctx, callerOf(request.Caller), visibility.ListRequest{
		AgentName:    request.AgentName,
		Status:       request.Status,
		WorkflowType: request.WorkflowType,
		OwnerUser:    request.OwnerUser,
		IdPostfix:    request.IdPostfix,
		PageSize:     request.PageSize,
		PageToken:    request.NextPageToken,
	})
	if err != nil {
		return nil, s.handleEngineError(err)
	}
	return &ExecutionListResponse{
		Executions:    result.Executions,
		NextPageToken: result.NextPageToken,
		HasNextPage:   result.HasNextPage(),
	}, nil
}

func (s serviceImpl) GetDistinctTagValues(
	ctx context.Context, request DistinctTagValuesRequest,
) (*DistinctTagValuesResponse, *ErrorWithStatus) {
	if errResp := validateCaller(request.Caller); errResp != nil {
		return nil, errResp
	}

	values, err := s.engine.GetDistinctTagValues(ctx, callerOf(request.Caller))
	if err != nil {
		return nil, s.handleEngineError(err)
	}
	return &DistinctTagValuesResponse{
		Values: values,
	}, nil
}

func validateCaller(caller CallerIdentity) *ErrorWithStatus {
	if caller.TenantId == "" || caller.UserId == "" {
		return NewErrorWithStatus(http.StatusBadRequest, "caller tenantId and userId are required")
	}
	return nil
}

func callerOf(caller CallerIdentity) visibility.Caller {
	return visibility.Caller{
		TenantId: caller.TenantId,
		UserId:   caller.UserId,
	}
}

// handleEngineError maps the engine error taxonomy onto HTTP statuses.
// Backend failures were already logged with full context at the call
// boundary; callers get a generic message, not the underlying detail.
func (s serviceImpl) handleEngineError(err error) *ErrorWithStatus {
	var validationErr *visibility.ValidationError
	if errors.As(err, &validationErr) {
		return NewErrorWithStatus(http.StatusBadRequest, validationErr.Error())
	}
	var permissionErr *visibility.PermissionError
	if errors.As(err, &permissionErr) {
		return NewErrorWithStatus(http.StatusForbidden, permissionErr.Error())
	}
	var notFoundErr *visibility.NotFoundError
	if errors.As(err, &notFoundErr) {
		return NewErrorWithStatus(http.StatusNotFound, notFoundErr.Error())
	}
	s.logger.Error("unknown error on operation", tag.Error(err))
	return NewErrorWithStatus(http.StatusInternalServerError, "internal service error")
}
