// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentplane/agentplane/common/log"
	"github.com/agentplane/agentplane/common/ptr"
	"github.com/agentplane/agentplane/config"
	"github.com/agentplane/agentplane/visibility"
)

type fakeEngine struct {
	projection *visibility.ExecutionProjection
	page       *visibility.PageResult
	values     []string
	err        error

	lastCaller      visibility.Caller
	lastListRequest visibility.ListRequest
}

func (f *fakeEngine) GetExecution(
	_ context.Context, caller visibility.Caller, executionId string, runId string,
) (*visibility.ExecutionProjection, error) {
	f.lastCaller = caller
	if f.err != nil {
		return nil, f.err
	}
	return f.projection, nil
}

func (f *fakeEngine) ListExecutions(
	_ context.Context, caller visibility.Caller, request visibility.ListRequest,
) (*visibility.PageResult, error) {
	f.lastCaller = caller
	f.lastListRequest = request
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

func (f *fakeEngine) GetDistinctTagValues(
	_ context.Context, caller visibility.Caller,
) ([]string, error) {
	f.lastCaller = caller
	if f.err != nil {
		return nil, f.err
	}
	return f.values, nil
}

func newTestService(engine *fakeEngine) Service {
	return NewServiceImpl(config.Config{}, engine, log.NewDevelopmentLogger())
}

func validCaller() CallerIdentity {
	return CallerIdentity{TenantId: "tenant-1", UserId: "user-1"}
}

func TestGetExecutionPassesCallerThrough(t *testing.T) {
	engine := &fakeEngine{
		projection: &visibility.ExecutionProjection{
			ExecutionId: "order-42",
			Status:      "Running",
		},
	}
	svc := newTestService(engine)

	resp, errResp := svc.GetExecution(context.Background(), ExecutionGetRequest{
		Caller:      validCaller(),
		ExecutionId: "order-42",
	})

	require.Nil(t, errResp)
	assert.Equal(t, "order-42", resp.Execution.ExecutionId)
	assert.Equal(t, visibility.Caller{TenantId: "tenant-1", UserId: "user-1"}, engine.lastCaller)
}

func TestGetExecutionRejectsMissingCaller(t *testing.T) {
	svc := newTestService(&fakeEngine{})

	for _, caller := range []CallerIdentity{
		{},
		{TenantId: "tenant-1"},
		{UserId: "user-1"},
	} {
		resp, errResp := svc.GetExecution(context.Background(), ExecutionGetRequest{
			Caller:      caller,
			ExecutionId: "order-42",
		})

		require.Nil(t, resp)
		require.NotNil(t, errResp)
		assert.Equal(t, http.StatusBadRequest, errResp.StatusCode)
	}
}

func TestEngineErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		engineErr      error
		expectedStatus int
		expectedDetail string
	}{
		{
			name:           "validation error",
			engineErr:      visibility.NewValidationError("executionId is required"),
			expectedStatus: http.StatusBadRequest,
			expectedDetail: "executionId is required",
		},
		{
			name:           "permission error",
			engineErr:      visibility.NewPermissionError("billing-agent"),
			expectedStatus: http.StatusForbidden,
			expectedDetail: "caller has no read permission on agent billing-agent",
		},
		{
			name:           "not found error",
			engineErr:      visibility.NewNotFoundError("order-42"),
			expectedStatus: http.StatusNotFound,
			expectedDetail: "execution order-42 does not exist",
		},
		{
			name:           "backend error hides detail",
			engineErr:      visibility.NewBackendError("describe", fmt.Errorf("connection refused")),
			expectedStatus: http.StatusInternalServerError,
			expectedDetail: "internal service error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&fakeEngine{err: tt.engineErr})

			resp, errResp := svc.GetExecution(context.Background(), ExecutionGetRequest{
				Caller:      validCaller(),
				ExecutionId: "order-42",
			})

			require.Nil(t, resp)
			require.NotNil(t, errResp)
			assert.Equal(t, tt.expectedStatus, errResp.StatusCode)
			require.NotNil(t, errResp.Error.Detail)
			assert.Equal(t, tt.expectedDetail, *errResp.Error.Detail)
		})
	}
}

func TestListExecutionsMapsRequestAndResponse(t *testing.T) {
	engine := &fakeEngine{
		page: &visibility.PageResult{
			Executions: []visibility.ExecutionProjection{
				{ExecutionId: "order-1"},
				{ExecutionId: "order-2"},
			},
			NextPageToken: ptr.Any("2"),
		},
	}
	svc := newTestService(engine)

	resp, errResp := svc.ListExecutions(context.Background(), ExecutionListRequest{
		Caller:        validCaller(),
		AgentName:     "billing-agent",
		Status:        "running",
		PageSize:      2,
		NextPageToken: "1",
	})

	require.Nil(t, errResp)
	require.Len(t, resp.Executions, 2)
	assert.True(t, resp.HasNextPage)
	require.NotNil(t, resp.NextPageToken)
	assert.Equal(t, "2", *resp.NextPageToken)

	assert.Equal(t, "billing-agent", engine.lastListRequest.AgentName)
	assert.Equal(t, "running", engine.lastListRequest.Status)
	assert.Equal(t, 2, engine.lastListRequest.PageSize)
	assert.Equal(t, "1", engine.lastListRequest.PageToken)
}

func TestListExecutionsLastPage(t *testing.T) {
	engine := &fakeEngine{
		page: &visibility.PageResult{
			Executions: []visibility.ExecutionProjection{{ExecutionId: "order-1"}},
		},
	}
	svc := newTestService(engine)

	resp, errResp := svc.ListExecutions(context.Background(), ExecutionListRequest{
		Caller: validCaller(),
	})

	require.Nil(t, errResp)
	assert.False(t, resp.HasNextPage)
	assert.Nil(t, resp.NextPageToken)
}

func TestGetDistinctTagValues(t *testing.T) {
	engine := &fakeEngine{values: []string{"checkout", "refund"}}
	svc := newTestService(engine)

	resp, errResp := svc.GetDistinctTagValues(context.Background(), DistinctTagValuesRequest{
		Caller: validCaller(),
	})

	require.Nil(t, errResp)
	assert.Equal(t, []string{"checkout", "refund"}, resp.Values)
	assert.Equal(t, visibility.Caller{TenantId: "tenant-1", UserId: "user-1"}, engine.lastCaller)
}
