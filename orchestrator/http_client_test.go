// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentplane/agentplane/common/log"
	"github.com/agentplane/agentplane/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewHTTPClient(config.OrchestratorConfig{
		Address:        server.URL,
		RequestTimeout: 5 * time.Second,
		MaxRetries:     2,
		RetryInterval:  time.Millisecond,
	}, log.NewDevelopmentLogger())
}

func TestDescribeExecution(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, PathDescribeExecution, r.URL.Path)
		var req describeExecutionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "exec-1", req.ExecutionId)

		resp := DescribeResponse{
			Execution: ExecutionSummary{
				ExecutionId: "exec-1",
				RunId:       "run-1",
				Status:      ExecutionStatusRunning,
			},
			TaskQueue: "agent-tasks",
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	})

	resp, err := client.Describe(context.Background(), "exec-1", "")

	require.NoError(t, err)
	assert.Equal(t, "run-1", resp.Execution.RunId)
	assert.Equal(t, "agent-tasks", resp.TaskQueue)
}

func TestDescribeExecutionNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Describe(context.Background(), "exec-unknown", "")

	assert.ErrorIs(t, err, ErrExecutionNotFound)
}

func TestDescribeExecutionRetriesTransientFailure(t *testing.T) {
	attempts := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		require.NoError(t, json.NewEncoder(w).Encode(DescribeResponse{
			Execution: ExecutionSummary{ExecutionId: "exec-1", RunId: "run-1"},
		}))
	})

	resp, err := client.Describe(context.Background(), "exec-1", "")

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, "run-1", resp.Execution.RunId)
}

func TestDescribeExecutionDoesNotRetryRejection(t *testing.T) {
	attempts := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := client.Describe(context.Background(), "exec-1", "")

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestFetchHistoryFollowsPageTokens(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req fetchHistoryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.NextPageToken == "" {
			require.NoError(t, json.NewEncoder(w).Encode(fetchHistoryResponse{
				Events:        []HistoryEvent{{EventId: 1, EventType: EventTypeWorkflowExecutionStarted}},
				NextPageToken: "page-2",
			}))
			return
		}
		require.Equal(t, "page-2", req.NextPageToken)
		require.NoError(t, json.NewEncoder(w).Encode(fetchHistoryResponse{
			Events: []HistoryEvent{{EventId: 2, EventType: EventTypeActivityTaskScheduled}},
		}))
	})

	events, err := client.FetchHistory(context.Background(), "exec-1", "run-1")

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int64(1), events[0].EventId)
	assert.Equal(t, int64(2), events[1].EventId)
}

func TestListExecutionsIteratorWalksBackendCursor(t *testing.T) {
	// the backend cuts pages of 2, the iterator should hide that
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req listExecutionsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		start := 0
		if req.NextPageToken != "" {
			parsed, err := strconv.Atoi(req.NextPageToken)
			require.NoError(t, err)
			start = parsed
		}

		var resp listExecutionsResponse
		for i := start; i < start+2 && i < 5; i++ {
			resp.Executions = append(resp.Executions, ExecutionSummary{
				ExecutionId: "exec-" + strconv.Itoa(i),
			})
		}
		if start+2 < 5 {
			resp.NextPageToken = strconv.Itoa(start + 2)
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	})

	iterator := client.ListExecutions(context.Background(), "TenantId = 't1'", 10)

	var got []string
	for iterator.HasNext() {
		summary, err := iterator.Next()
		require.NoError(t, err)
		got = append(got, summary.ExecutionId)
	}
	assert.Equal(t, []string{"exec-0", "exec-1", "exec-2", "exec-3", "exec-4"}, got)
}

func TestListExecutionsIteratorStopsAtFetchLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req listExecutionsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := listExecutionsResponse{NextPageToken: "more"}
		for i := 0; i < req.PageSize; i++ {
			resp.Executions = append(resp.Executions, ExecutionSummary{
				ExecutionId: "exec",
			})
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	})

	iterator := client.ListExecutions(context.Background(), "TenantId = 't1'", 3)

	count := 0
	for iterator.HasNext() {
		_, err := iterator.Next()
		require.NoError(t, err)
		count++
	}
	assert.Equal(t, 3, count)
}

func TestListExecutionsIteratorSurfacesFetchError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	iterator := client.ListExecutions(context.Background(), "TenantId = 't1'", 10)

	require.True(t, iterator.HasNext())
	_, err := iterator.Next()
	assert.Error(t, err)
}

func TestDescribeTaskQueue(t *testing.T) {
	lastAccess := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, PathDescribeTaskQueue, r.URL.Path)
		require.NoError(t, json.NewEncoder(w).Encode(TaskQueueInfo{
			Pollers: []PollerInfo{{Identity: "w1", LastAccessTime: lastAccess}},
		}))
	})

	info, err := client.DescribeTaskQueue(context.Background(), "agent-tasks")

	require.NoError(t, err)
	require.Len(t, info.Pollers, 1)
	assert.Equal(t, "w1", info.Pollers[0].Identity)
	assert.True(t, info.Pollers[0].LastAccessTime.Equal(lastAccess))
}
