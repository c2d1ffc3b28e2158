// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/agentplane/agentplane/common/log"
	"github.com/agentplane/agentplane/common/log/tag"
	"github.com/agentplane/agentplane/config"
)

const PathDescribeExecution = "/api/v1/orchestrator/execution/describe"
const PathFetchExecutionHistory = "/api/v1/orchestrator/execution/history"
const PathListExecutions = "/api/v1/orchestrator/execution/list"
const PathDescribeTaskQueue = "/api/v1/orchestrator/task-queue/describe"

type httpClient struct {
	address        string
	requestTimeout time.Duration
	maxRetries     uint64
	retryInterval  time.Duration
	client         *http.Client
	logger         log.Logger
}

// NewHTTPClient returns a Client talking JSON over HTTP to the orchestration
// backend. Every call is bounded by the configured request timeout.
// All the operations are idempotent reads, so transient failures are retried
// with a bounded constant backoff.
func NewHTTPClient(cfg config.OrchestratorConfig, logger log.Logger) Client {
	return &httpClient{
		address:        cfg.Address,
		requestTimeout: cfg.RequestTimeout,
		maxRetries:     uint64(cfg.MaxRetries),
		retryInterval:  cfg.RetryInterval,
		client:         &http.Client{},
		logger:         logger,
	}
}

type (
	describeExecutionRequest struct {
		ExecutionId string `json:"executionId"`
		RunId       string `json:"runId,omitempty"`
	}

	fetchHistoryRequest struct {
		ExecutionId   string `json:"executionId"`
		RunId         string `json:"runId,omitempty"`
		NextPageToken string `json:"nextPageToken,omitempty"`
	}

	fetchHistoryResponse struct {
		Events        []HistoryEvent `json:"events"`
		NextPageToken string         `json:"nextPageToken,omitempty"`
	}

	listExecutionsRequest struct {
		Query         string `json:"query"`
		PageSize      int    `json:"pageSize"`
		NextPageToken string `json:"nextPageToken,omitempty"`
	}

	listExecutionsResponse struct {
		Executions    []ExecutionSummary `json:"executions"`
		NextPageToken string             `json:"nextPageToken,omitempty"`
	}

	describeTaskQueueRequest struct {
		TaskQueue string `json:"taskQueue"`
	}
)

func (c *httpClient) Describe(ctx context.Context, executionId string, runId string) (*DescribeResponse, error) {
	var resp DescribeResponse
	err := c.post(ctx, PathDescribeExecution, describeExecutionRequest{
		ExecutionId: executionId,
		RunId:       runId,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) FetchHistory(ctx context.Context, executionId string, runId string) ([]HistoryEvent, error) {
	var events []HistoryEvent
	pageToken := ""
	for {
		var resp fetchHistoryResponse
		err := c.post(ctx, PathFetchExecutionHistory, fetchHistoryRequest{
			ExecutionId:   executionId,
			RunId:         runId,
			NextPageToken: pageToken,
		}, &resp)
		if err != nil {
			return nil, err
		}
		events = append(events, resp.Events...)
		if resp.NextPageToken == "" {
			return events, nil
		}
		pageToken = resp.NextPageToken
	}
}

func (c *httpClient) ListExecutions(ctx context.Context, query string, fetchLimit int) ExecutionIterator {
	return &listIterator{
		client:     c,
		ctx:        ctx,
		query:      query,
		fetchLimit: fetchLimit,
	}
}

func (c *httpClient) DescribeTaskQueue(ctx context.Context, taskQueue string) (*TaskQueueInfo, error) {
	var resp TaskQueueInfo
	err := c.post(ctx, PathDescribeTaskQueue, describeTaskQueueRequest{
		TaskQueue: taskQueue,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) post(ctx context.Context, path string, reqBody any, respBody any) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewConstant(c.retryInterval))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()

		httpReq, err := http.NewRequestWithContext(
			callCtx, http.MethodPost, c.address+path, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		httpReq.Header.Set("Content-Type", "application/json")

		httpResp, err := c.client.Do(httpReq)
		if err != nil {
			// network-level failure, worth another attempt
			return retry.RetryableError(err)
		}
		defer httpResp.Body.Close()

		switch {
		case httpResp.StatusCode == http.StatusOK:
			return json.NewDecoder(httpResp.Body).Decode(respBody)
		case httpResp.StatusCode == http.StatusNotFound:
			return ErrExecutionNotFound
		case httpResp.StatusCode >= http.StatusInternalServerError:
			body, _ := io.ReadAll(httpResp.Body)
			c.logger.Warn("orchestrator call failed, will retry",
				tag.Value(path), tag.StatusCode(httpResp.StatusCode), tag.Message(string(body)))
			return retry.RetryableError(
				fmt.Errorf("orchestrator call %v failed with status %v", path, httpResp.StatusCode))
		default:
			body, _ := io.ReadAll(httpResp.Body)
			return fmt.Errorf("orchestrator call %v rejected with status %v: %v",
				path, httpResp.StatusCode, string(body))
		}
	})
}

// listIterator walks the backend's native cursor, fetching pages lazily
// until fetchLimit items were yielded or the cursor is exhausted
type listIterator struct {
	client     *httpClient
	ctx        context.Context
	query      string
	fetchLimit int

	buffer    []ExecutionSummary
	pos       int
	yielded   int
	pageToken string
	started   bool
	finished  bool
	err       error
}

func (it *listIterator) HasNext() bool {
	if it.err != nil {
		// let the next Next() call surface the error
		return true
	}
	if it.yielded >= it.fetchLimit {
		return false
	}
	if it.pos < len(it.buffer) {
		return true
	}
	if it.finished {
		return false
	}
	it.fetchNextPage()
	return it.err != nil || it.pos < len(it.buffer)
}

func (it *listIterator) Next() (*ExecutionSummary, error) {
	if it.err != nil {
		return nil, it.err
	}
	if !it.HasNext() {
		return nil, fmt.Errorf("iterator has no more items")
	}
	if it.err != nil {
		return nil, it.err
	}
	item := it.buffer[it.pos]
	it.pos++
	it.yielded++
	return &item, nil
}

func (it *listIterator) fetchNextPage() {
	if it.started && it.pageToken == "" {
		it.finished = true
		return
	}
	remaining := it.fetchLimit - it.yielded

	var resp listExecutionsResponse
	err := it.client.post(it.ctx, PathListExecutions, listExecutionsRequest{
		Query:         it.query,
		PageSize:      remaining,
		NextPageToken: it.pageToken,
	}, &resp)
	if err != nil {
		it.err = err
		it.finished = true
		return
	}

	it.started = true
	it.buffer = resp.Executions
	it.pos = 0
	it.pageToken = resp.NextPageToken
	if it.pageToken == "" || len(resp.Executions) == 0 {
		it.finished = true
	}
}
