// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package visibility

import (
	"context"
	"fmt"

	"github.com/agentplane/agentplane/logstore"
	"github.com/agentplane/agentplane/orchestrator"
)

type fakeOrchestratorClient struct {
	describeResp *orchestrator.DescribeResponse
	describeErr  error

	history    []orchestrator.HistoryEvent
	historyErr error

	summaries []orchestrator.ExecutionSummary
	listErr   error

	taskQueueInfo *orchestrator.TaskQueueInfo
	taskQueueErr  error

	listCalls     int
	lastListQuery string
	lastFetchLimit int
}

func (f *fakeOrchestratorClient) Describe(
	_ context.Context, _ string, _ string,
) (*orchestrator.DescribeResponse, error) {
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	return f.describeResp, nil
}

func (f *fakeOrchestratorClient) FetchHistory(
	_ context.Context, _ string, _ string,
) ([]orchestrator.HistoryEvent, error) {
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.history, nil
}

func (f *fakeOrchestratorClient) ListExecutions(
	_ context.Context, query string, fetchLimit int,
) orchestrator.ExecutionIterator {
	f.listCalls++
	f.lastListQuery = query
	f.lastFetchLimit = fetchLimit
	return &fakeExecutionIterator{
		items:      f.summaries,
		fetchLimit: fetchLimit,
		err:        f.listErr,
	}
}

func (f *fakeOrchestratorClient) DescribeTaskQueue(
	_ context.Context, _ string,
) (*orchestrator.TaskQueueInfo, error) {
	if f.taskQueueErr != nil {
		return nil, f.taskQueueErr
	}
	return f.taskQueueInfo, nil
}

type fakeExecutionIterator struct {
	items      []orchestrator.ExecutionSummary
	fetchLimit int
	pos        int
	err        error
}

func (it *fakeExecutionIterator) HasNext() bool {
	if it.err != nil {
		return true
	}
	return it.pos < len(it.items) && it.pos < it.fetchLimit
}

func (it *fakeExecutionIterator) Next() (*orchestrator.ExecutionSummary, error) {
	if it.err != nil {
		return nil, it.err
	}
	if !it.HasNext() {
		return nil, fmt.Errorf("iterator has no more items")
	}
	item := it.items[it.pos]
	it.pos++
	return &item, nil
}

type fakePermissionStore struct {
	// grants maps tenantId/userId to the readable agent names
	grants map[string][]string
	err    error
}

func grantKey(tenantId, userId string) string {
	return tenantId + "/" + userId
}

func (f *fakePermissionStore) HasReadPermission(
	_ context.Context, tenantId string, userId string, agentName string,
) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, agent := range f.grants[grantKey(tenantId, userId)] {
		if agent == agentName {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePermissionStore) ListReadableAgents(
	_ context.Context, tenantId string, userId string,
) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.grants[grantKey(tenantId, userId)], nil
}

func (f *fakePermissionStore) Close() error {
	return nil
}

type fakeLogStore struct {
	entries map[string]logstore.LogEntry
	err     error
	calls   int
}

func (f *fakeLogStore) LastLogPerRun(
	_ context.Context, _ string, runIds []string,
) (map[string]logstore.LogEntry, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	result := map[string]logstore.LogEntry{}
	for _, runId := range runIds {
		if entry, ok := f.entries[runId]; ok {
			result[runId] = entry
		}
	}
	return result, nil
}

func (f *fakeLogStore) Close() error {
	return nil
}
