// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package visibility

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/agentplane/agentplane/common/log"
	"github.com/agentplane/agentplane/common/log/tag"
	"github.com/agentplane/agentplane/common/ptr"
	"github.com/agentplane/agentplane/config"
	"github.com/agentplane/agentplane/logstore"
	"github.com/agentplane/agentplane/orchestrator"
	"github.com/agentplane/agentplane/permission"
)

type engineImpl struct {
	cfg         config.VisibilityConfig
	client      orchestrator.Client
	permissions permission.Store
	logs        logstore.Store
	resolver    *agentVisibilityResolver
	cache       *distinctValueCache
	logger      log.Logger
	now         func() time.Time
}

func NewEngine(
	cfg config.VisibilityConfig,
	client orchestrator.Client,
	permissions permission.Store,
	logs logstore.Store,
	logger log.Logger,
) Engine {
	now := time.Now
	return &engineImpl{
		cfg:         cfg,
		client:      client,
		permissions: permissions,
		logs:        logs,
		resolver:    newAgentVisibilityResolver(permissions),
		cache:       newDistinctValueCache(cfg.DistinctValueTTL, now),
		logger:      logger,
		now:         now,
	}
}

func (e *engineImpl) GetExecution(
	ctx context.Context, caller Caller, executionId string, runId string,
) (*ExecutionProjection, error) {
	if executionId == "" {
		return nil, NewValidationError("executionId is required")
	}

	desc, err := e.client.Describe(ctx, executionId, runId)
	if err != nil {
		if errors.Is(err, orchestrator.ErrExecutionNotFound) {
			return nil, NewNotFoundError(executionId)
		}
		e.logger.Error("describe execution failed",
			tag.ExecutionId(executionId), tag.RunId(runId), tag.Error(err))
		return nil, NewBackendError("describe", err)
	}

	summary := desc.Execution
	// an execution of another tenant is reported as absent, not as forbidden
	if summary.Memo.Get(orchestrator.MemoKeyTenantId) != caller.TenantId {
		return nil, NewNotFoundError(executionId)
	}
	agentName := summary.Memo.Get(orchestrator.MemoKeyAgentName)
	if agentName != "" {
		allowed, err := e.permissions.HasReadPermission(
			ctx, caller.TenantId, caller.UserId, agentName)
		if err != nil {
			return nil, NewBackendError("has-read-permission", err)
		}
		if !allowed {
			return nil, NewPermissionError(agentName)
		}
	}

	// history and liveness are independent of each other, fetch them together
	type historyResult struct {
		events []orchestrator.HistoryEvent
		err    error
	}
	historyCh := make(chan historyResult, 1)
	go func() {
		events, err := e.client.FetchHistory(ctx, executionId, summary.RunId)
		historyCh <- historyResult{events: events, err: err}
	}()

	workerCount := ProbeWorkerLiveness(
		ctx, e.client, desc.TaskQueue, e.cfg.WorkerLivenessWindow, e.now(), e.logger)

	history := <-historyCh
	if history.err != nil {
		e.logger.Error("fetch execution history failed",
			tag.ExecutionId(executionId), tag.RunId(summary.RunId), tag.Error(history.err))
		return nil, NewBackendError("fetch-history", history.err)
	}

	projection := projectionFromSummary(summary)
	projection.TaskQueue = desc.TaskQueue
	projection.CurrentActivity = ProjectCurrentActivity(history.events)
	projection.WorkerCount = workerCount.String()

	e.attachLastLogs(ctx, caller.TenantId, []*ExecutionProjection{projection})
	return projection, nil
}

func (e *engineImpl) ListExecutions(
	ctx context.Context, caller Caller, request ListRequest,
) (*PageResult, error) {
	page, pageSize := NormalizePageRequest(PageRequest{
		PageToken: request.PageToken,
		PageSize:  request.PageSize,
	})

	agents, err := e.resolver.ResolveAgents(ctx, caller, request.AgentName)
	if err != nil {
		return nil, err
	}
	if request.AgentName == "" && len(agents) == 0 {
		// empty visibility is not a fault, it is an empty page
		return &PageResult{Executions: []ExecutionProjection{}}, nil
	}

	criteria := QueryCriteria{
		TenantId:     caller.TenantId,
		Status:       request.Status,
		WorkflowType: request.WorkflowType,
		OwnerUser:    request.OwnerUser,
		IdPostfix:    request.IdPostfix,
	}
	if request.AgentName != "" {
		criteria.AgentName = request.AgentName
	} else {
		criteria.AgentNames = agents
	}
	query := BuildListQuery(criteria)

	fetchLimit := ListFetchLimit(page, pageSize, e.cfg.ListFetchFloor)
	iterator := e.client.ListExecutions(ctx, query, fetchLimit)
	slice, err := PaginateForwardOnly[*orchestrator.ExecutionSummary](iterator, page, pageSize, fetchLimit)
	if err != nil {
		e.logger.Error("list executions failed",
			tag.Tenant(caller.TenantId), tag.Query(query), tag.Page(page), tag.Error(err))
		return nil, NewBackendError("list", err)
	}

	projections := make([]ExecutionProjection, 0, len(slice.Items))
	pointers := make([]*ExecutionProjection, 0, len(slice.Items))
	for _, summary := range slice.Items {
		projections = append(projections, *projectionFromSummary(*summary))
		pointers = append(pointers, &projections[len(projections)-1])
	}
	e.attachLastLogs(ctx, caller.TenantId, pointers)

	result := &PageResult{Executions: projections}
	if slice.HasNextPage {
		result.NextPageToken = ptr.Any(NextPageToken(page))
	}
	return result, nil
}

func (e *engineImpl) GetDistinctTagValues(ctx context.Context, caller Caller) ([]string, error) {
	if values, ok := e.cache.get(caller.TenantId, caller.UserId); ok {
		return values, nil
	}

	agents, err := e.resolver.ResolveAgents(ctx, caller, "")
	if err != nil {
		return nil, err
	}
	if len(agents) == 0 {
		e.cache.put(caller.TenantId, caller.UserId, nil)
		return []string{}, nil
	}

	query := BuildListQuery(QueryCriteria{
		TenantId:   caller.TenantId,
		AgentNames: agents,
	})

	// the scan is capped so a huge tenant cannot make this path unbounded
	seen := map[string]struct{}{}
	iterator := e.client.ListExecutions(ctx, query, e.cfg.DistinctScanLimit)
	scanned := 0
	for scanned < e.cfg.DistinctScanLimit && iterator.HasNext() {
		summary, err := iterator.Next()
		if err != nil {
			e.logger.Error("distinct tag scan failed",
				tag.Tenant(caller.TenantId), tag.Query(query), tag.Error(err))
			return nil, NewBackendError("list", err)
		}
		scanned++
		if v := summary.Memo.Get(orchestrator.MemoKeyIdPostfix); v != "" {
			seen[v] = struct{}{}
		}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)

	e.cache.put(caller.TenantId, caller.UserId, values)
	return values, nil
}

// attachLastLogs enriches projections with the most recent log entry per
// run. Log lookup failures are logged and swallowed: enrichment never fails
// a request and never filters its results.
func (e *engineImpl) attachLastLogs(ctx context.Context, tenantId string, projections []*ExecutionProjection) {
	if len(projections) == 0 {
		return
	}
	runIds := make([]string, 0, len(projections))
	for _, p := range projections {
		runIds = append(runIds, p.RunId)
	}

	lastLogs, err := e.logs.LastLogPerRun(ctx, tenantId, runIds)
	if err != nil {
		e.logger.Warn("last-log lookup failed, returning projections without logs",
			tag.Tenant(tenantId), tag.Error(err))
		return
	}
	for _, p := range projections {
		if entry, ok := lastLogs[p.RunId]; ok {
			entryCopy := entry
			p.LastLog = &entryCopy
		}
	}
}

func projectionFromSummary(summary orchestrator.ExecutionSummary) *ExecutionProjection {
	return &ExecutionProjection{
		ExecutionId:       summary.ExecutionId,
		RunId:             summary.RunId,
		WorkflowType:      summary.WorkflowType,
		TenantId:          summary.Memo.Get(orchestrator.MemoKeyTenantId),
		OwnerUserId:       summary.Memo.Get(orchestrator.MemoKeyOwnerUserId),
		AgentName:         summary.Memo.Get(orchestrator.MemoKeyAgentName),
		Status:            string(summary.Status),
		StartTime:         summary.StartTime,
		ExecutionTime:     summary.ExecutionTime,
		CloseTime:         summary.CloseTime,
		ParentExecutionId: summary.ParentExecutionId,
		ParentRunId:       summary.ParentRunId,
		HistoryLength:     summary.HistoryLength,
	}
}
