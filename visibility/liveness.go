// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package visibility

import (
	"context"
	"strconv"
	"time"

	"github.com/agentplane/agentplane/common/log"
	"github.com/agentplane/agentplane/common/log/tag"
	"github.com/agentplane/agentplane/orchestrator"
)

// WorkerCountUnavailable is rendered when the probe could not reach the
// backend
const WorkerCountUnavailable = "N/A"

// WorkerCount is the result of a liveness probe. It is either a real count
// or degraded; it is never an error, which makes the non-fatal contract of
// the probe explicit in the type.
type WorkerCount struct {
	degraded bool
	count    int
}

func OkWorkerCount(count int) WorkerCount {
	return WorkerCount{count: count}
}

func DegradedWorkerCount() WorkerCount {
	return WorkerCount{degraded: true}
}

func (w WorkerCount) Degraded() bool {
	return w.degraded
}

func (w WorkerCount) String() string {
	if w.degraded {
		return WorkerCountUnavailable
	}
	return strconv.Itoa(w.count)
}

// ProbeWorkerLiveness counts the workers that polled the task queue within
// the trailing window before now. A failed probe degrades to the sentinel:
// liveness is best-effort telemetry and must never fail the enclosing
// request.
func ProbeWorkerLiveness(
	ctx context.Context,
	client orchestrator.Client,
	taskQueue string,
	window time.Duration,
	now time.Time,
	logger log.Logger,
) WorkerCount {
	info, err := client.DescribeTaskQueue(ctx, taskQueue)
	if err != nil {
		logger.Warn("worker liveness probe failed, degrading to sentinel",
			tag.TaskQueue(taskQueue), tag.Error(err))
		return DegradedWorkerCount()
	}

	cutoff := now.Add(-window)
	active := 0
	for _, poller := range info.Pollers {
		if poller.LastAccessTime.After(cutoff) {
			active++
		}
	}
	return OkWorkerCount(active)
}
