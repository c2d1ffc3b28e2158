// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package visibility

import (
	"github.com/agentplane/agentplane/orchestrator"
)

// SpanFuncs describes the open/close structure of an event stream: begin
// events open a span, end events close the begin event they reference, and a
// barrier event means nothing before it can still be open. Keeping the
// structure in funcs lets the matcher work over any event pairing.
type SpanFuncs[E any] struct {
	IsBegin   func(E) bool
	IsEnd     func(E) bool
	IsBarrier func(E) bool
	BeginId   func(E) int64
	EndRef    func(E) int64
}

// LastOpenSpan scans the events in reverse chronological order for the most
// recent begin event without a later end event referencing it. The reverse
// scan is deliberate: the caller wants the newest unresolved span, not the
// oldest, and recent history is where it lives.
func LastOpenSpan[E any](events []E, funcs SpanFuncs[E]) (int, bool) {
	for i := len(events) - 1; i >= 0; i-- {
		event := events[i]
		if funcs.IsBarrier(event) {
			// nothing can stay open across a barrier
			return 0, false
		}
		if !funcs.IsBegin(event) {
			continue
		}
		beginId := funcs.BeginId(event)
		resolved := false
		for j := i + 1; j < len(events); j++ {
			if funcs.IsEnd(events[j]) && funcs.EndRef(events[j]) == beginId {
				resolved = true
				break
			}
		}
		if !resolved {
			return i, true
		}
	}
	return 0, false
}

var activitySpanFuncs = SpanFuncs[orchestrator.HistoryEvent]{
	IsBegin: func(e orchestrator.HistoryEvent) bool {
		return e.EventType == orchestrator.EventTypeActivityTaskScheduled
	},
	IsEnd: func(e orchestrator.HistoryEvent) bool {
		return e.EventType.IsActivityResolution()
	},
	IsBarrier: func(e orchestrator.HistoryEvent) bool {
		return e.EventType.IsWorkflowClose()
	},
	BeginId: func(e orchestrator.HistoryEvent) int64 {
		return e.EventId
	},
	EndRef: func(e orchestrator.HistoryEvent) int64 {
		return e.ScheduledEventId
	},
}

// ProjectCurrentActivity reconstructs the current pending activity of an
// execution from its full ordered history: the most recent scheduled
// activity that no later start/completion/failure event references. A closed
// workflow has no pending activity by definition.
func ProjectCurrentActivity(events []orchestrator.HistoryEvent) *CurrentActivity {
	idx, found := LastOpenSpan(events, activitySpanFuncs)
	if !found {
		return nil
	}
	scheduled := events[idx]
	return &CurrentActivity{
		ActivityType: scheduled.ActivityType,
		ActivityId:   scheduled.ActivityId,
	}
}
