// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package logstore

import (
	"context"
	"time"
)

type (
	// LogEntry is one log record emitted by an execution run
	LogEntry struct {
		RunId     string    `db:"run_id" json:"runId"`
		Level     string    `db:"level" json:"level"`
		Message   string    `db:"message" json:"message"`
		CreatedAt time.Time `db:"created_at" json:"createdAt"`
	}

	// Store reads execution logs from the document/log database.
	// It is an enrichment source only, never a filter.
	Store interface {
		// LastLogPerRun returns the most recent log entry for each of the
		// given run ids, keyed by run id. Runs without any log entry are
		// simply absent from the result.
		LastLogPerRun(ctx context.Context, tenantId string, runIds []string) (map[string]LogEntry, error)
		Close() error
	}
)
