// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package permission

import (
	"context"
)

// Store answers who may read which agents. Grants are managed elsewhere
// (tenant/agent CRUD is a separate subsystem); this is a read-only view.
type Store interface {
	// HasReadPermission reports whether the user may read the named agent
	HasReadPermission(ctx context.Context, tenantId string, userId string, agentName string) (bool, error)
	// ListReadableAgents returns every agent the user may read within the
	// tenant. An empty result is a valid answer, not an error.
	ListReadableAgents(ctx context.Context, tenantId string, userId string) ([]string, error)
	Close() error
}
