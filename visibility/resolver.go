// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package visibility

import (
	"context"

	"github.com/agentplane/agentplane/permission"
)

// agentVisibilityResolver decides which agents a caller may read before any
// query runs against the orchestration backend
type agentVisibilityResolver struct {
	permissions permission.Store
}

func newAgentVisibilityResolver(permissions permission.Store) *agentVisibilityResolver {
	return &agentVisibilityResolver{
		permissions: permissions,
	}
}

// ResolveAgents constrains a query to the caller's readable agents.
// A named agent the caller cannot read is a permission error, never a silent
// filter. An unscoped query resolves to the caller's full readable set; an
// empty set is a valid answer and the caller gets an empty result, not an
// error.
func (r *agentVisibilityResolver) ResolveAgents(
	ctx context.Context, caller Caller, agentName string,
) ([]string, error) {
	if agentName != "" {
		allowed, err := r.permissions.HasReadPermission(ctx, caller.TenantId, caller.UserId, agentName)
		if err != nil {
			return nil, NewBackendError("has-read-permission", err)
		}
		if !allowed {
			return nil, NewPermissionError(agentName)
		}
		return []string{agentName}, nil
	}

	agents, err := r.permissions.ListReadableAgents(ctx, caller.TenantId, caller.UserId)
	if err != nil {
		return nil, NewBackendError("list-readable-agents", err)
	}
	return agents, nil
}
