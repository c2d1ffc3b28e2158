// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package visibility

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildListQueryTenantOnly(t *testing.T) {
	query := BuildListQuery(QueryCriteria{TenantId: "t1"})

	assert.Equal(t, "TenantId = 't1'", query)
}

func TestBuildListQueryAllCriteria(t *testing.T) {
	query := BuildListQuery(QueryCriteria{
		TenantId:     "t1",
		AgentName:    "billing-agent",
		Status:       "RUNNING",
		WorkflowType: "agent-task",
		OwnerUser:    "user-7",
		IdPostfix:    "eu-west",
	})

	assert.Equal(t,
		"TenantId = 't1' AND AgentName = 'billing-agent' AND ExecutionStatus = 'Running'"+
			" AND WorkflowType = 'agent-task' AND OwnerUserId = 'user-7' AND IdPostfix = 'eu-west'",
		query)
}

func TestBuildListQueryTenantPredicateAlwaysFirst(t *testing.T) {
	query := BuildListQuery(QueryCriteria{
		TenantId:  "t1",
		OwnerUser: "user-7",
	})

	assert.True(t, strings.HasPrefix(query, "TenantId = 't1'"))
}

func TestBuildListQueryAgentSetMembership(t *testing.T) {
	query := BuildListQuery(QueryCriteria{
		TenantId:   "t1",
		AgentNames: []string{"a1", "a2"},
	})

	assert.Equal(t, "TenantId = 't1' AND AgentName IN ('a1', 'a2')", query)
}

func TestBuildListQuerySingleVisibleAgentRendersAsEquality(t *testing.T) {
	query := BuildListQuery(QueryCriteria{
		TenantId:   "t1",
		AgentNames: []string{"a1"},
	})

	assert.Equal(t, "TenantId = 't1' AND AgentName = 'a1'", query)
}

func TestRenderPredicateEscapesQuotes(t *testing.T) {
	query := RenderPredicate(Eq("agentName", "o'brien"))

	assert.Equal(t, "AgentName = 'o''brien'", query)
}

func TestRenderPredicateInEscapesQuotes(t *testing.T) {
	query := RenderPredicate(In("agentName", "a'1", "a2"))

	assert.Equal(t, "AgentName IN ('a''1', 'a2')", query)
}
