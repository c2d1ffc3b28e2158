// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package visibility

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// Predicate is one node of the structured filter expression sent to the
// orchestration backend's listing API. Building the expression as a tree and
// rendering it in one place keeps value quoting/escaping out of the callers.
type Predicate interface {
	appendTo(sb *strings.Builder)
}

type eqPredicate struct {
	field string
	value string
}

type inPredicate struct {
	field  string
	values []string
}

type andPredicate struct {
	predicates []Predicate
}

// Eq matches a field against a single value
func Eq(field string, value string) Predicate {
	return &eqPredicate{field: field, value: value}
}

// In matches a field against any of the given values
func In(field string, values ...string) Predicate {
	return &inPredicate{field: field, values: values}
}

// And combines predicates, preserving their order
func And(predicates ...Predicate) Predicate {
	return &andPredicate{predicates: predicates}
}

// RenderPredicate turns a predicate tree into the backend's query grammar
func RenderPredicate(p Predicate) string {
	var sb strings.Builder
	p.appendTo(&sb)
	return sb.String()
}

func (p *eqPredicate) appendTo(sb *strings.Builder) {
	sb.WriteString(renderField(p.field))
	sb.WriteString(" = ")
	sb.WriteString(quoteValue(p.value))
}

func (p *inPredicate) appendTo(sb *strings.Builder) {
	sb.WriteString(renderField(p.field))
	sb.WriteString(" IN (")
	for i, v := range p.values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(quoteValue(v))
	}
	sb.WriteString(")")
}

func (p *andPredicate) appendTo(sb *strings.Builder) {
	for i, sub := range p.predicates {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		sub.appendTo(sb)
	}
}

// the backend expects PascalCase attribute names
func renderField(field string) string {
	return strcase.ToCamel(field)
}

// values are embedded as string literals; embedded quotes are doubled so a
// caller-supplied value can never terminate the literal
func quoteValue(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// BuildListQuery renders the AND-combined query for the given criteria.
// The tenant predicate always comes first; only supplied criteria are added.
func BuildListQuery(criteria QueryCriteria) string {
	predicates := []Predicate{
		Eq("tenantId", criteria.TenantId),
	}
	if criteria.AgentName != "" {
		predicates = append(predicates, Eq("agentName", criteria.AgentName))
	} else if len(criteria.AgentNames) == 1 {
		predicates = append(predicates, Eq("agentName", criteria.AgentNames[0]))
	} else if len(criteria.AgentNames) > 1 {
		predicates = append(predicates, In("agentName", criteria.AgentNames...))
	}
	if criteria.Status != "" {
		predicates = append(predicates, Eq("executionStatus", NormalizeStatus(criteria.Status)))
	}
	if criteria.WorkflowType != "" {
		predicates = append(predicates, Eq("workflowType", criteria.WorkflowType))
	}
	if criteria.OwnerUser != "" {
		predicates = append(predicates, Eq("ownerUserId", criteria.OwnerUser))
	}
	if criteria.IdPostfix != "" {
		predicates = append(predicates, Eq("idPostfix", criteria.IdPostfix))
	}
	return RenderPredicate(And(predicates...))
}
