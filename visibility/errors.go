// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package visibility

import (
	"fmt"
)

type (
	// ValidationError means the request was rejected before any remote call
	ValidationError struct {
		Detail string
	}

	// PermissionError means the caller lacks read access to the requested agent.
	// It is returned before query execution, never silently filtered.
	PermissionError struct {
		AgentName string
	}

	// NotFoundError means the backend reports no such execution
	NotFoundError struct {
		ExecutionId string
	}

	// BackendError wraps a failed primary-data call (describe/history/list).
	// The underlying detail is logged at the call boundary and not meant to
	// be exposed verbatim to callers.
	BackendError struct {
		Op  string
		Err error
	}
)

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Detail: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Detail
}

func NewPermissionError(agentName string) error {
	return &PermissionError{AgentName: agentName}
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("caller has no read permission on agent %v", e.AgentName)
}

func NewNotFoundError(executionId string) error {
	return &NotFoundError{ExecutionId: executionId}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("execution %v does not exist", e.ExecutionId)
}

func NewBackendError(op string, err error) error {
	return &BackendError{Op: op, Err: err}
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("orchestration backend call %v failed: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
