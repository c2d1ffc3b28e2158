// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package visibility

import (
	"strings"
)

// statusAliases maps lower-cased status aliases to the canonical tokens the
// orchestration backend understands
var statusAliases = map[string]string{
	"running":        "Running",
	"completed":      "Completed",
	"failed":         "Failed",
	"canceled":       "Canceled",
	"terminated":     "Terminated",
	"continuedasnew": "ContinuedAsNew",
	"timedout":       "TimedOut",
}

// NormalizeStatus maps a case-insensitive status alias to its canonical
// token. Unrecognized values pass through unchanged, case preserved, so the
// backend decides whether they match anything.
func NormalizeStatus(status string) string {
	if canonical, ok := statusAliases[strings.ToLower(status)]; ok {
		return canonical
	}
	return status
}
