// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"github.com/agentplane/agentplane/common/log/tag"
)

// Logger is our abstraction for logging
// Usage examples:
//
//	 1) logger = logger.WithTags(
//	         tag.Tenant("test-tenant-id"),
//	         tag.Agent("billing-agent"))
//	    logger.Info("hello world")
//	 2) logger.Info("hello world",
//	         tag.Tenant("test-tenant-id"),
//	         tag.Agent("billing-agent"))
//	 Note: msg should be static, it is not recommended to use fmt.Sprintf() for msg.
//	       Anything dynamic should be tagged.
type Logger interface {
	Debug(msg string, tags ...tag.Tag)
	Info(msg string, tags ...tag.Tag)
	Warn(msg string, tags ...tag.Tag)
	Error(msg string, tags ...tag.Tag)
	Fatal(msg string, tags ...tag.Tag)
	WithTags(tags ...tag.Tag) Logger
}
