// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package tag

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

const LoggingCallAtKey = "logging-call-at"

// Tag is the interface for logging system
type Tag struct {
	// keep this field private
	field zap.Field
}

// Field returns a zap field
func (t *Tag) Field() zap.Field {
	return t.field
}

func newStringTag(key string, value string) Tag {
	return Tag{
		field: zap.String(key, value),
	}
}

func newInt64(key string, value int64) Tag {
	return Tag{
		field: zap.Int64(key, value),
	}
}

func newInt(key string, value int) Tag {
	return Tag{
		field: zap.Int(key, value),
	}
}

func newTimeTag(key string, value time.Time) Tag {
	return Tag{
		field: zap.Time(key, value),
	}
}

func newObjectTag(key string, value interface{}) Tag {
	return Tag{
		field: zap.String(key, fmt.Sprintf("%v", value)),
	}
}

func newErrorTag(key string, value error) Tag {
	//NOTE zap already chosen "error" as key
	return Tag{
		field: zap.Error(value),
	}
}

// TAGS

func Error(err error) Tag {
	return newErrorTag("error", err)
}

func Service(sv string) Tag {
	return newStringTag("service", sv)
}

func Message(msg string) Tag {
	return newStringTag("message", msg)
}

func Tenant(id string) Tag {
	return newStringTag("tenantId", id)
}

func User(id string) Tag {
	return newStringTag("userId", id)
}

func Agent(name string) Tag {
	return newStringTag("agentName", name)
}

func ExecutionId(id string) Tag {
	return newStringTag("executionId", id)
}

func RunId(id string) Tag {
	return newStringTag("runId", id)
}

func TaskQueue(name string) Tag {
	return newStringTag("taskQueue", name)
}

func RequestId(id string) Tag {
	return newStringTag("requestId", id)
}

func Query(q string) Tag {
	return newStringTag("query", q)
}

func Page(p int) Tag {
	return newInt("page", p)
}

func PageSize(size int) Tag {
	return newInt("pageSize", size)
}

func HistoryLength(l int64) Tag {
	return newInt64("historyLength", l)
}

func StatusCode(code int) Tag {
	return newInt("statusCode", code)
}

func Timestamp(t time.Time) Tag {
	return newTimeTag("timestamp", t)
}

func Value(v interface{}) Tag {
	return newObjectTag("value", v)
}

func DefaultValue(v interface{}) Tag {
	return newObjectTag("default-value", v)
}
