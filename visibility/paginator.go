// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package visibility

import (
	"strconv"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Iterator is a forward-only stream of items. The orchestration backend's
// listing API implements it over its native cursor.
type Iterator[T any] interface {
	HasNext() bool
	Next() (T, error)
}

// PageSlice is one emulated page cut out of a forward-only stream
type PageSlice[T any] struct {
	Items       []T
	HasNextPage bool
}

// NormalizePageRequest parses the page token and page size, falling back to
// defaults instead of failing: an absent or unparsable token means page 1,
// an out-of-range page size means the default size.
func NormalizePageRequest(req PageRequest) (page int, pageSize int) {
	page = DefaultPage
	if req.PageToken != "" {
		if parsed, err := strconv.Atoi(req.PageToken); err == nil && parsed >= 1 {
			page = parsed
		}
	}
	pageSize = req.PageSize
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

// ListFetchLimit returns how many items the backend listing call needs to be
// asked for to serve the given page: everything before the page, the page
// itself, plus one extra item probing for a next page. The floor keeps small
// pages from issuing tiny remote fetches.
func ListFetchLimit(page int, pageSize int, fetchFloor int) int {
	minRequired := (page-1)*pageSize + pageSize + 1
	if minRequired < fetchFloor {
		return fetchFloor
	}
	return minRequired
}

// PaginateForwardOnly emulates 1-based page-number pagination over a stream
// that supports neither offset seeking nor a total count. It drains the
// iterator up to fetchLimit items, stopping early once enough were seen to
// cut the page and answer whether another page exists.
//
// Every page re-streams the result set from the start, so a deep page costs
// O(page * pageSize) remote items. Acceptable for bounded UI paging; bulk
// export should not go through here.
func PaginateForwardOnly[T any](it Iterator[T], page int, pageSize int, fetchLimit int) (PageSlice[T], error) {
	skip := (page - 1) * pageSize
	minRequired := skip + pageSize + 1

	var buffered []T
	for len(buffered) < fetchLimit && it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return PageSlice[T]{}, err
		}
		buffered = append(buffered, item)
		if len(buffered) >= minRequired {
			break
		}
	}

	pageEnd := skip + pageSize
	var items []T
	if skip < len(buffered) {
		end := pageEnd
		if end > len(buffered) {
			end = len(buffered)
		}
		items = buffered[skip:end]
	}

	hasNext := len(buffered) > pageEnd
	if !hasNext && len(buffered) >= fetchLimit && len(buffered) >= minRequired-1 {
		// the fetch hit its limit so the stream may hold more; be conservative
		hasNext = true
	}

	return PageSlice[T]{
		Items:       items,
		HasNextPage: hasNext,
	}, nil
}

// NextPageToken encodes the token a caller sends to get the page after the
// given one
func NextPageToken(page int) string {
	return strconv.Itoa(page + 1)
}
