// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package visibility

import (
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// distinctCacheMaxEntries bounds how many (tenant, user) pairs stay cached;
// the LRU evicts the least recently asked pair beyond that
const distinctCacheMaxEntries = 1024

type distinctCacheEntry struct {
	values    []string
	expiresAt time.Time
}

// distinctValueCache caches the sorted distinct-tag result per
// (tenant, user) with a TTL. There is no single-flight: two concurrent
// misses for the same key both scan upstream, which is tolerated since the
// scan is bounded and the results converge.
type distinctValueCache struct {
	ttl time.Duration
	lru *lru.Cache
	now func() time.Time
}

func newDistinctValueCache(ttl time.Duration, now func() time.Time) *distinctValueCache {
	cache, err := lru.New(distinctCacheMaxEntries)
	if err != nil {
		// lru.New only fails on a non-positive size
		panic(err)
	}
	return &distinctValueCache{
		ttl: ttl,
		lru: cache,
		now: now,
	}
}

func distinctCacheKey(tenantId string, userId string) string {
	return tenantId + "/" + userId
}

func (c *distinctValueCache) get(tenantId string, userId string) ([]string, bool) {
	raw, ok := c.lru.Get(distinctCacheKey(tenantId, userId))
	if !ok {
		return nil, false
	}
	entry := raw.(distinctCacheEntry)
	if c.now().After(entry.expiresAt) {
		return nil, false
	}
	// hand out a copy so cached values stay immutable
	values := make([]string, len(entry.values))
	copy(values, entry.values)
	return values, true
}

func (c *distinctValueCache) put(tenantId string, userId string, values []string) {
	stored := make([]string, len(values))
	copy(stored, values)
	c.lru.Add(distinctCacheKey(tenantId, userId), distinctCacheEntry{
		values:    stored,
		expiresAt: c.now().Add(c.ttl),
	})
}
