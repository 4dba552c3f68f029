// Package cache memoizes finished reports keyed by their canonical parameters.
package cache

import (
	"time"

	"github.com/SscSPs/finreport_backend/internal/core/domain"
	portssvc "github.com/SscSPs/finreport_backend/internal/core/ports/services"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultSize = 256
	DefaultTTL  = 10 * time.Minute
)

// reportCache is a size bounded LRU whose entries expire after a fixed TTL.
// Stored reports are treated as immutable; there is no explicit invalidation.
type reportCache struct {
	lru *expirable.LRU[string, *domain.PerformanceReport]
}

// NewReportCache creates an in-memory report cache. Non-positive arguments fall back to the defaults.
func NewReportCache(size int, ttl time.Duration) portssvc.ReportCache {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &reportCache{lru: expirable.NewLRU[string, *domain.PerformanceReport](size, nil, ttl)}
}

var _ portssvc.ReportCache = (*reportCache)(nil)

func (c *reportCache) Get(key string) (*domain.PerformanceReport, bool) {
	return c.lru.Get(key)
}

func (c *reportCache) Add(key string, report *domain.PerformanceReport) {
	c.lru.Add(key, report)
}

func (c *reportCache) Len() int {
	return c.lru.Len()
}
