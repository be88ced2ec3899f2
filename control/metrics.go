// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Allocator and pool counters published by the runtime.

package control

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/momentics/bytebuf/api"
)

// MetricsRegistry holds the latest published value of each named metric.
// It is safe for concurrent use.
type MetricsRegistry struct {
	mu      sync.RWMutex
	metrics map[string]any
	updated time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		metrics: make(map[string]any),
	}
}

// Set publishes one metric. Keys are dotted paths such as
// "pool.heap.64.in_use" and must not be empty.
func (mr *MetricsRegistry) Set(key string, value any) error {
	if key == "" {
		return api.InvalidArgument("metric key is empty")
	}
	mr.mu.Lock()
	mr.metrics[key] = value
	mr.updated = time.Now()
	mr.mu.Unlock()
	return nil
}

// SetAll publishes a batch of metrics under one timestamp. Nothing is
// published when any key is empty.
func (mr *MetricsRegistry) SetAll(values map[string]any) error {
	if _, ok := values[""]; ok {
		return api.InvalidArgument("metric key is empty")
	}
	mr.mu.Lock()
	for k, v := range values {
		mr.metrics[k] = v
	}
	mr.updated = time.Now()
	mr.mu.Unlock()
	return nil
}

// Counter returns the metric as an int64. It reports false when the key is
// missing or holds a non-integer value.
func (mr *MetricsRegistry) Counter(key string) (int64, bool) {
	mr.mu.RLock()
	v, ok := mr.metrics[key]
	mr.mu.RUnlock()
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

// GetSnapshot returns a copy of the current metrics.
func (mr *MetricsRegistry) GetSnapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return maps.Clone(mr.metrics)
}

// Keys returns the metric names in sorted order.
func (mr *MetricsRegistry) Keys() []string {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return slices.Sorted(maps.Keys(mr.metrics))
}

// UpdatedAt returns the time of the last Set, zero if none.
func (mr *MetricsRegistry) UpdatedAt() time.Time {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.updated
}
