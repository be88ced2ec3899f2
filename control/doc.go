// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime profile configuration, metrics and debug introspection.
//
// Provides:
//   - Config, the YAML profile that selects allocator, pooling and growth
//   - MetricsRegistry, a concurrent-safe map of named counters with snapshots
//   - Inspector, named state reporters evaluated on demand for debug dumps
package control
