// control/config.go
// Author: momentics <momentics@gmail.com>
//
// YAML runtime profile: allocator kind, pooling, growth policy and workload.

package control

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/momentics/bytebuf/api"
	"github.com/momentics/bytebuf/autobuf"
)

// Allocator kinds accepted in Config.Allocator.
const (
	AllocatorHeap   = "heap"
	AllocatorDirect = "direct"
)

// Config is a runtime profile. Zero fields are filled from DefaultConfig
// by LoadConfig and ParseConfig.
type Config struct {
	Allocator  string         `yaml:"allocator"`  // "heap" or "direct"
	Quarantine int            `yaml:"quarantine"` // direct only: regions kept inaccessible after release
	Pooled     bool           `yaml:"pooled"`     // route allocations through per-capacity pools
	Prewarm    []PrewarmEntry `yaml:"prewarm"`    // pools filled at startup, pooled only
	Growth     GrowthConfig   `yaml:"growth"`
	Workload   WorkloadConfig `yaml:"workload"`
	LogLevel   string         `yaml:"log_level"`
}

// PrewarmEntry pre-populates the pool for one capacity.
type PrewarmEntry struct {
	Capacity int `yaml:"capacity"`
	Count    int `yaml:"count"`
}

// GrowthConfig selects the auto buffer growth policy.
type GrowthConfig struct {
	Kind         string  `yaml:"kind"` // pow2, arithmetic (ap) or geometric (gp)
	InitCapacity int     `yaml:"init_capacity"`
	Difference   int     `yaml:"difference"`
	Ratio        float64 `yaml:"ratio"`
}

// WorkloadConfig drives the synthetic write/read cycle of bytebufctl run.
type WorkloadConfig struct {
	Iterations int `yaml:"iterations"`
	WriteBytes int `yaml:"write_bytes"`
}

// DefaultConfig returns default configuration values.
func DefaultConfig() *Config {
	return &Config{
		Allocator:  AllocatorHeap,
		Quarantine: 0,
		Pooled:     true,
		Growth: GrowthConfig{
			Kind:         "pow2",
			InitCapacity: 64, // one cache line
			Difference:   64,
			Ratio:        1.5,
		},
		Workload: WorkloadConfig{
			Iterations: 100,
			WriteBytes: 1000,
		},
		LogLevel: "info",
	}
}

// Policy builds the configured growth policy and checks it against the
// initial capacity.
func (g GrowthConfig) Policy() (autobuf.Policy, error) {
	kind, err := autobuf.ParseKind(g.Kind)
	if err != nil {
		return autobuf.Policy{}, err
	}
	var p autobuf.Policy
	switch kind {
	case autobuf.KindArithmetic:
		p = autobuf.Arithmetic(g.Difference)
	case autobuf.KindGeometric:
		p = autobuf.Geometric(g.Ratio)
	default:
		p = autobuf.Pow2()
	}
	if err := p.Validate(g.InitCapacity); err != nil {
		return autobuf.Policy{}, err
	}
	return p, nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch c.Allocator {
	case AllocatorHeap, AllocatorDirect:
	default:
		return api.InvalidArgument("unknown allocator").WithContext("allocator", c.Allocator)
	}
	if c.Quarantine < 0 {
		return api.InvalidArgument("quarantine must not be negative").WithContext("quarantine", c.Quarantine)
	}
	for i, p := range c.Prewarm {
		if p.Capacity <= 0 || p.Count < 0 {
			return api.InvalidArgument("invalid prewarm entry").
				WithContext("index", i).
				WithContext("capacity", p.Capacity).
				WithContext("count", p.Count)
		}
	}
	if len(c.Prewarm) > 0 && !c.Pooled {
		return api.InvalidArgument("prewarm requires pooled allocation")
	}
	if _, err := c.Growth.Policy(); err != nil {
		return err
	}
	if c.Workload.Iterations < 0 || c.Workload.WriteBytes < 0 {
		return api.InvalidArgument("workload sizes must not be negative").
			WithContext("iterations", c.Workload.Iterations).
			WithContext("writeBytes", c.Workload.WriteBytes)
	}
	return nil
}

// ParseConfig decodes a YAML profile on top of DefaultConfig and validates it.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, api.InvalidArgument("malformed profile").WithCause(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the profile at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return cfg, nil
}

// YAML encodes the effective profile.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
