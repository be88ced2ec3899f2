// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Named state reporters evaluated on demand, used to dump allocator and pool state.

package control

import (
	"maps"
	"os"
	"runtime"
	"slices"
	"sync"

	"github.com/momentics/bytebuf/api"
)

// Inspector holds named state reporters. It is safe for concurrent use.
type Inspector struct {
	mu        sync.RWMutex
	reporters map[string]func() any
}

// NewInspector creates an empty inspector.
func NewInspector() *Inspector {
	return &Inspector{
		reporters: make(map[string]func() any),
	}
}

// Register inserts or replaces the reporter for name.
func (in *Inspector) Register(name string, fn func() any) error {
	if name == "" {
		return api.InvalidArgument("reporter name is empty")
	}
	if fn == nil {
		return api.InvalidArgument("reporter is nil").WithContext("name", name)
	}
	in.mu.Lock()
	in.reporters[name] = fn
	in.mu.Unlock()
	return nil
}

// Names returns the registered reporter names in sorted order.
func (in *Inspector) Names() []string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return slices.Sorted(maps.Keys(in.reporters))
}

// Snapshot evaluates every reporter. Reporters run outside the lock, so one
// may take allocator or pool locks without ordering against Register.
func (in *Inspector) Snapshot() map[string]any {
	in.mu.RLock()
	fns := maps.Clone(in.reporters)
	in.mu.RUnlock()

	out := make(map[string]any, len(fns))
	for name, fn := range fns {
		out[name] = fn()
	}
	return out
}

// RegisterHostFacts adds host facts relevant to direct memory sizing.
func RegisterHostFacts(in *Inspector) {
	_ = in.Register("runtime.page_size", func() any { return os.Getpagesize() })
	_ = in.Register("runtime.cpus", func() any { return runtime.NumCPU() })
	_ = in.Register("runtime.platform", func() any { return runtime.GOOS + "/" + runtime.GOARCH })
}
