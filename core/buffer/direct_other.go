//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly || windows)

// File: core/buffer/direct_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package buffer

import "github.com/momentics/bytebuf/api"

// mapRegion has no anonymous mapping primitive on this platform; DirectMemory
// always falls back to the Go heap.
func mapRegion(_ *DirectMemory, _ int) error {
	return api.NewError(api.ErrCodeInvalidState, "anonymous mappings not supported on this platform")
}

func unmapRegion(_ *DirectMemory) error { return nil }

func protectRegion(_ *DirectMemory) error { return nil }
