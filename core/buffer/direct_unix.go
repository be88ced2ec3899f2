//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

// File: core/buffer/direct_unix.go
// Anonymous private mappings for DirectMemory via golang.org/x/sys/unix.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package buffer

import (
	"errors"

	"golang.org/x/sys/unix"
)

// mapRegion maps exactly size bytes; the kernel rounds to whole pages
// internally but the returned slice is size long.
func mapRegion(m *DirectMemory, size int) error {
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return err
	}
	m.data = data
	m.mapped = true
	return nil
}

// unmapRegion returns the pages to the OS.
func unmapRegion(m *DirectMemory) error {
	err := unix.Munmap(m.data)
	if errors.Is(err, unix.EINVAL) {
		// Treat double-unmap as no-op for callers.
		return nil
	}
	return err
}

func protectRegion(m *DirectMemory) error {
	return unix.Mprotect(m.data, unix.PROT_NONE)
}
