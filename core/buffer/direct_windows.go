//go:build windows

// File: core/buffer/direct_windows.go
// DirectMemory backed by VirtualAlloc / VirtualFree.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package buffer

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// mapRegion commits size bytes of read/write pages.
func mapRegion(m *DirectMemory, size int) error {
	addr, err := windows.VirtualAlloc(0, uintptr(size),
		windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return err
	}
	m.data = unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
	m.mapped = true
	m.handle = addr
	return nil
}

// unmapRegion releases the whole reservation; size must be 0 with MEM_RELEASE.
func unmapRegion(m *DirectMemory) error {
	return windows.VirtualFree(m.handle, 0, windows.MEM_RELEASE)
}

func protectRegion(m *DirectMemory) error {
	var old uint32
	return windows.VirtualProtect(m.handle, uintptr(len(m.data)), windows.PAGE_NOACCESS, &old)
}
