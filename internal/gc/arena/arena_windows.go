//go:build windows

package arena

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// mapAnonymous reserves and commits private, zero-filled, R/W pages via
// VirtualAlloc — the Windows analogue of the POSIX mmap backend, and the
// Go-native stand-in for the C source's plain malloc().
func mapAnonymous(size uintptr) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, size, windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func unmap(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	addr := uintptr(unsafe.Pointer(&data[0]))
	return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}
