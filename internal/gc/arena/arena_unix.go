//go:build linux || darwin

package arena

import "golang.org/x/sys/unix"

// mapAnonymous asks the kernel directly for a private, zero-filled, R/W
// mapping — the POSIX equivalent of the C source's plain malloc(), except
// the memory it returns is guaranteed to sit outside any region the Go
// runtime's own allocator or garbage collector will ever touch.
func mapAnonymous(size uintptr) ([]byte, error) {
	return unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

func unmap(data []byte) error {
	return unix.Munmap(data)
}
