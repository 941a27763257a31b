//go:build !linux && !darwin && !windows

package arena

// mapAnonymous falls back to a Go-heap-backed byte slice on platforms with
// neither mmap nor VirtualAlloc available through golang.org/x/sys. The
// slice is kept alive by the Arena's own bookkeeping map, so it is safe
// from the Go runtime's collector even though it is not outside its reach
// the way the mmap/VirtualAlloc backings are; conservative scanning of it
// is still correct, it is simply not immune to Go's own GC as a bonus.
func mapAnonymous(size uintptr) ([]byte, error) {
	return make([]byte, size), nil
}

func unmap(data []byte) error {
	return nil
}
