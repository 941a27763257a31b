package platform

// HeapRegions returns the writable, mapped memory ranges the collector
// should treat as potential root sources beyond the registered arena
// itself (spec.md §4.A item 4: "other live heap memory that might hold
// pointers the allocator doesn't know about"). Implementations favor
// precision (parsing the OS's own memory map) where available and fall
// back to reporting nothing extra, leaving the arena's own bookkeeping
// as the only heap source, on platforms without a cgo-free enumeration
// API (spec.md §7).
func HeapRegions() []Range {
	return heapRegions()
}
