//go:build !linux && !windows

package platform

// heapRegions reports no extra heap ranges beyond the arena's own
// bookkeeping on platforms with no cgo-free memory-map enumeration API
// (notably Darwin's mach_vm_region_recurse). See spec.md §7.
func heapRegions() []Range {
	return nil
}
