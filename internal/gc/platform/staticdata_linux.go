//go:build linux

package platform

import (
	"unsafe"

	_ "unsafe" // for go:linkname
)

// The Go linker defines these symbols for every binary, the exact
// analogue of the C toolchain's __data_start/_edata/__bss_start/_end
// boundary symbols the original collector reads (spec.md §4.A item 3).
// go:linkname reaches them without cgo.

//go:linkname runtimeData runtime.data
var runtimeData uintptr

//go:linkname runtimeEdata runtime.edata
var runtimeEdata uintptr

//go:linkname runtimeBss runtime.bss
var runtimeBss uintptr

//go:linkname runtimeEbss runtime.ebss
var runtimeEbss uintptr

//go:linkname runtimeNoptrdata runtime.noptrdata
var runtimeNoptrdata uintptr

//go:linkname runtimeEnoptrdata runtime.enoptrdata
var runtimeEnoptrdata uintptr

//go:linkname runtimeNoptrbss runtime.noptrbss
var runtimeNoptrbss uintptr

//go:linkname runtimeEnoptrbss runtime.enoptrbss
var runtimeEnoptrbss uintptr

// The Go linker puts pointer-free globals (a [1]uintptr, say) in separate
// .noptrdata/.noptrbss sections beside .data/.bss, inside the same data
// segment. Each range below spans both halves, from the lower start to the
// higher end.

func dataRange() (Range, bool) {
	data := min(uintptr(unsafe.Pointer(&runtimeData)), uintptr(unsafe.Pointer(&runtimeNoptrdata)))
	edata := max(uintptr(unsafe.Pointer(&runtimeEdata)), uintptr(unsafe.Pointer(&runtimeEnoptrdata)))
	if edata <= data {
		return Range{}, false
	}
	return Range{Start: data, End: edata}, true
}

func bssRange() (Range, bool) {
	bss := min(uintptr(unsafe.Pointer(&runtimeBss)), uintptr(unsafe.Pointer(&runtimeNoptrbss)))
	ebss := max(uintptr(unsafe.Pointer(&runtimeEbss)), uintptr(unsafe.Pointer(&runtimeEnoptrbss)))
	if ebss <= bss {
		return Range{}, false
	}
	return Range{Start: bss, End: ebss}, true
}
