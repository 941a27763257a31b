//go:build arm64

package platform

import "unsafe"

// Registers mirrors the general-purpose register file captured by
// SaveRegisters on 64-bit ARM (spec.md §4.A "Register layouts covered").
type Registers struct {
	X [29]uint64 // X0-X28
	FP uint64     // X29
	LR uint64     // X30
	SP uint64
}

var snapshot Registers

// callOverhead is zero on arm64: BL leaves the return address in the link
// register instead of pushing it onto the stack, so SP at the call site of
// SaveRegisters already equals SP at the call site of Collect. This is the
// Go-ABI reason the compensation constant differs from the C source's
// fixed 16-byte aarch64 correction (spec.md §4.A item 2).
const callOverhead = 0

//go:noescape
func SaveRegisters()

// SnapshotWords returns the register snapshot as pointer-sized words.
func SnapshotWords() []uintptr {
	return unsafe.Slice((*uintptr)(unsafe.Pointer(&snapshot)), int(unsafe.Sizeof(snapshot)/unsafe.Sizeof(uintptr(0))))
}

// CurrentStackTop returns the stack pointer observed at SaveRegisters'
// call site.
func CurrentStackTop() uintptr {
	return uintptr(snapshot.SP) + callOverhead
}
