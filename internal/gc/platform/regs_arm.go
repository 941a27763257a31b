//go:build arm

package platform

import "unsafe"

// Registers mirrors the general-purpose register file captured by
// SaveRegisters on 32-bit ARM (spec.md §4.A "Register layouts covered").
type Registers struct {
	R [13]uint32 // R0-R12
	SP, LR uint32
}

var snapshot Registers

// callOverhead is zero: like arm64, BL leaves the return address in LR
// instead of pushing it, so SP is unaffected by the call to SaveRegisters.
const callOverhead = 0

//go:noescape
func SaveRegisters()

// SnapshotWords returns the register snapshot as pointer-sized (4-byte)
// words, widened to uintptr for a uniform mark-engine interface.
func SnapshotWords() []uintptr {
	raw := unsafe.Slice((*uint32)(unsafe.Pointer(&snapshot)), int(unsafe.Sizeof(snapshot)/4))
	words := make([]uintptr, len(raw))
	for i, v := range raw {
		words[i] = uintptr(v)
	}
	return words
}

// CurrentStackTop returns the stack pointer observed at SaveRegisters'
// call site.
func CurrentStackTop() uintptr {
	return uintptr(snapshot.SP) + callOverhead
}
