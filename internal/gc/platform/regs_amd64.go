//go:build amd64

package platform

import "unsafe"

// Registers mirrors the general-purpose register file captured by
// SaveRegisters on amd64 (spec.md §4.A "Register layouts covered").
type Registers struct {
	RAX, RBX, RCX, RDX uint64
	RSI, RDI           uint64
	RBP, RSP           uint64
	R8, R9, R10, R11   uint64
	R12, R13, R14, R15 uint64
}

// snapshot is the process-global register-snapshot buffer (spec.md §3 I6:
// "addressable via a statically known location"). The amd64 assembly
// thunk addresses it directly by symbol name, the same way the C source's
// x86 variants use "=m" memory operands instead of staging a pointer in a
// scratch register.
var snapshot Registers

// callOverhead compensates CurrentStackTop for the return address amd64's
// CALL instruction pushes onto the stack before SaveRegisters ever runs —
// the Go-ABI analogue of the C source's architecture-specific stack-top
// correction (spec.md §4.A item 2).
const callOverhead = 8

// SaveRegisters is implemented in regs_amd64.s. It must be called as the
// very first statement of Collect (spec.md §4.A, "hard correctness
// requirement"): entering any other function first risks the Go compiler
// having already spilled call-live values out of the registers we are
// about to capture.
//
//go:noescape
func SaveRegisters()

// SnapshotWords returns the most recent register snapshot as pointer-sized
// words, for the mark engine's register root scan (spec.md §4.D step 1).
func SnapshotWords() []uintptr {
	return unsafe.Slice((*uintptr)(unsafe.Pointer(&snapshot)), int(unsafe.Sizeof(snapshot)/unsafe.Sizeof(uintptr(0))))
}

// CurrentStackTop returns the stack pointer value observed at the call
// site of SaveRegisters, compensated for the call instruction's own effect
// on SP (spec.md §4.A item 2, §6 "Current stack top").
func CurrentStackTop() uintptr {
	return uintptr(snapshot.RSP) + callOverhead
}
