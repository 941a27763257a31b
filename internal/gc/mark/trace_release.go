//go:build !gcdebug

package mark

// trace is a no-op unless the module is built with -tags gcdebug
// (spec.md §7: "nothing is logged by default").
func trace(v, addr uintptr) {}
