//go:build !amd64 && !arm64

package platform

// StackBase reports that this architecture has no fast g-pointer path
// wired up (spec.md §4.A item 1, "unsupported platform fallback"). The
// mark engine treats a false result as "skip the stack root" rather than
// failing collection outright (spec.md §7).
func StackBase() (uintptr, bool) {
	return 0, false
}
