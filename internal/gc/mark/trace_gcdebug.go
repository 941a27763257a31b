//go:build gcdebug

package mark

import (
	"fmt"
	"os"
)

// trace prints every pointer-sized word that matched a live registry entry
// during a scan, to stderr, when the module is built with -tags gcdebug
// (spec.md §7's compile-time debug flag).
func trace(v, addr uintptr) {
	fmt.Fprintf(os.Stderr, "mark: word=%#x found at=%#x\n", v, addr)
}
