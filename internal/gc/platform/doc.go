// Package platform implements the collector's four portable-but-platform-
// specific probes (spec.md §4.A): a register snapshot of the calling
// goroutine, its current stack pointer and stack base, the address ranges
// of the process's static data/bss sections, and the set of writable
// heap-like memory regions. Every probe degrades to an explicit
// "unsupported" result rather than failing outright (spec.md §7); the mark
// engine treats an unsupported probe as "this root region is empty" and
// keeps scanning whatever else is configured.
package platform
