// Package gc implements a conservative, stop-the-world, mark-and-sweep
// garbage collector embedded into a process as a library. A host program
// allocates memory through a Collector instead of the platform allocator;
// the collector tracks every live allocation in its own bookkeeping, and
// when asked to collect it scans the process's own memory — CPU
// registers, the calling goroutine's stack, global data, and optionally
// other heap regions — looking for bit patterns that happen to equal the
// addresses of tracked allocations. Anything unreferenced is freed.
//
// Scanning is conservative: any pointer-sized word that equals a tracked
// base address marks that allocation reachable, even if the match is
// coincidental (a stray integer, a float, a stale value on the stack).
// There is no support for interior pointers — only exact base-address
// matches are recognised — and collection is entirely synchronous,
// single-threaded, and stop-the-world. There is no generational,
// incremental, concurrent, or moving collection, no finalisers, no weak
// references, and no size classes.
package gc
