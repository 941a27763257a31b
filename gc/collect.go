package gc

import (
	"unsafe"

	"github.com/kolkov/conservgc/internal/gc/mark"
	"github.com/kolkov/conservgc/internal/gc/platform"
)

// stateSize is sizeof(Collector), used by the mark engine to skip over a
// Collector's own tagged bytes when a heap-region scan happens to walk
// across one (spec.md §4.D step 1).
var stateSize = unsafe.Sizeof(Collector{})

// Collect runs one mark-and-sweep cycle: it snapshots registers, resets
// reachability, scans every configured root region, and frees every
// allocation that turned out unreachable (spec.md §2 "Control flow of a
// collection cycle"). It is synchronous and stop-the-world: no other
// goroutine may call into this Collector concurrently (spec.md §5).
func (c *Collector) Collect() {
	// The register snapshot must be the literal first statement, exactly
	// as spec.md §2 requires ("a site-local macro/expansion first
	// snapshots registers into a process-global buffer"), so that no
	// value this call itself computes before the snapshot is missed.
	platform.SaveRegisters()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.collectLocked()
}

// triggerCollectLocked runs a collection cycle on behalf of an internal
// trigger point (Alloc/Resize crossing the allocation threshold), assuming
// c.mu is already held. Every path that can start a collection cycle must
// snapshot registers at its OWN call site, never reuse a snapshot left
// behind by some earlier, unrelated call — gc.c:256-258's gc_malloc uses
// the gc_collect macro (gc.h:349) for exactly this reason, so that the
// registers live at the moment the threshold fires are the ones scanned.
func (c *Collector) triggerCollectLocked() {
	platform.SaveRegisters()
	c.collectLocked()
}

// collectLocked runs a collection cycle assuming c.mu is already held and
// registers have already been snapshotted by the caller (Collect or
// triggerCollectLocked).
func (c *Collector) collectLocked() {
	c.list.ResetReachability()

	m := mark.New(&c.list, stateSize)

	if c.flags.Has(ScanRegisters) {
		m.Words(platform.SnapshotWords())
	}

	if c.flags.Has(ScanStack) {
		if base, ok := platform.StackBase(); ok {
			top := platform.CurrentStackTop()
			if top < base {
				m.Range(top, base, false)
			}
		}
	}

	if c.flags.Has(ScanData) {
		if r, ok := platform.DataRange(); ok {
			m.Range(r.Start, r.End, false)
		}
	}

	if c.flags.Has(ScanBSS) {
		if r, ok := platform.BSSRange(); ok {
			m.Range(r.Start, r.End, false)
		}
	}

	if c.flags.Has(ScanHeaps) {
		for _, r := range c.heapRegions() {
			m.Range(r.Start, r.End, true)
		}
	}

	m.Drain()

	c.collections++

	for _, e := range c.list.Sweep() {
		c.arena.Free(unsafe.Pointer(e.Ptr))
		c.trace.Forget(e.Ptr)
	}
}

// heapRegions returns the OS-reported writable mappings when the platform
// probe reports any, and otherwise falls back to the arena's own
// bookkeeping (spec.md §4.A item 4's portable fallback), so a platform
// with no memory-map enumerator still gets at least the allocations this
// Collector itself owns as scannable heap roots. The two sources are not
// merged.
func (c *Collector) heapRegions() []platform.Range {
	osRegions := platform.HeapRegions()
	if len(osRegions) > 0 {
		return osRegions
	}

	arenaRegions := c.arena.Regions()
	regions := make([]platform.Range, len(arenaRegions))
	for i, r := range arenaRegions {
		regions[i] = platform.Range(r)
	}
	return regions
}
