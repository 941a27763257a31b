package gc

import (
	"runtime"
	"testing"
	"unsafe"

	"github.com/kolkov/conservgc/internal/gc/platform"
)

// TestHeapRetentionThroughOnHeapPointer is boundary scenario 4
// (spec.md §8): an allocation reachable only through a pointer stored
// inside another allocation's payload survives collection, and is swept
// once that stored pointer is overwritten and the outer allocation's own
// external root is also dropped.
func TestHeapRetentionThroughOnHeapPointer(t *testing.T) {
	c := New(ScanHeaps, Options{DisableAutoCollect: true})
	defer c.Close()

	outer := c.Alloc(unsafe.Sizeof(uintptr(0)), true)
	inner := c.Alloc(4, true)

	*(*uintptr)(outer) = uintptr(inner)

	c.Collect()

	if e := c.list.FindByPtr(uintptr(outer)); e == nil || !e.Reachable {
		t.Fatal("outer allocation not retained by its own external root")
	}
	if e := c.list.FindByPtr(uintptr(inner)); e == nil || !e.Reachable {
		t.Fatal("inner allocation not retained through the on-heap pointer")
	}
	if got := *(*uintptr)(outer); got != uintptr(inner) {
		t.Fatalf("**outer = %#x, want %#x", got, inner)
	}

	*(*uintptr)(outer) = 0
	c.Free(outer)
	c.Collect()

	if c.Stats().Live != 0 {
		t.Fatalf("Live = %d after dropping every root to outer/inner, want 0", c.Stats().Live)
	}
}

// TestCycleSurvivesWithExternalRootThenReclaimed is boundary scenario 5.
func TestCycleSurvivesWithExternalRootThenReclaimed(t *testing.T) {
	c := New(ScanHeaps, Options{DisableAutoCollect: true})
	defer c.Close()

	a := c.Alloc(unsafe.Sizeof(uintptr(0)), true)
	b := c.Alloc(unsafe.Sizeof(uintptr(0)), true)
	*(*uintptr)(a) = uintptr(b)
	*(*uintptr)(b) = uintptr(a)

	root := c.Alloc(unsafe.Sizeof(uintptr(0)), true)
	*(*uintptr)(root) = uintptr(a)

	c.Collect()
	if c.Stats().Live != 3 {
		t.Fatalf("Live = %d, want 3 (root, a, b all reachable)", c.Stats().Live)
	}

	*(*uintptr)(root) = 0
	c.Free(root)
	c.Collect()

	if c.Stats().Live != 0 {
		t.Fatalf("Live = %d, want 0 once the cycle loses its only external root", c.Stats().Live)
	}
}

// TestThresholdTriggersAutomaticCollection is boundary scenario 7.
func TestThresholdTriggersAutomaticCollection(t *testing.T) {
	c := New(ScanHeaps, Options{Threshold: 128})
	defer c.Close()

	before := c.Stats().Collections
	for i := 0; i < 128; i++ {
		c.Alloc(8, false)
	}

	if after := c.Stats().Collections; after == before {
		t.Fatal("no automatic collection observed after 128 allocations at threshold 128")
	}
}

// TestSelfBookkeepingSkipPreventsFalseRetention is boundary scenario 8:
// enabling scan-heaps must not cause every allocation to look reachable
// just because the registry's own records might be scanned too.
func TestSelfBookkeepingSkipPreventsFalseRetention(t *testing.T) {
	c := New(ScanHeaps, Options{DisableAutoCollect: true})
	defer c.Close()

	for i := 0; i < 64; i++ {
		allocateAndDiscard(c)
	}
	runtime.GC()

	c.Collect()

	if got := c.Stats().Live; got != 0 {
		t.Fatalf("Live = %d, want 0: unreferenced allocations were falsely retained", got)
	}
}

//go:noinline
func allocateAndDiscard(c *Collector) {
	c.Alloc(8, false)
}

func TestCollectIsIdempotentWithNoMutation(t *testing.T) {
	c := New(ScanHeaps, Options{DisableAutoCollect: true})
	defer c.Close()

	allocateAndDiscard(c)
	runtime.GC()

	c.Collect()
	firstCollections := c.Stats().Collections
	if c.Stats().Live != 0 {
		t.Fatalf("Live = %d after first collect, want 0", c.Stats().Live)
	}

	c.Collect()
	if c.Stats().Live != 0 {
		t.Fatalf("Live = %d after second collect, want 0", c.Stats().Live)
	}
	if c.Stats().Collections != firstCollections+1 {
		t.Fatal("second Collect() did not run")
	}
}

func TestCloseDrainsEveryRecord(t *testing.T) {
	c := New(ScanAll, Options{DisableAutoCollect: true})
	c.Alloc(16, false)
	c.Alloc(32, false)

	c.Close()

	if got := c.list.Len(); got != 0 {
		t.Fatalf("list.Len() = %d after Close, want 0", got)
	}
}

func TestPrintStateDoesNotPanic(t *testing.T) {
	c := New(ScanAll, Options{Debug: true})
	defer c.Close()

	c.Alloc(8, false)
	c.PrintState(&discardWriter{})
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// TestScanStackAloneRetainsRootedAllocation is boundary scenario 1
// (spec.md §8, "stack retention"): a pointer rooted only in a deep call
// chain's stack frames must survive a ScanStack-only collection, even when
// the goroutine's stack has grown (and therefore moved, via
// runtime.copystack) between New() and Collect(). A Collector that reads
// its stack base once in New() and caches it would scan the wrong address
// range here and incorrectly sweep the allocation.
func TestScanStackAloneRetainsRootedAllocation(t *testing.T) {
	c := New(ScanStack, Options{DisableAutoCollect: true})
	defer c.Close()

	p := c.Alloc(8, true)

	const depth = 20000
	var live int
	keepAliveAcrossDeepRecursion(p, depth, func() {
		c.Collect()
		live = c.Stats().Live
	})

	if live != 1 {
		t.Fatalf("Live = %d after a ScanStack-only collect deep in a recursive call chain, want 1", live)
	}
}

// keepAliveAcrossDeepRecursion recurses depth times, using p again after
// each nested call returns so the compiler must keep p's bits live across
// every frame below — forcing it onto the stack rather than letting it sit
// only in a register that Collect's own call doesn't touch. fn runs at the
// bottom of the recursion, with the call chain at its deepest (and, for a
// sufficiently large depth, after the goroutine's stack has already grown
// at least once since the caller's frame was created).
//
//go:noinline
func keepAliveAcrossDeepRecursion(p unsafe.Pointer, depth int, fn func()) unsafe.Pointer {
	if depth == 0 {
		fn()
		return p
	}
	kept := keepAliveAcrossDeepRecursion(p, depth-1, fn)
	if kept != p {
		panic("recursion corrupted the kept pointer")
	}
	return p
}

// TestScanBSSAloneRetainsGlobalRoot is boundary scenario 3: a pointer
// stored only in a package-level variable with no explicit initializer
// (placed in .bss) roots its target through a ScanBSS-only collection.
func TestScanBSSAloneRetainsGlobalRoot(t *testing.T) {
	if _, ok := platform.BSSRange(); !ok {
		t.Skip("BSS range probing unsupported on this platform")
	}

	c := New(ScanBSS, Options{DisableAutoCollect: true})
	defer c.Close()

	p := c.Alloc(8, true)
	globalBSSRoot = p
	defer func() { globalBSSRoot = nil }()

	c.Collect()
	if got := c.Stats().Live; got != 1 {
		t.Fatalf("Live = %d after a ScanBSS-only collect with a live global root, want 1", got)
	}
}

// globalBSSRoot has no explicit initializer, so it is placed in .bss.
var globalBSSRoot unsafe.Pointer

// TestScanDataAloneRetainsGlobalRoot is boundary scenario 2: a pointer
// stored only inside a package-level variable with a non-zero compile-time
// initializer (placed in .data) roots its target through a ScanData-only
// collection.
func TestScanDataAloneRetainsGlobalRoot(t *testing.T) {
	if _, ok := platform.DataRange(); !ok {
		t.Skip("data range probing unsupported on this platform")
	}

	c := New(ScanData, Options{DisableAutoCollect: true})
	defer c.Close()

	p := c.Alloc(8, true)
	globalDataRoot[0] = uintptr(p)
	defer func() { globalDataRoot[0] = 1 }()

	c.Collect()
	if got := c.Stats().Live; got != 1 {
		t.Fatalf("Live = %d after a ScanData-only collect with a live global root, want 1", got)
	}
}

// globalDataRoot has a non-zero compile-time initializer, so it is placed
// in .data rather than .bss.
var globalDataRoot = [1]uintptr{1}

// TestScanStackSurvivesDeferRecoverUnwind is boundary scenario 6 ("long
// jump"): Go has no setjmp/longjmp, so the property under test is
// reinterpreted as a pointer kept in a stack slot several frames deep
// surviving a Collect() triggered underneath a panic/recover unwind —
// recover does not zero the unwound frames' memory before the next
// collection observes them, so collection correctness must not depend on
// those frames having returned normally.
func TestScanStackSurvivesDeferRecoverUnwind(t *testing.T) {
	c := New(ScanStack, Options{DisableAutoCollect: true})
	defer c.Close()

	p := c.Alloc(8, true)

	live := collectUnderneathRecover(p, 50, c)

	if live != 1 {
		t.Fatalf("Live = %d after a ScanStack-only collect beneath a defer/recover unwind, want 1", live)
	}

	// The next collection, after the unwind, still finds p in this frame.
	c.Collect()
	if got := c.Stats().Live; got != 1 {
		t.Fatalf("Live = %d after a ScanStack-only collect following the defer/recover unwind, want 1", got)
	}
	runtime.KeepAlive(p)
}

// collectUnderneathRecover recurses depth times holding p live in each
// frame, panics at the bottom of the recursion from directly beneath a
// Collect() call, and recovers back at the top — unwinding every
// intermediate frame without them ever returning normally.
func collectUnderneathRecover(p unsafe.Pointer, depth int, c *Collector) (live int) {
	defer func() {
		if r := recover(); r != nil {
			live = r.(int)
		}
	}()
	recurseThenPanic(p, depth, c)
	panic("unreachable: recurseThenPanic always panics")
}

//go:noinline
func recurseThenPanic(p unsafe.Pointer, depth int, c *Collector) {
	if depth == 0 {
		c.Collect()
		panic(c.Stats().Live)
	}
	recurseThenPanic(p, depth-1, c)
	runtime.KeepAlive(p)
}
