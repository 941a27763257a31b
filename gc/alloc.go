package gc

import (
	"unsafe"

	"github.com/kolkov/conservgc/internal/gc/registry"
)

// Alloc requests size bytes from the platform allocator, tracks them in
// the registry, and returns the payload's base address (spec.md §4.C
// "allocate"). On any allocator failure it returns nil. The zero
// parameter is accepted for interface parity with spec.md §6, but every
// allocation is already zero-filled: the arena only ever hands out fresh
// mmap/VirtualAlloc pages, never memory recycled from a prior Free.
func (c *Collector) Alloc(size uintptr, zero bool) unsafe.Pointer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.allocLocked(size, zero)
}

func (c *Collector) allocLocked(size uintptr, zero bool) unsafe.Pointer {
	_ = zero

	ptr := c.arena.Alloc(size)
	if ptr == nil {
		return nil
	}

	e := registry.NewEntry(uintptr(ptr), size)
	c.list.PushFront(e)
	c.allocations++

	c.trace.Record(uintptr(ptr), 2)

	if c.trigger.Hit() {
		c.triggerCollectLocked()
	}

	return ptr
}

// Resize grows or shrinks the tracked allocation at ptr to size bytes,
// returning the (possibly relocated) new address, or nil if ptr is not a
// live tracked allocation (spec.md §4.C "resize"). Two equivalences from
// spec.md §8 P4 are honored: resize(nil, n) behaves exactly like
// allocate(n, false), and resize(p, 0) behaves exactly like free(p)
// followed by returning nil.
//
// On a normal resize, both the registry entry's Ptr and Size are updated
// to the new address/size — spec.md §9's resolved open question: the
// original_source/gc.c `gc_realloc` updates only `entry->ptr`, leaving
// `entry->size` stale, which this port treats as a latent bug rather than
// an intentional "size is only ever a lower bound" contract. See
// DESIGN.md.
func (c *Collector) Resize(ptr unsafe.Pointer, size uintptr) unsafe.Pointer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ptr == nil {
		return c.allocLocked(size, false)
	}
	if size == 0 {
		c.freeLocked(ptr)
		return nil
	}

	e := c.list.FindByPtr(uintptr(ptr))
	if e == nil {
		return nil
	}

	newPtr := c.arena.Resize(ptr, size)
	if newPtr == nil {
		return nil
	}

	c.trace.Forget(e.Ptr)
	e.Ptr = uintptr(newPtr)
	e.Size = size
	c.trace.Record(e.Ptr, 1)

	return newPtr
}

// Free releases the tracked allocation at ptr immediately, without
// waiting for a collection cycle. Freeing an address the registry does
// not track is a silent no-op (spec.md §7: "free of an untracked pointer
// is a silent no-op").
func (c *Collector) Free(ptr unsafe.Pointer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.freeLocked(ptr)
}

func (c *Collector) freeLocked(ptr unsafe.Pointer) {
	e := c.list.FindByPtr(uintptr(ptr))
	if e == nil {
		return
	}
	c.list.Remove(e)
	c.arena.Free(ptr)
	c.trace.Forget(e.Ptr)
}
