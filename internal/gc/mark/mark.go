// Package mark implements the collector's conservative scan-and-mark pass
// (spec.md §4.D): walking pointer-sized words across a memory range,
// recognising and skipping the collector's own tagged bookkeeping, and
// flagging registry entries whose base address turns up in a root region.
package mark

import (
	"unsafe"

	"github.com/kolkov/conservgc/internal/gc/registry"
)

const wordSize = unsafe.Sizeof(uintptr(0))

// Engine performs one collection cycle's worth of marking against a
// single allocation registry.
type Engine struct {
	list      *registry.List
	stateSize uintptr
	worklist  []*registry.Entry
}

// New creates a mark engine over list. stateSize is sizeof of the
// collector state embedding the registry, used to recognise and skip the
// state's own tag the same way registry.EntrySize does for individual
// records (spec.md §4.D step 1).
func New(list *registry.List, stateSize uintptr) *Engine {
	return &Engine{list: list, stateSize: stateSize}
}

// Words marks every entry whose base address equals one of words,
// recording no address (spec.md §4.D root-set assembly step 1: the
// register pre-mark "is a fast path" with no backing memory address to
// report — registry.Entry.ReachAddr stays zero, meaning "found in a
// register").
func (m *Engine) Words(words []uintptr) {
	for _, v := range words {
		m.hit(v, 0)
	}
}

// Range scans [low, high) at pointer-size stride (spec.md §4.D: "Scans
// [low, high - pointer_size] inclusive", the equivalent half-open
// interval). When checkTags is true, a tag found at the current address
// causes the scan to jump past the tagged structure instead of reading it
// as a candidate pointer (spec.md §4.D step 1) — the only reason scanning
// the heap, which contains the collector's own records, is safe at all.
func (m *Engine) Range(low, high uintptr, checkTags bool) {
	if high < low || high-low < wordSize {
		return
	}
	for p := low; p <= high-wordSize; {
		if checkTags {
			if skip := m.tagSkipAt(p); skip > 0 {
				p += skip
				continue
			}
		}
		v := *(*uintptr)(unsafe.Pointer(p))
		m.hit(v, p)
		p += wordSize
	}
}

// hit checks candidate value v against every not-yet-reachable registry
// entry (spec.md §4.D step 2) and, on a match, marks it and queues it for
// transitive descent.
func (m *Engine) hit(v, addr uintptr) {
	e := m.list.FindByPtr(v)
	if e == nil || e.Reachable {
		return
	}
	trace(v, addr)
	e.Reachable = true
	e.ReachAddr = addr
	m.worklist = append(m.worklist, e)
}

// tagSkipAt reports how many bytes to advance past p if a tag starts
// there, or 0 if neither tag matches.
func (m *Engine) tagSkipAt(p uintptr) uintptr {
	if hasTag(p, registry.StateTag) {
		return m.stateSize
	}
	if hasTag(p, registry.EntryTag) {
		return registry.EntrySize
	}
	return 0
}

func hasTag(p uintptr, tag [len(registry.EntryTag)]byte) bool {
	bytes := unsafe.Slice((*byte)(unsafe.Pointer(p)), len(tag))
	for i := range tag {
		if bytes[i] != tag[i] {
			return false
		}
	}
	return true
}

// Drain transitively descends into every allocation discovered so far,
// scanning each payload for further tracked pointers (spec.md §4.D step
// 2, "recurse"), using an explicit worklist instead of native call
// recursion so descent depth never depends on the calling goroutine's
// stack (spec.md §9 implementer's note). Root regions must all have been
// scanned via Words/Range before calling Drain.
func (m *Engine) Drain() {
	for len(m.worklist) > 0 {
		n := len(m.worklist) - 1
		e := m.worklist[n]
		m.worklist = m.worklist[:n]
		m.Range(e.Ptr, e.Ptr+e.Size, true)
	}
}
