// Package registry implements the collector's allocation bookkeeping: an
// intrusive doubly-linked list of tracked allocations, each self-identifying
// with a fixed leading tag so that a conservative heap scan can recognise
// and skip the collector's own records instead of mistaking them for client
// data.
package registry

import "unsafe"

const (
	// entryTagText and stateTagText are the two tags spec.md requires to be
	// distinct, fixed, and at least 15 bytes long. They never appear in a
	// payload the collector hands to a host, so a scan that finds either at
	// an aligned address knows it is looking at collector bookkeeping, not
	// client data.
	entryTagText = "___CONSERVGC_ENTRY______"
	stateTagText = "___CONSERVGC_STATE______"
)

// tagLen is the shared width of both tags, in bytes.
const tagLen = len(entryTagText)

// EntryTag and StateTag are the fixed byte patterns copied into the leading
// bytes of every Entry and of the owning collector state respectively.
var (
	EntryTag = tagToArray(entryTagText)
	StateTag = tagToArray(stateTagText)
)

func tagToArray(s string) [tagLen]byte {
	var a [tagLen]byte
	copy(a[:], s)
	return a
}

// EntrySize is sizeof(Entry), as the mark engine needs it to skip over an
// embedded record when check_tags is set (spec.md §4.D step 1).
var EntrySize = unsafe.Sizeof(Entry{})

// Entry is the collector's bookkeeping record for one tracked allocation
// (spec.md §3 "Allocation record"). The tag MUST remain the first field: it
// is I3's invariant that the leading bytes of every record equal the tag.
type Entry struct {
	tag [tagLen]byte

	// Ptr is the user-visible base address of the payload.
	Ptr uintptr
	// Size is the number of bytes requested for the payload.
	Size uintptr
	// Reachable is reset to false at the start of every collection cycle
	// and set to true the first time the mark engine finds a pointer-sized
	// word equal to Ptr in an enabled root region (I4: meaningless outside
	// a cycle).
	Reachable bool
	// ReachAddr records where Ptr was found during the last successful
	// mark, for debugging; zero means "found in a register" or "not yet
	// marked this cycle."
	ReachAddr uintptr

	prev, next *Entry
}

// NewEntry allocates and tags a fresh Entry for ptr/size. The Entry struct
// itself is a normal Go heap value: it is bookkeeping, not payload, and is
// never returned to the host, so letting the Go runtime manage it is safe.
func NewEntry(ptr, size uintptr) *Entry {
	e := &Entry{tag: EntryTag, Ptr: ptr, Size: size}
	return e
}

// HasTag reports whether e still carries its birth tag (I3). Corruption of
// the tag would mean a host wrote past the end of some other allocation
// into collector bookkeeping; this is purely a diagnostic check.
func (e *Entry) HasTag() bool { return e.tag == EntryTag }

// List is the doubly-linked, head-pointered list of live tracked
// allocations (spec.md §4.B). The zero value is an empty list.
type List struct {
	head *Entry
	n    int
}

// Len returns the number of tracked entries.
func (l *List) Len() int { return l.n }

// Head returns the first entry, or nil if the list is empty. Callers use
// this plus Entry.Next to walk the whole list, mirroring the C source's
// `for (e = state->head; e != NULL; e = e->next)` idiom.
func (l *List) Head() *Entry { return l.head }

// Next returns the entry following e, or nil.
func (e *Entry) Next() *Entry { return e.next }

// PushFront links e in at the head of the list, as spec.md §4.B prescribes
// ("new records are pushed at the head").
func (l *List) PushFront(e *Entry) {
	e.prev = nil
	e.next = l.head
	if l.head != nil {
		l.head.prev = e
	}
	l.head = e
	l.n++
}

// Remove unlinks e from the list. e must currently belong to l; removing an
// entry not in the list is a caller bug, not a runtime condition the list
// needs to defend against (the collector never does this).
func (l *List) Remove(e *Entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	}
	e.prev, e.next = nil, nil
	l.n--
}

// FindByPtr returns the first entry whose Ptr equals ptr, or nil. Matching
// is by exact base-address equality, never by range containment: interior
// pointers are not recognised (spec.md §4.B "Pointer matching policy").
func (l *List) FindByPtr(ptr uintptr) *Entry {
	for e := l.head; e != nil; e = e.next {
		if e.Ptr == ptr {
			return e
		}
	}
	return nil
}

// ResetReachability clears Reachable/ReachAddr on every entry, as the first
// step of every collection cycle (spec.md §4.D root-set assembly step 1).
func (l *List) ResetReachability() {
	for e := l.head; e != nil; e = e.next {
		e.Reachable = false
		e.ReachAddr = 0
	}
}

// Sweep removes and returns every entry with Reachable == false, leaving
// reachable entries untouched and in place (spec.md §4.E). The caller is
// responsible for releasing the payload each returned entry describes.
func (l *List) Sweep() []*Entry {
	var dead []*Entry
	e := l.head
	for e != nil {
		next := e.next
		if !e.Reachable {
			l.Remove(e)
			dead = append(dead, e)
		}
		e = next
	}
	return dead
}

// Drain removes every entry regardless of reachability, for use by
// Collector.Close (spec.md §3 "Lifecycle": destroy frees every remaining
// tracked payload then the state itself).
func (l *List) Drain() []*Entry {
	var all []*Entry
	for e := l.head; e != nil; e = e.next {
		all = append(all, e)
	}
	l.head = nil
	l.n = 0
	return all
}
