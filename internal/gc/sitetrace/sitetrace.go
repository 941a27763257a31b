// Package sitetrace optionally records the call site of each tracked
// allocation for diagnostics (SPEC_FULL.md §4.E "Allocation-site
// tracing"). It is adapted from the teacher's internal/race/stackdepot:
// the same hash-deduplicated-storage-in-a-sync.Map shape, repurposed from
// "where did this race happen" to "where was this allocation made".
//
// This is strictly additive: nothing in the mark-and-sweep algorithm
// itself depends on it, and it does no work at all unless a Collector is
// built with Options.Debug set.
package sitetrace

import (
	"fmt"
	"hash/fnv"
	"runtime"
	"strings"
	"sync"
	"unsafe"
)

// MaxFrames bounds how many stack frames a captured site keeps.
const MaxFrames = 8

// site is a fixed-size captured call stack, deduplicated globally by
// hash exactly as the teacher's StackTrace is.
type site struct {
	pc [MaxFrames]uintptr
}

var depot sync.Map // uint64 hash -> *site

// Tracer maps tracked allocation addresses to the call site that
// produced them. A disabled Tracer (the zero value) does no work at all
// on any call, so carrying one costs nothing when Options.Debug is
// false.
type Tracer struct {
	enabled bool
	sites   sync.Map // uintptr ptr -> uint64 hash
}

// New creates a Tracer. When enabled is false every method is a no-op.
func New(enabled bool) *Tracer {
	return &Tracer{enabled: enabled}
}

// Record captures the caller's call site and associates it with ptr.
// skip is the number of additional frames to skip beyond Record itself,
// letting callers control how deep into their own allocation wrappers
// the trace should point.
func (t *Tracer) Record(ptr uintptr, skip int) {
	if t == nil || !t.enabled {
		return
	}
	var pcs [MaxFrames]uintptr
	n := runtime.Callers(2+skip, pcs[:])
	if n == 0 {
		return
	}
	hash := hashSite(pcs[:n])
	if _, exists := depot.Load(hash); !exists {
		depot.Store(hash, &site{pc: pcs})
	}
	t.sites.Store(ptr, hash)
}

// Forget drops any recorded site for ptr, called when an allocation is
// freed or resized away from its original address.
func (t *Tracer) Forget(ptr uintptr) {
	if t == nil || !t.enabled {
		return
	}
	t.sites.Delete(ptr)
}

// Format returns a human-readable call site for ptr, or "" if none was
// recorded (including when tracing is disabled).
func (t *Tracer) Format(ptr uintptr) string {
	if t == nil || !t.enabled {
		return ""
	}
	v, ok := t.sites.Load(ptr)
	if !ok {
		return ""
	}
	sv, ok := depot.Load(v.(uint64))
	if !ok {
		return ""
	}
	return sv.(*site).format()
}

func (s *site) format() string {
	frames := runtime.CallersFrames(s.pc[:])
	var buf strings.Builder
	for {
		frame, more := frames.Next()
		if frame.PC == 0 {
			break
		}
		if strings.HasPrefix(frame.Function, "runtime.") {
			if !more {
				break
			}
			continue
		}
		fmt.Fprintf(&buf, "%s (%s:%d)", frame.Function, frame.File, frame.Line)
		break
	}
	return buf.String()
}

func hashSite(pcs []uintptr) uint64 {
	h := fnv.New64a()
	for _, pc := range pcs {
		b := (*[unsafe.Sizeof(uintptr(0))]byte)(unsafe.Pointer(&pc))[:]
		_, _ = h.Write(b)
	}
	return h.Sum64()
}
