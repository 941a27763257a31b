package arena

import (
	"testing"
	"unsafe"
)

func TestAllocZerosMemory(t *testing.T) {
	a := New()
	ptr := a.Alloc(64)
	if ptr == nil {
		t.Fatal("Alloc returned nil")
	}
	b := unsafe.Slice((*byte)(ptr), 64)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d = %d, want 0", i, v)
		}
	}
}

func TestFreeThenRegionsExcludesIt(t *testing.T) {
	a := New()
	ptr := a.Alloc(32)
	if len(a.Regions()) != 1 {
		t.Fatalf("Regions() len = %d, want 1 after Alloc", len(a.Regions()))
	}

	a.Free(ptr)

	if len(a.Regions()) != 0 {
		t.Fatalf("Regions() len = %d, want 0 after Free", len(a.Regions()))
	}
}

func TestResizePreservesPrefix(t *testing.T) {
	a := New()
	ptr := a.Alloc(16)
	b := unsafe.Slice((*byte)(ptr), 16)
	for i := range b {
		b[i] = byte(i + 1)
	}

	grown := a.Resize(ptr, 64)
	if grown == nil {
		t.Fatal("Resize returned nil")
	}

	gb := unsafe.Slice((*byte)(grown), 64)
	for i := 0; i < 16; i++ {
		if gb[i] != byte(i+1) {
			t.Fatalf("byte %d = %d after resize, want %d", i, gb[i], i+1)
		}
	}
}

func TestResizeUnknownPointerReturnsNil(t *testing.T) {
	a := New()
	var bogus byte
	if got := a.Resize(unsafe.Pointer(&bogus), 16); got != nil {
		t.Fatalf("Resize(unknown) = %v, want nil", got)
	}
}

func TestRegionsCoverAllocatedBytes(t *testing.T) {
	a := New()
	ptr := a.Alloc(100)
	base := uintptr(ptr)

	regions := a.Regions()
	if len(regions) != 1 {
		t.Fatalf("Regions() len = %d, want 1", len(regions))
	}
	r := regions[0]
	if r.Start != base {
		t.Fatalf("region start = %#x, want %#x", r.Start, base)
	}
	if r.End-r.Start < 100 {
		t.Fatalf("region length %d is smaller than requested 100", r.End-r.Start)
	}
}
