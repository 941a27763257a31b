package platform

import "testing"

func TestSaveRegistersPopulatesSnapshot(t *testing.T) {
	SaveRegisters()
	words := SnapshotWords()
	if len(words) == 0 {
		t.Fatal("SnapshotWords returned no words")
	}
}

func TestCurrentStackTopNonZero(t *testing.T) {
	SaveRegisters()
	if top := CurrentStackTop(); top == 0 {
		t.Fatal("CurrentStackTop returned 0")
	}
}

func TestStackBaseAboveCurrentStackTop(t *testing.T) {
	SaveRegisters()
	top := CurrentStackTop()
	base, ok := StackBase()
	if !ok {
		t.Skip("stack base probe unsupported on this architecture")
	}
	if base < top {
		t.Fatalf("stack base %#x below current stack top %#x", base, top)
	}
}

func TestStaticDataRangesWellFormed(t *testing.T) {
	if r, ok := DataRange(); ok && r.End < r.Start {
		t.Fatalf("data range end %#x before start %#x", r.End, r.Start)
	}
	if r, ok := BSSRange(); ok && r.End < r.Start {
		t.Fatalf("bss range end %#x before start %#x", r.End, r.Start)
	}
}

func TestHeapRegionsWellFormed(t *testing.T) {
	for _, r := range HeapRegions() {
		if r.End < r.Start {
			t.Fatalf("range end %#x before start %#x", r.End, r.Start)
		}
	}
}

func TestRangeLen(t *testing.T) {
	r := Range{Start: 0x1000, End: 0x2000}
	if got, want := r.Len(), uintptr(0x1000); got != want {
		t.Fatalf("Len() = %#x, want %#x", got, want)
	}
	empty := Range{Start: 0x2000, End: 0x1000}
	if got := empty.Len(); got != 0 {
		t.Fatalf("Len() on inverted range = %#x, want 0", got)
	}
}
