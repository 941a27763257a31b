package sitetrace

import "testing"

func TestDisabledTracerIsNoOp(t *testing.T) {
	var tr *Tracer
	tr.Record(0x1000, 0)
	if got := tr.Format(0x1000); got != "" {
		t.Fatalf("Format() = %q on nil tracer, want empty", got)
	}

	tr2 := New(false)
	tr2.Record(0x1000, 0)
	if got := tr2.Format(0x1000); got != "" {
		t.Fatalf("Format() = %q on disabled tracer, want empty", got)
	}
}

func TestEnabledTracerRecordsCallSite(t *testing.T) {
	tr := New(true)
	tr.Record(0x2000, 0)

	got := tr.Format(0x2000)
	if got == "" {
		t.Fatal("Format() returned empty string for recorded pointer")
	}
}

func TestForgetRemovesSite(t *testing.T) {
	tr := New(true)
	tr.Record(0x3000, 0)
	if tr.Format(0x3000) == "" {
		t.Fatal("expected a recorded site before Forget")
	}

	tr.Forget(0x3000)
	if got := tr.Format(0x3000); got != "" {
		t.Fatalf("Format() = %q after Forget, want empty", got)
	}
}

func TestUnrecordedPointerFormatsEmpty(t *testing.T) {
	tr := New(true)
	if got := tr.Format(0x4000); got != "" {
		t.Fatalf("Format() = %q for never-recorded pointer, want empty", got)
	}
}
