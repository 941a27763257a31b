package gc

import (
	"fmt"
	"io"

	"github.com/kolkov/conservgc/internal/gc/platform"
)

// PrintState writes a human-readable dump of the collector's current
// bookkeeping to w (spec.md §6 diagnostic), formatted with
// fmt.Fprintf/io.Writer exactly the way the teacher's race-report
// formatter writes to an arbitrary writer rather than hardcoding
// os.Stderr. A nil w writes to the Collector's Options.Output.
func (c *Collector) PrintState(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if w == nil {
		w = c.out
	}

	fmt.Fprintf(w, "==================\n")
	fmt.Fprintf(w, "conservgc collector state\n")
	fmt.Fprintf(w, "flags: %#04x\n", uint32(c.flags))
	fmt.Fprintf(w, "allocations (lifetime): %d\n", c.allocations)
	fmt.Fprintf(w, "collections (lifetime): %d\n", c.collections)
	fmt.Fprintf(w, "live records: %d\n", c.list.Len())
	fmt.Fprintf(w, "threshold: %d\n", c.trigger.N())
	if base, ok := platform.StackBase(); ok {
		fmt.Fprintf(w, "stack base: %#x\n", base)
	} else {
		fmt.Fprintf(w, "stack base: unsupported on this architecture\n")
	}
	fmt.Fprintf(w, "------------------\n")

	for e := c.list.Head(); e != nil; e = e.Next() {
		fmt.Fprintf(w, "record ptr=%#x size=%d reachable=%v", e.Ptr, e.Size, e.Reachable)
		if e.Reachable && e.ReachAddr != 0 {
			fmt.Fprintf(w, " reach_addr=%#x", e.ReachAddr)
		}
		if site := c.trace.Format(e.Ptr); site != "" {
			fmt.Fprintf(w, " site=%s", site)
		}
		fmt.Fprintf(w, "\n")
	}
	fmt.Fprintf(w, "==================\n")
}
