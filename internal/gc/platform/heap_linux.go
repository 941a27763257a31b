//go:build linux

package platform

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// heapRegions parses /proc/self/maps for private, writable, heap-like
// mappings, matching gc.c's own predicate exactly (spec.md §4.A item 4):
// rw-p permissions, and a pathname that is "[heap]", empty, or a bracketed
// pseudo-path containing "anon". mmap-backed arena allocations (spec.md's
// "platform allocator") show up this way.
func heapRegions() []Range {
	f, err := os.Open("/proc/self/maps")
	if err != nil {
		return nil
	}
	defer f.Close()

	var ranges []Range
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		// perms is "rwxp" or "rwxs"; only private, writable, readable
		// mappings qualify (gc.c: perms[0]=='r' && perms[1]=='w' &&
		// perms[3]=='p') — this excludes read-only and shared mappings,
		// not just non-writable ones.
		perms := fields[1]
		if len(perms) < 4 || perms[0] != 'r' || perms[1] != 'w' || perms[3] != 'p' {
			continue
		}

		// is_heap: the path is exactly "[heap]", empty, or a bracketed
		// pseudo-path containing "anon" (gc.c:639-641). This deliberately
		// excludes [stack], [vdso], [vvar] and similar bracketed regions
		// that are writable+private but not heap-like.
		path := ""
		if len(fields) >= 6 {
			path = fields[5]
		}
		isHeap := path == "[heap]" || path == "" ||
			(strings.HasPrefix(path, "[") && strings.Contains(path, "anon"))
		if !isHeap {
			continue
		}

		bounds := strings.SplitN(fields[0], "-", 2)
		if len(bounds) != 2 {
			continue
		}
		start, err1 := strconv.ParseUint(bounds[0], 16, 64)
		end, err2 := strconv.ParseUint(bounds[1], 16, 64)
		if err1 != nil || err2 != nil || end <= start {
			continue
		}
		ranges = append(ranges, Range{Start: uintptr(start), End: uintptr(end)})
	}
	return ranges
}
