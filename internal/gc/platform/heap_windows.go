//go:build windows

package platform

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// heapRegions walks the process address space with VirtualQuery, the
// Windows analogue of parsing /proc/self/maps (spec.md §4.A item 4):
// State=MEM_COMMIT, Type=MEM_PRIVATE, and a writable Protect value,
// matching gc.c's own mbi.State/mbi.Type/mbi.Protect checks exactly so
// that writable mapped-file or image sections (MEM_MAPPED, MEM_IMAGE) are
// excluded the same way private-vs-shared is excluded on Linux.
func heapRegions() []Range {
	var ranges []Range
	var addr uintptr
	var info windows.MemoryBasicInformation
	infoSize := unsafe.Sizeof(info)

	for {
		err := windows.VirtualQuery(addr, &info, infoSize)
		if err != nil {
			break
		}
		if info.RegionSize == 0 {
			break
		}

		committed := info.State == windows.MEM_COMMIT
		private := info.Type == windows.MEM_PRIVATE
		writable := info.Protect == windows.PAGE_READWRITE ||
			info.Protect == windows.PAGE_WRITECOPY ||
			info.Protect == windows.PAGE_EXECUTE_READWRITE
		if committed && private && writable {
			start := info.BaseAddress
			end := start + info.RegionSize
			ranges = append(ranges, Range{Start: start, End: end})
		}

		next := addr + info.RegionSize
		if next <= addr {
			break
		}
		addr = next
	}
	return ranges
}
