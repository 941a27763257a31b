//go:build windows

package platform

import (
	"debug/pe"
	"os"

	"golang.org/x/sys/windows"
)

// dataRange and bssRange walk the running executable's own PE section
// table, relocated to the base address the loader actually mapped the
// module at, matching spec.md §6 ("walk the NT section table of the
// current module and match by section name").
func dataRange() (Range, bool) {
	return sectionRange(".data", false)
}

func bssRange() (Range, bool) {
	// The Go toolchain's PE output does not emit a standalone .bss
	// section; uninitialized data lives in the tail of .data where
	// VirtualSize exceeds the section's raw (initialized) size. A
	// section literally named ".bss" is still preferred when present,
	// for binaries produced by other PE toolchains.
	if r, ok := sectionRange(".bss", false); ok {
		return r, true
	}
	return sectionRange(".data", true)
}

func sectionRange(name string, bssTail bool) (Range, bool) {
	base, err := moduleBase()
	if err != nil {
		return Range{}, false
	}

	path, err := os.Executable()
	if err != nil {
		return Range{}, false
	}
	f, err := pe.Open(path)
	if err != nil {
		return Range{}, false
	}
	defer f.Close()

	for _, sec := range f.Sections {
		if sec.Name != name {
			continue
		}
		start := base + uintptr(sec.VirtualAddress)
		end := start + uintptr(sec.VirtualSize)
		if bssTail {
			start = base + uintptr(sec.VirtualAddress) + uintptr(sec.Size)
		}
		if end > start {
			return Range{Start: start, End: end}, true
		}
	}
	return Range{}, false
}

func moduleBase() (uintptr, error) {
	h, err := windows.GetModuleHandle("")
	if err != nil {
		return 0, err
	}
	return uintptr(h), nil
}
