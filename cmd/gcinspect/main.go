// Package main implements the gcinspect CLI tool.
//
// gcinspect reports which conservgc scan flags (spec.md §6) the current
// platform supports, and can check that a target module's go.mod actually
// requires conservgc before you wire it in.
//
// Usage:
//
//	gcinspect caps                  # show scan support on this GOOS/GOARCH
//	gcinspect check ./go.mod        # verify a module requires conservgc
//	gcinspect version               # show version information
package main

import (
	"fmt"
	"os"
	"runtime"

	"golang.org/x/mod/modfile"

	"github.com/kolkov/conservgc/gc"
	"github.com/kolkov/conservgc/internal/gc/platform"
)

const modulePath = "github.com/kolkov/conservgc"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "caps":
		capsCommand()
	case "check":
		checkCommand(os.Args[2:])
	case "version", "--version", "-v":
		info := gc.GetInfo()
		fmt.Printf("gcinspect: conservgc %s (%s)\n", info.Version, info.Algorithm)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`gcinspect - conservgc capability inspector

USAGE:
    gcinspect <command> [arguments]

COMMANDS:
    caps               Show which scan flags this GOOS/GOARCH supports
    check <go.mod>     Verify a module's go.mod requires conservgc
    version            Show version information
    help               Show this help message
`)
}

func capsCommand() {
	fmt.Printf("GOOS/GOARCH: %s/%s\n\n", runtime.GOOS, runtime.GOARCH)

	_, stackOK := platform.StackBase()
	_, dataOK := platform.DataRange()
	_, bssOK := platform.BSSRange()
	heapOK := len(platform.HeapRegions()) > 0

	report("ScanStack", stackOK)
	report("ScanData", dataOK)
	report("ScanBSS", bssOK)
	report("ScanHeaps (OS probe)", heapOK)
	fmt.Println("ScanHeaps (arena fallback): always available")
	fmt.Println("ScanRegisters: always available on amd64/386/arm/arm64")
}

func report(name string, ok bool) {
	status := "unsupported"
	if ok {
		status = "supported"
	}
	fmt.Printf("%-24s %s\n", name, status)
}

func checkCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: gcinspect check <path-to-go.mod>")
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", args[0], err)
		os.Exit(1)
	}

	if !requiresConservgc(args[0], data) {
		fmt.Printf("does not require %s\n", modulePath)
		os.Exit(1)
	}
	fmt.Printf("requires %s\n", modulePath)
}

// requiresConservgc reports whether the go.mod at path declares a
// requirement on conservgc.
func requiresConservgc(path string, data []byte) bool {
	mf, err := modfile.Parse(path, data, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parsing %s: %v\n", path, err)
		os.Exit(1)
	}

	for _, req := range mf.Require {
		if req.Mod.Path == modulePath {
			return true
		}
	}
	return false
}
