package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckCommandAcceptsModuleRequiringConservgc(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "go.mod")
	content := "module example.com/host\n\ngo 1.24\n\nrequire github.com/kolkov/conservgc v0.1.0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got := requiresConservgc(path, data); !got {
		t.Fatal("expected go.mod requiring conservgc to be detected")
	}
}

func TestCheckCommandRejectsModuleMissingConservgc(t *testing.T) {
	content := "module example.com/host\n\ngo 1.24\n"
	if got := requiresConservgc("go.mod", []byte(content)); got {
		t.Fatal("expected go.mod without conservgc to be rejected")
	}
}
