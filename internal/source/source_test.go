// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package source

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("ZISRAWFILE000000"), 0o644); err != nil {
		t.Fatalf("WriteFile(%q) failed: %v", path, err)
	}
}

func TestDiscoverMasterOnly(t *testing.T) {
	dir := t.TempDir()
	master := filepath.Join(dir, "slide.czi")
	writeFixture(t, master)

	sources, err := Discover(master)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	defer closeAll(sources)

	if len(sources) != 1 {
		t.Fatalf("len(sources) = %d, want 1", len(sources))
	}
	if sources[0].Path != master {
		t.Fatalf("sources[0].Path = %q, want %q", sources[0].Path, master)
	}
}

func TestDiscoverMultiPart(t *testing.T) {
	dir := t.TempDir()
	master := filepath.Join(dir, "slide.czi")
	writeFixture(t, master)
	writeFixture(t, filepath.Join(dir, "slide (1).czi"))
	writeFixture(t, filepath.Join(dir, "slide (2).czi"))

	sources, err := Discover(master)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	defer closeAll(sources)

	if len(sources) != 3 {
		t.Fatalf("len(sources) = %d, want 3", len(sources))
	}
}

func TestDiscoverStopsAtFirstGap(t *testing.T) {
	dir := t.TempDir()
	master := filepath.Join(dir, "slide.czi")
	writeFixture(t, master)
	writeFixture(t, filepath.Join(dir, "slide (1).czi"))
	// Gap at (2); (3) exists but must not be picked up.
	writeFixture(t, filepath.Join(dir, "slide (3).czi"))

	sources, err := Discover(master)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	defer closeAll(sources)

	if len(sources) != 2 {
		t.Fatalf("len(sources) = %d, want 2 (stop at first gap)", len(sources))
	}
}

func TestDiscoverMissingMasterFails(t *testing.T) {
	dir := t.TempDir()
	master := filepath.Join(dir, "missing.czi")

	if _, err := Discover(master); err == nil {
		t.Fatal("expected error opening a nonexistent master file")
	}
}
