// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"path/filepath"
	"sort"
	"testing"
)

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "gen")

	writeFile(t, filepath.Join(root, "a.wgsl"), minimalVertex)
	writeFile(t, filepath.Join(root, "sub", "b.vert.glsl"), "void main() {}")
	writeFile(t, filepath.Join(root, "notes.txt"), "not a shader")
	// Previously generated files must not be re-ingested.
	writeFile(t, filepath.Join(out, "wgsl", "a.wgsl"), minimalVertex)

	shaders, err := Discover(root, out)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	var paths []string
	for _, sh := range shaders {
		paths = append(paths, filepath.ToSlash(sh.Path))
	}
	sort.Strings(paths)

	want := []string{"a.wgsl", "sub/b.vert.glsl"}
	if len(paths) != len(want) {
		t.Fatalf("Discover returned %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("Discover[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestDiscover_OutBesideSrc(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "shaders")
	out := filepath.Join(base, "out")

	writeFile(t, filepath.Join(root, "a.wgsl"), minimalVertex)
	writeFile(t, filepath.Join(out, "glsl", "a.vert.glsl"), "void main() {}")

	shaders, err := Discover(root, out)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(shaders) != 1 || shaders[0].Path != "a.wgsl" {
		t.Errorf("Discover found %d shaders, want only a.wgsl", len(shaders))
	}
}

func TestDiscover_MissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")
	if _, err := Discover(root, filepath.Join(root, "gen")); err == nil {
		t.Error("Discover of missing root succeeded")
	}
}
