// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package pathutil provides filename helpers for shader paths, which
// conventionally carry compound extensions like "foo.vert.glsl".
package pathutil

import (
	"path/filepath"
	"strings"
)

// Prefix returns the part of the path's filename before the first dot.
// For "a/b/foo.vert.glsl" it returns "foo". A filename with no dot is
// returned whole.
func Prefix(path string) string {
	name := filepath.Base(path)
	if i := strings.IndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return name
}

// LongExt returns everything after the filename's first dot, e.g.
// "vert.glsl" for "foo.vert.glsl". ok is false when the filename has
// no extension at all.
func LongExt(path string) (string, bool) {
	name := filepath.Base(path)
	i := strings.IndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return "", false
	}
	return name[i+1:], true
}

// WithLongExt replaces everything after the filename's first dot with
// ext, preserving the directory part. For ("sub/a.vert.glsl", "wgsl")
// it returns "sub/a.wgsl".
func WithLongExt(path, ext string) string {
	dir := filepath.Dir(path)
	name := Prefix(path) + "." + ext
	if dir == "." {
		return name
	}
	return filepath.Join(dir, name)
}
