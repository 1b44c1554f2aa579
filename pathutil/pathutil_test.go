// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package pathutil

import "testing"

func TestPrefix(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"foo.vert.glsl", "foo"},
		{"a/b/foo.vert.glsl", "foo"},
		{"foo.wgsl", "foo"},
		{"foo", "foo"},
		{"a/b/foo", "foo"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Prefix(tt.path); got != tt.want {
				t.Errorf("Prefix(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestLongExt(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"foo.vert.glsl", "vert.glsl", true},
		{"a/b/foo.vert.glsl", "vert.glsl", true},
		{"foo.wgsl", "wgsl", true},
		{"foo", "", false},
		{"foo.", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := LongExt(tt.path)
			if ok != tt.ok {
				t.Fatalf("LongExt(%q) ok = %v, want %v", tt.path, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("LongExt(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestWithLongExt(t *testing.T) {
	tests := []struct {
		path string
		ext  string
		want string
	}{
		{"a.vert.glsl", "wgsl", "a.wgsl"},
		{"a.wgsl", "vert.hlsl", "a.vert.hlsl"},
		{"sub/a.vert.glsl", "frag.hlsl", "sub/a.frag.hlsl"},
		{"a", "spv", "a.spv"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := WithLongExt(tt.path, tt.ext); got != tt.want {
				t.Errorf("WithLongExt(%q, %q) = %q, want %q", tt.path, tt.ext, got, tt.want)
			}
		})
	}
}
