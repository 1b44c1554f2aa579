// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"fmt"
	"io/fs"
	"path/filepath"
)

// canonical resolves path to an absolute, symlink-free form for
// directory comparison. When the path does not exist yet, the cleaned
// absolute path is used.
func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

// Discover walks root recursively and returns a Shader for every file
// whose extension maps to a known source language. The out directory
// is excluded from the walk so previously generated files are never
// re-ingested as sources. Files with unrecognized extensions are
// silently skipped.
//
// The result order follows the filesystem walk and is not guaranteed;
// callers that need determinism must sort by Path.
func Discover(root, out string) ([]*Shader, error) {
	croot, err := canonical(root)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	cout, err := canonical(out)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}

	var shaders []*Shader
	err = filepath.WalkDir(croot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == cout {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(croot, path)
		if err != nil {
			return err
		}
		if sh, ok := New(croot, rel); ok {
			shaders = append(shaders, sh)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	return shaders, nil
}
