// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// includeMacro matches the textual include form `use 'relative/path'`
// (single or double quoted). The pattern is process-wide, compiled
// once on first use, and read-only afterwards.
var includeMacro = sync.OnceValue(func() *regexp.Regexp {
	const path = `((?:\.|\.\.|[\w\-.]+)(?:[\\/](?:\.\.|[\w\-.]+))*)`
	return regexp.MustCompile(`use\s+(?:'` + path + `'|"` + path + `")`)
})

// Preprocess expands include macros in textual shader source, leaving
// binary sources untouched. Included files are resolved relative to
// the including file and expanded recursively; an include cycle is an
// error.
func Preprocess(s *Shader) error {
	if s.Lang.Binary() {
		return nil
	}
	source, err := s.Read()
	if err != nil {
		return err
	}

	full := s.FullPath()
	seen := map[string]bool{}
	if abs, err := filepath.Abs(full); err == nil {
		seen[abs] = true
	}

	expanded, err := expandIncludes(string(source), filepath.Dir(full), seen)
	if err != nil {
		return fmt.Errorf("%s: preprocess: %w", s.Path, err)
	}
	if expanded != string(source) {
		s.SetSource([]byte(expanded))
	}
	return nil
}

func expandIncludes(text, dir string, seen map[string]bool) (string, error) {
	matches := includeMacro().FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return text, nil
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		last = m[1]

		// Group 1 is the single-quoted path, group 2 double-quoted.
		var rel string
		if m[2] >= 0 {
			rel = text[m[2]:m[3]]
		} else {
			rel = text[m[4]:m[5]]
		}

		full := filepath.Join(dir, filepath.FromSlash(rel))
		key, err := filepath.Abs(full)
		if err != nil {
			return "", err
		}
		if seen[key] {
			return "", fmt.Errorf("include cycle through %s", rel)
		}

		data, err := os.ReadFile(full)
		if err != nil {
			return "", fmt.Errorf("include %s: %w", rel, err)
		}

		seen[key] = true
		inner, err := expandIncludes(string(data), filepath.Dir(full), seen)
		delete(seen, key)
		if err != nil {
			return "", err
		}
		b.WriteString(inner)
	}
	b.WriteString(text[last:])
	return b.String(), nil
}
