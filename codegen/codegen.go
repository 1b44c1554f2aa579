// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package codegen

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gogpu/starch/language"
	"github.com/gogpu/starch/pathutil"
)

// File is one file the manifest exposes: an original shader source or
// a generated output.
type File struct {
	// Language is the file's source or target language.
	Language language.Language

	// Path is the file's path relative to the manifest's directory,
	// slash-separated so it is usable as a //go:embed pattern.
	Path string

	// Stage is the pipeline stage the file is bound to, or StageNone
	// for whole-module outputs and plain sources.
	Stage language.Stage
}

// key is the identity of a File within a manifest. Files are compared
// by canonicalized path only; two records with the same path but
// different stages collapse into one entry.
func (f File) key() string {
	return path.Clean(filepath.ToSlash(f.Path))
}

// Name derives the manifest variable name: the filename's prefix
// (before the first dot) uppercased with non-identifier characters
// mapped to underscores, plus an uppercase stage tag for languages
// that fan out per entry point.
func (f File) Name() string {
	name := identifier(pathutil.Prefix(f.Path))
	if !f.Language.WholeModule() && f.Stage != language.StageNone {
		name += "_" + f.Stage.Tag()
	}
	return name
}

func identifier(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 || s[0] >= '0' && s[0] <= '9' {
		return "_" + b.String()
	}
	return b.String()
}

// Data collects the files the manifest should expose, keyed by
// language: original sources under their source language and generated
// outputs under their target language. Both sets deduplicate by
// canonical path.
type Data struct {
	sources  map[language.Language]map[string]File
	includes map[language.Language]map[string]File
}

// New returns an empty Data.
func New() *Data {
	return &Data{
		sources:  make(map[language.Language]map[string]File),
		includes: make(map[language.Language]map[string]File),
	}
}

// RegisterSource records an original shader source under lang.
// Registering the same canonical path twice keeps a single entry.
func (d *Data) RegisterSource(lang language.Language, f File) {
	register(d.sources, lang, f)
}

// RegisterResult records a generated output file under lang.
// Registering the same canonical path twice keeps a single entry.
func (d *Data) RegisterResult(lang language.Language, f File) {
	register(d.includes, lang, f)
}

func register(m map[language.Language]map[string]File, lang language.Language, f File) {
	set := m[lang]
	if set == nil {
		set = make(map[string]File)
		m[lang] = set
	}
	key := f.key()
	if _, ok := set[key]; !ok {
		set[key] = f
	}
}

// Merge folds other into d as a key-wise set union. Merge is
// associative and commutative for records carrying equal metadata per
// path, so partial Data from shaders processed in any order or in
// parallel combine into identical results.
func (d *Data) Merge(other *Data) {
	if other == nil {
		return
	}
	mergeSets(d.sources, other.sources)
	mergeSets(d.includes, other.includes)
}

func mergeSets(dst, src map[language.Language]map[string]File) {
	for lang, set := range src {
		for _, f := range set {
			register(dst, lang, f)
		}
	}
}

// Empty reports whether no file has been registered.
func (d *Data) Empty() bool {
	for _, set := range d.sources {
		if len(set) > 0 {
			return false
		}
	}
	for _, set := range d.includes {
		if len(set) > 0 {
			return false
		}
	}
	return true
}

// group returns the union of sources and includes for lang, sorted by
// variable name then path.
func (d *Data) group(lang language.Language) []File {
	union := make(map[string]File, len(d.sources[lang])+len(d.includes[lang]))
	for key, f := range d.sources[lang] {
		union[key] = f
	}
	for key, f := range d.includes[lang] {
		if _, ok := union[key]; !ok {
			union[key] = f
		}
	}

	files := make([]File, 0, len(union))
	for _, f := range union {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].Name() != files[j].Name() {
			return files[i].Name() < files[j].Name()
		}
		return files[i].key() < files[j].key()
	})
	return files
}

// Render produces the manifest as Go source: per language, in the
// fixed enumeration order, one var block of //go:embed variables bound
// to the exposed paths. Text languages embed as string, binary
// languages as []byte. Languages with no exposed files are omitted.
func (d *Data) Render(pkg string) string {
	var b strings.Builder
	b.WriteString("// Code generated by starch. DO NOT EDIT.\n\n")
	b.WriteString("package ")
	b.WriteString(pkg)
	b.WriteString("\n")

	if !d.Empty() {
		b.WriteString("\nimport _ \"embed\"\n")
	}

	for _, lang := range language.All {
		files := d.group(lang)
		if len(files) == 0 {
			continue
		}

		b.WriteString("\n// ")
		b.WriteString(lang.String())
		b.WriteString(" shaders.\nvar (\n")
		for i, f := range files {
			if i > 0 {
				b.WriteString("\n")
			}
			typ := "string"
			if lang.Binary() {
				typ = "[]byte"
			}
			fmt.Fprintf(&b, "\t//go:embed %s\n", f.key())
			fmt.Fprintf(&b, "\t%s_%s %s\n", lang.String(), f.Name(), typ)
		}
		b.WriteString(")\n")
	}
	return b.String()
}

// WriteFile renders the manifest and fully replaces any file at path
// with it, creating parent directories as needed.
func (d *Data) WriteFile(path, pkg string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("codegen: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(d.Render(pkg)), 0o644); err != nil {
		return fmt.Errorf("codegen: %w", err)
	}
	return nil
}
