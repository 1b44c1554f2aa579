// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/starch/language"
)

// Shader is one discovered shader source file moving through the
// build pipeline.
type Shader struct {
	// Path is the source path relative to the source root, using the
	// platform separator.
	Path string

	// Lang is the source language, detected from the file extension.
	Lang language.Language

	// Stage is the pipeline stage detected from the filename
	// convention (e.g. "foo.vert.glsl"), or StageNone. Only
	// stage-sensitive languages require it.
	Stage language.Stage

	root string

	source []byte
	loaded bool

	module *ir.Module

	validated bool
	valErr    error
}

// New creates a Shader for path (relative to root) when its extension
// maps to a known source language. ok is false for files that are not
// shader sources.
func New(root, path string) (*Shader, bool) {
	lang, ok := language.Detect(path)
	if !ok {
		return nil, false
	}
	return &Shader{
		Path:  path,
		Lang:  lang,
		Stage: language.DetectStage(path),
		root:  root,
	}, true
}

// FullPath returns the absolute path of the source file.
func (s *Shader) FullPath() string {
	return filepath.Join(s.root, s.Path)
}

// Read loads the raw source, as bytes for binary languages and UTF-8
// text otherwise. The result is cached; repeated calls do not touch
// the filesystem again.
func (s *Shader) Read() ([]byte, error) {
	if s.loaded {
		return s.source, nil
	}
	data, err := os.ReadFile(s.FullPath())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	s.source = data
	s.loaded = true
	return s.source, nil
}

// SetSource replaces the cached source, used by the preprocessor to
// install the include-expanded text. Any cached parse result is
// discarded.
func (s *Shader) SetSource(source []byte) {
	s.source = source
	s.loaded = true
	s.module = nil
	s.validated = false
	s.valErr = nil
}

// Parse converts the source into a naga IR module through the
// language's front-end. Parsing is idempotent: a shader that already
// holds a module returns it without re-invoking the front-end.
//
// Stage-sensitive languages fail with language.ErrUnhandledStage when
// no stage was resolved from the filename; languages without a
// front-end fail with language.ErrSourceNotSupported.
func (s *Shader) Parse() (*ir.Module, error) {
	if s.module != nil {
		return s.module, nil
	}

	front, ok := s.Lang.Frontend()
	if !ok {
		return nil, fmt.Errorf("%s: %w", s.Path, language.ErrSourceNotSupported)
	}
	if s.Lang.StageSensitive() && s.Stage == language.StageNone {
		return nil, fmt.Errorf("%s: %w", s.Path, language.ErrUnhandledStage)
	}

	source, err := s.Read()
	if err != nil {
		return nil, err
	}
	module, err := front(source, s.Stage)
	if err != nil {
		return nil, fmt.Errorf("%s: parse: %w", s.Path, err)
	}
	s.module = module
	return s.module, nil
}

// Module returns the cached IR module, or nil before a successful
// Parse.
func (s *Shader) Module() *ir.Module { return s.module }

// Validate runs naga validation over the parsed module. The result is
// produced once per module and cached.
func (s *Shader) Validate() error {
	if s.validated {
		return s.valErr
	}
	if s.module == nil {
		return fmt.Errorf("%s: validate: module not parsed", s.Path)
	}
	s.validated = true

	errs, err := naga.Validate(s.module)
	if err != nil {
		s.valErr = fmt.Errorf("%s: validation: %w", s.Path, err)
	} else if len(errs) > 0 {
		s.valErr = fmt.Errorf("%s: validation: %w", s.Path, &errs[0])
	}
	return s.valErr
}
