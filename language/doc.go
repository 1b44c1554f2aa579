// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package language enumerates the shading languages starch understands
// and their per-language capabilities.
//
// Each language carries a small capability record: whether its
// serialized form is binary, whether a module with several entry points
// fits in a single output file or fans out to one file per entry point,
// the stage-aware output extension, and the naga front-end/back-end
// used to parse and generate it. Dispatch throughout the pipeline goes
// through this table, so adding a language is a local, additive change.
//
// The table mirrors what github.com/gogpu/naga ships today: a WGSL
// front-end, and SPIR-V, GLSL, HLSL and MSL back-ends. Languages
// without a front-end reject source files with ErrSourceNotSupported;
// languages without a back-end reject transpilation with
// ErrTargetNotSupported.
package language
