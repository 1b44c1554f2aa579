// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package shader models one discovered shader source file and the
// stages of its build pipeline.
//
// A Shader moves through Read → Preprocess → Parse → Validate; each
// stage is lazy and cached, so repeating a stage is a no-op returning
// the cached value. The shader is exclusively owned by its pipeline
// run and does not outlive the build.
//
// Discover walks a source tree and produces the batch of Shaders to
// process, excluding the generated-output subtree and silently
// skipping files whose extension no language claims.
package shader
