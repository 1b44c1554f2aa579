// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package codegen aggregates per-shader transpilation results into the
// generated embed manifest.
//
// Each processed shader contributes File records: its own source file
// and every generated output. Records are collected per language in
// Data, deduplicated by canonical path, and merged associatively so
// partial results from independently processed shaders can be combined
// in any order with identical output.
//
// Render produces a Go source file exposing every file as a
// //go:embed variable, grouped per language in a fixed enumeration
// order, so a host program can embed shader content without runtime
// file I/O.
package codegen
