// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package language

import "errors"

var (
	// ErrSourceNotSupported reports a source language with no
	// front-end available.
	ErrSourceNotSupported = errors.New("source file transpilation not supported")

	// ErrTargetNotSupported reports a transpilation target with no
	// back-end available.
	ErrTargetNotSupported = errors.New("requested transpilation target not supported")

	// ErrNoEntryPoint reports a back-end invocation that requires an
	// entry point the module lacks.
	ErrNoEntryPoint = errors.New("shader has no entry point")

	// ErrUnhandledStage reports a stage-sensitive source file whose
	// pipeline stage could not be resolved from its name.
	ErrUnhandledStage = errors.New("unhandled shader stage")
)
