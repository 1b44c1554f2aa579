// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package language

import (
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// Frontend parses raw shader source into a naga IR module. The stage
// argument is only meaningful for stage-sensitive languages.
type Frontend func(source []byte, stage Stage) (*ir.Module, error)

// Frontend returns the language's front-end, or ok=false when naga
// ships none for it.
func (l Language) Frontend() (Frontend, bool) {
	f := registry[l].front
	return f, f != nil
}

func parseWGSL(source []byte, _ Stage) (*ir.Module, error) {
	text := string(source)
	ast, err := naga.Parse(text)
	if err != nil {
		return nil, err
	}
	return naga.LowerWithSource(ast, text)
}
