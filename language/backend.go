// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package language

import (
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/hlsl"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/msl"
	"github.com/gogpu/naga/spirv"
)

// Backend serializes a validated IR module into the language's output
// form. For languages that fan out per entry point the entry argument
// selects which one to compile; whole-module languages ignore it and
// may be called with entry == nil.
type Backend func(module *ir.Module, entry *ir.EntryPoint) ([]byte, error)

// Backend returns the language's back-end, or ok=false when naga ships
// none for it.
func (l Language) Backend() (Backend, bool) {
	b := registry[l].back
	return b, b != nil
}

func generateSPV(module *ir.Module, _ *ir.EntryPoint) ([]byte, error) {
	backend := spirv.NewBackend(spirv.Options{Version: spirv.Version1_3})
	return backend.Compile(module)
}

func generateGLSL(module *ir.Module, entry *ir.EntryPoint) ([]byte, error) {
	if entry == nil {
		return nil, ErrNoEntryPoint
	}
	opts := glsl.DefaultOptions()
	opts.EntryPoint = entry.Name
	out, _, err := glsl.Compile(module, opts)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func generateHLSL(module *ir.Module, entry *ir.EntryPoint) ([]byte, error) {
	if entry == nil {
		return nil, ErrNoEntryPoint
	}
	opts := hlsl.DefaultOptions()
	opts.EntryPoint = entry.Name
	out, _, err := hlsl.Compile(module, opts)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func generateMSL(module *ir.Module, entry *ir.EntryPoint) ([]byte, error) {
	if entry == nil {
		return nil, ErrNoEntryPoint
	}
	pipeline := msl.PipelineOptions{
		EntryPoint: &msl.EntryPointSelector{
			Stage: entry.Stage,
			Name:  entry.Name,
		},
	}
	out, _, err := msl.CompileWithPipeline(module, msl.DefaultOptions(), pipeline)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}
