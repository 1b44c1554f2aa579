// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package language

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gogpu/naga/ir"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/starch/pathutil"
)

// Language identifies a shading language.
type Language uint8

const (
	WGSL Language = iota
	GLSL
	SPV
	HLSL
	MSL
)

// Count is the number of supported languages.
const Count = 5

// All lists every supported language in stable enumeration order.
// Manifest rendering and capability iteration follow this order.
var All = [Count]Language{WGSL, GLSL, SPV, HLSL, MSL}

// Stage identifies a pipeline stage, or StageNone when a file or
// output is not bound to a single stage.
type Stage uint8

const (
	StageNone Stage = iota
	StageVertex
	StageFragment
	StageCompute
)

// StageFromIR converts a naga IR stage to a Stage.
func StageFromIR(s ir.ShaderStage) Stage {
	switch s {
	case ir.StageVertex:
		return StageVertex
	case ir.StageFragment:
		return StageFragment
	case ir.StageCompute:
		return StageCompute
	}
	return StageNone
}

// IR converts the stage to its naga IR equivalent.
// Calling IR on StageNone is invalid.
func (s Stage) IR() ir.ShaderStage {
	switch s {
	case StageVertex:
		return ir.StageVertex
	case StageFragment:
		return ir.StageFragment
	case StageCompute:
		return ir.StageCompute
	}
	panic("language: no IR stage for StageNone")
}

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "Vertex"
	case StageFragment:
		return "Fragment"
	case StageCompute:
		return "Compute"
	}
	return "None"
}

// Tag returns the uppercase manifest tag for the stage, or "" for
// StageNone.
func (s Stage) Tag() string {
	switch s {
	case StageVertex:
		return "VERT"
	case StageFragment:
		return "FRAG"
	case StageCompute:
		return "COMP"
	}
	return ""
}

// support is the per-language capability record.
type support struct {
	upper string
	lower string

	// binary marks languages whose serialized form is not text.
	binary bool

	// wholeModule marks languages that accept a module with several
	// entry points in a single output file. The rest fan out to one
	// file per entry point.
	wholeModule bool

	// stageSensitive marks languages whose front-end needs a resolved
	// pipeline stage before it can parse a file.
	stageSensitive bool

	// ext maps each stage state to the long output extension.
	ext [4]string

	front Frontend
	back  Backend
}

// registry is indexed by Language. Every language defines an extension
// for each of the four stage states; front and back may be nil when
// naga ships no front-end or back-end for the language.
var registry = [Count]support{
	WGSL: {
		upper:       "WGSL",
		lower:       "wgsl",
		wholeModule: true,
		ext:         [4]string{"wgsl", "vert.wgsl", "frag.wgsl", "comp.wgsl"},
		front:       parseWGSL,
	},
	GLSL: {
		upper:          "GLSL",
		lower:          "glsl",
		stageSensitive: true,
		ext:            [4]string{"glsl", "vert.glsl", "frag.glsl", "comp.glsl"},
		back:           generateGLSL,
	},
	SPV: {
		upper:       "SPV",
		lower:       "spv",
		binary:      true,
		wholeModule: true,
		ext:         [4]string{"spv", "v.spv", "f.spv", "c.spv"},
		back:        generateSPV,
	},
	HLSL: {
		upper: "HLSL",
		lower: "hlsl",
		ext:   [4]string{"hlsl", "vert.hlsl", "frag.hlsl", "comp.hlsl"},
		back:  generateHLSL,
	},
	MSL: {
		upper: "MSL",
		lower: "msl",
		ext:   [4]string{"msl", "vert.msl", "frag.msl", "comp.msl"},
		back:  generateMSL,
	},
}

// String returns the canonical uppercase name.
func (l Language) String() string { return registry[l].upper }

// Lower returns the canonical lowercase name, used for target
// subdirectories and manifest group comments.
func (l Language) Lower() string { return registry[l].lower }

// Binary reports whether the language's serialized form is binary.
func (l Language) Binary() bool { return registry[l].binary }

// WholeModule reports whether a module with more than one entry point
// can be emitted as a single file in this language.
func (l Language) WholeModule() bool { return registry[l].wholeModule }

// StageSensitive reports whether the language's front-end requires a
// resolved pipeline stage.
func (l Language) StageSensitive() bool { return registry[l].stageSensitive }

// Ext returns the long output extension for the given stage state.
// It is total over all languages and all four stage states.
func (l Language) Ext(stage Stage) string { return registry[l].ext[stage] }

// Parse resolves a language from its name, case-insensitively.
func Parse(value string) (Language, error) {
	switch strings.ToLower(value) {
	case "wgsl":
		return WGSL, nil
	case "glsl":
		return GLSL, nil
	case "spv":
		return SPV, nil
	case "hlsl":
		return HLSL, nil
	case "msl":
		return MSL, nil
	}
	return 0, fmt.Errorf("language: unknown shader language %q", value)
}

// sourceExtensions maps file extensions to the source language they
// indicate. Lookup is case-insensitive.
var sourceExtensions = map[string]Language{
	"wgsl": WGSL,
	"glsl": GLSL,
	"vs":   GLSL,
	"fs":   GLSL,
	"cs":   GLSL,
	"vert": GLSL,
	"frag": GLSL,
	"comp": GLSL,
	"spv":  SPV,
}

// Detect maps a file path's extension to a source language. Files with
// an unrecognized extension are not shader sources and report ok=false.
func Detect(path string) (Language, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, false
	}
	lang, ok := sourceExtensions[strings.ToLower(ext)]
	return lang, ok
}

// DetectStage inspects the filename's long extension (everything after
// the first dot, e.g. "vert.glsl" for "foo.vert.glsl") for a
// stage-indicating token. Absence of a match yields StageNone; a stage
// is only required for stage-sensitive languages.
func DetectStage(path string) Stage {
	long, ok := pathutil.LongExt(path)
	if !ok {
		return StageNone
	}
	switch strings.ToLower(long) {
	case "vs", "vert", "vs.glsl", "vert.glsl":
		return StageVertex
	case "fs", "frag", "fs.glsl", "frag.glsl":
		return StageFragment
	case "cs", "comp", "cs.glsl", "comp.glsl":
		return StageCompute
	}
	return StageNone
}

// MarshalYAML encodes the language as its lowercase name.
func (l Language) MarshalYAML() (any, error) {
	return l.Lower(), nil
}

// UnmarshalYAML decodes a language from its name.
func (l *Language) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	lang, err := Parse(name)
	if err != nil {
		return err
	}
	*l = lang
	return nil
}
