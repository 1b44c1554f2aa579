// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package config resolves the starch build configuration from, in
// order of precedence, STARCH_SHADER_* environment variables, an
// optional starch.yml in the project root, and built-in defaults.
// When starch.yml is absent the resolved configuration is written back
// so a project starts with an editable file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/starch/language"
)

// OnError selects the batch policy for per-shader parse and validation
// failures.
type OnError string

const (
	// Abort stops the whole batch on the first failing shader.
	Abort OnError = "abort"

	// Skip drops the failing shader with a warning and continues.
	Skip OnError = "skip"
)

// FileName is the on-disk configuration file, looked up in the
// project root.
const FileName = "starch.yml"

// Config is the resolved build configuration.
type Config struct {
	// Src is the shader source root.
	Src string `yaml:"src"`

	// Out is the output root for generated shader files. It may live
	// under Src; discovery excludes it.
	Out string `yaml:"out"`

	// Generated is the path of the manifest source file.
	Generated string `yaml:"generated"`

	// Package is the package clause of the generated manifest.
	Package string `yaml:"package"`

	// Targets are the languages every shader is transpiled to.
	Targets []language.Language `yaml:"targets"`

	// Validate runs naga validation between parsing and transpilation.
	Validate bool `yaml:"validate"`

	// OnError picks abort or skip semantics for shader failures.
	OnError OnError `yaml:"on_error"`

	// Jobs bounds concurrent shader pipelines. 1 keeps the build
	// sequential.
	Jobs int `yaml:"jobs"`
}

// Default returns the built-in configuration rooted at root.
func Default(root string) *Config {
	src := filepath.Join(root, "shaders")
	return &Config{
		Src:       src,
		Out:       filepath.Join(src, "gen"),
		Generated: filepath.Join(src, "shaders.go"),
		Package:   "shaders",
		Targets:   []language.Language{language.SPV, language.GLSL, language.HLSL, language.MSL},
		Validate:  true,
		OnError:   Abort,
		Jobs:      1,
	}
}

// Load resolves the configuration for a project root. Environment
// variables override starch.yml, which overrides defaults. A missing
// starch.yml is created from the resolved result.
func Load(root string) (*Config, error) {
	cfg := Default(root)

	path := filepath.Join(root, FileName)
	loaded, err := cfg.loadFile(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}

	if !loaded {
		if err := cfg.WriteFile(path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// loadFile overlays values from the config file when it exists.
func (c *Config) loadFile(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return false, fmt.Errorf("config: %s: %w", path, err)
	}
	return true, nil
}

// loadEnv overlays values from STARCH_SHADER_* environment variables.
func (c *Config) loadEnv() error {
	if v, ok := os.LookupEnv("STARCH_SHADER_SRC"); ok {
		c.Src = v
	}
	if v, ok := os.LookupEnv("STARCH_SHADER_OUT"); ok {
		c.Out = v
	}
	if v, ok := os.LookupEnv("STARCH_SHADER_GEN"); ok {
		c.Generated = v
	}
	if v, ok := os.LookupEnv("STARCH_SHADER_PACKAGE"); ok {
		c.Package = v
	}
	if v, ok := os.LookupEnv("STARCH_SHADER_TARGETS"); ok {
		var targets []language.Language
		for _, name := range strings.Split(v, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			lang, err := language.Parse(name)
			if err != nil {
				return fmt.Errorf("config: STARCH_SHADER_TARGETS: %w", err)
			}
			targets = append(targets, lang)
		}
		c.Targets = targets
	}
	if v, ok := os.LookupEnv("STARCH_SHADER_VALIDATION"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: STARCH_SHADER_VALIDATION: %w", err)
		}
		c.Validate = enabled
	}
	if v, ok := os.LookupEnv("STARCH_SHADER_ON_ERROR"); ok {
		c.OnError = OnError(v)
	}
	if v, ok := os.LookupEnv("STARCH_SHADER_JOBS"); ok {
		jobs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: STARCH_SHADER_JOBS: %w", err)
		}
		c.Jobs = jobs
	}
	return nil
}

func (c *Config) check() error {
	switch c.OnError {
	case Abort, Skip:
	default:
		return fmt.Errorf("config: on_error must be %q or %q, got %q", Abort, Skip, c.OnError)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("config: jobs must be at least 1, got %d", c.Jobs)
	}
	if c.Package == "" {
		return errors.New("config: package must not be empty")
	}
	return nil
}

// WriteFile stores the configuration as YAML, creating parent
// directories as needed.
func (c *Config) WriteFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
