// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/starch/language"
)

// clearEnv unsets every STARCH_SHADER_* variable for the test so
// ambient environment does not leak into precedence checks.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STARCH_SHADER_SRC", "STARCH_SHADER_OUT", "STARCH_SHADER_GEN",
		"STARCH_SHADER_PACKAGE", "STARCH_SHADER_TARGETS",
		"STARCH_SHADER_VALIDATION", "STARCH_SHADER_ON_ERROR",
		"STARCH_SHADER_JOBS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default("proj")

	if cfg.Src != filepath.Join("proj", "shaders") {
		t.Errorf("Src = %q", cfg.Src)
	}
	if cfg.Out != filepath.Join("proj", "shaders", "gen") {
		t.Errorf("Out = %q", cfg.Out)
	}
	if cfg.Generated != filepath.Join("proj", "shaders", "shaders.go") {
		t.Errorf("Generated = %q", cfg.Generated)
	}
	if cfg.Package != "shaders" {
		t.Errorf("Package = %q", cfg.Package)
	}
	if !cfg.Validate {
		t.Error("Validate = false, want true")
	}
	if cfg.OnError != Abort {
		t.Errorf("OnError = %q, want %q", cfg.OnError, Abort)
	}
	if cfg.Jobs != 1 {
		t.Errorf("Jobs = %d, want 1", cfg.Jobs)
	}
	if len(cfg.Targets) == 0 {
		t.Error("Targets is empty")
	}
}

func TestLoad_WritesBackWhenAbsent(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	path := filepath.Join(root, FileName)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("starch.yml was not written back: %v", err)
	}

	// A second load must resolve to the same configuration.
	again, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if again.Src != cfg.Src || again.Out != cfg.Out || again.Generated != cfg.Generated {
		t.Errorf("reloaded config differs: %+v vs %+v", again, cfg)
	}
	if len(again.Targets) != len(cfg.Targets) {
		t.Errorf("reloaded targets differ: %v vs %v", again.Targets, cfg.Targets)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()

	content := "src: assets/shaders\ntargets: [wgsl, spv]\nvalidate: false\non_error: skip\n"
	if err := os.WriteFile(filepath.Join(root, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Src != "assets/shaders" {
		t.Errorf("Src = %q", cfg.Src)
	}
	if len(cfg.Targets) != 2 || cfg.Targets[0] != language.WGSL || cfg.Targets[1] != language.SPV {
		t.Errorf("Targets = %v", cfg.Targets)
	}
	if cfg.Validate {
		t.Error("Validate = true, want false")
	}
	if cfg.OnError != Skip {
		t.Errorf("OnError = %q, want %q", cfg.OnError, Skip)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Package != "shaders" {
		t.Errorf("Package = %q, want default", cfg.Package)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()

	content := "src: from-file\ntargets: [wgsl]\n"
	if err := os.WriteFile(filepath.Join(root, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("STARCH_SHADER_SRC", "from-env")
	t.Setenv("STARCH_SHADER_TARGETS", "hlsl, msl")
	t.Setenv("STARCH_SHADER_VALIDATION", "false")
	t.Setenv("STARCH_SHADER_JOBS", "4")

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Src != "from-env" {
		t.Errorf("Src = %q, want env value", cfg.Src)
	}
	if len(cfg.Targets) != 2 || cfg.Targets[0] != language.HLSL || cfg.Targets[1] != language.MSL {
		t.Errorf("Targets = %v", cfg.Targets)
	}
	if cfg.Validate {
		t.Error("Validate = true, want false")
	}
	if cfg.Jobs != 4 {
		t.Errorf("Jobs = %d, want 4", cfg.Jobs)
	}
}

func TestLoad_BadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad target", "STARCH_SHADER_TARGETS", "cuda"},
		{"bad validation", "STARCH_SHADER_VALIDATION", "maybe"},
		{"bad on_error", "STARCH_SHADER_ON_ERROR", "explode"},
		{"bad jobs", "STARCH_SHADER_JOBS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(t.TempDir()); err == nil {
				t.Errorf("Load with %s=%q succeeded", tt.key, tt.value)
			}
		})
	}
}
