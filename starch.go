// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package starch turns a tree of shader sources into transpiled
// outputs and a generated embed manifest.
//
// The pipeline is:
//
//  1. Discover shader sources under the configured root, excluding the
//     output subtree.
//  2. Per shader: read, expand include macros, parse to naga IR,
//     validate.
//  3. Transpile every shader to each configured target language,
//     fanning out to one file per entry point for languages that
//     require it.
//  4. Aggregate all source and output files into a manifest Go file of
//     //go:embed variables, grouped per language.
//
// Build runs the whole pipeline once; Watch reruns it whenever the
// source tree changes.
package starch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/gogpu/naga/ir"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/starch/codegen"
	"github.com/gogpu/starch/config"
	"github.com/gogpu/starch/language"
	"github.com/gogpu/starch/pathutil"
	"github.com/gogpu/starch/shader"
)

// policyError marks per-shader failures that the on_error policy may
// downgrade to a warning. I/O failures are never wrapped in it.
type policyError struct {
	err error
}

func (e *policyError) Error() string { return e.err.Error() }
func (e *policyError) Unwrap() error { return e.err }

// Build runs the full pipeline once and returns the aggregated
// manifest data after writing the output tree and the manifest file.
//
// The output root is recreated from scratch before any shader is
// transpiled, so a successful run is reproducible. Shaders are
// processed by cfg.Jobs workers; their partial results merge
// associatively, so the outcome does not depend on completion order.
func Build(cfg *config.Config, log *zap.Logger) (*codegen.Data, error) {
	if log == nil {
		log = zap.NewNop()
	}

	shaders, err := shader.Discover(cfg.Src, cfg.Out)
	if err != nil {
		return nil, err
	}
	sort.Slice(shaders, func(i, j int) bool { return shaders[i].Path < shaders[j].Path })
	log.Info("discovered shaders", zap.Int("count", len(shaders)), zap.String("src", cfg.Src))

	if _, err := os.Stat(cfg.Out); err == nil {
		log.Info("removing old generated files", zap.String("out", cfg.Out))
		if err := os.RemoveAll(cfg.Out); err != nil {
			return nil, fmt.Errorf("clean output root: %w", err)
		}
	}
	if err := os.MkdirAll(cfg.Out, 0o755); err != nil {
		return nil, fmt.Errorf("create output root: %w", err)
	}

	data := codegen.New()
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(cfg.Jobs)
	for _, sh := range shaders {
		g.Go(func() error {
			part, err := processShader(cfg, log, sh)
			if err != nil {
				var pe *policyError
				if errors.As(err, &pe) && cfg.OnError == config.Skip {
					log.Warn("skipping shader",
						zap.String("path", sh.Path), zap.Error(pe.err))
					return nil
				}
				return err
			}
			mu.Lock()
			data.Merge(part)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := data.WriteFile(cfg.Generated, cfg.Package); err != nil {
		return nil, err
	}
	log.Info("manifest written", zap.String("path", cfg.Generated))
	return data, nil
}

// processShader runs one shader through the pipeline and returns its
// partial manifest data. Input errors (unresolved stage, unsupported
// source) skip the shader with a warning; parse and validation
// failures are policy errors; I/O failures propagate as-is.
func processShader(cfg *config.Config, log *zap.Logger, sh *shader.Shader) (*codegen.Data, error) {
	if err := shader.Preprocess(sh); err != nil {
		return nil, err
	}

	if _, err := sh.Parse(); err != nil {
		if errors.Is(err, language.ErrUnhandledStage) || errors.Is(err, language.ErrSourceNotSupported) {
			log.Warn("skipping shader", zap.String("path", sh.Path), zap.Error(err))
			return codegen.New(), nil
		}
		return nil, &policyError{err}
	}

	if cfg.Validate {
		if err := sh.Validate(); err != nil {
			return nil, &policyError{err}
		}
	}

	log.Info("transpiling",
		zap.String("path", sh.Path), zap.String("language", sh.Lang.String()))

	data := codegen.New()

	// The shader's own source is exposed once, under its detected
	// language, regardless of how many targets it is transpiled to.
	srcRel, err := manifestRel(cfg, filepath.Join(cfg.Src, sh.Path))
	if err != nil {
		return nil, err
	}
	data.RegisterSource(sh.Lang, codegen.File{
		Language: sh.Lang,
		Path:     srcRel,
		Stage:    language.StageNone,
	})

	for _, target := range cfg.Targets {
		if err := transpileTarget(cfg, log, sh, target, data); err != nil {
			if errors.Is(err, language.ErrTargetNotSupported) || errors.Is(err, language.ErrNoEntryPoint) {
				log.Error("target failed",
					zap.String("path", sh.Path),
					zap.String("target", target.String()),
					zap.Error(err))
				continue
			}
			return nil, err
		}
	}
	return data, nil
}

// transpileTarget serializes one shader for one target language,
// writing every output file and registering it in data.
//
// Fan-out policy: a module with several entry points produces a single
// whole-module file for languages that support it (no stage tag) and
// one stage-suffixed file per entry point otherwise. A single entry
// point always produces exactly one file named with its stage suffix.
// A module with no entry points produces nothing for this target.
func transpileTarget(cfg *config.Config, log *zap.Logger, sh *shader.Shader, target language.Language, data *codegen.Data) error {
	entries := sh.Module().EntryPoints
	if len(entries) == 0 {
		log.Info("skipping shader with no entry points",
			zap.String("path", sh.Path), zap.String("target", target.String()))
		return nil
	}

	back, ok := target.Backend()
	if !ok {
		return language.ErrTargetNotSupported
	}

	targetDir := filepath.Join(cfg.Out, target.Lower())
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return fmt.Errorf("create target dir: %w", err)
	}

	emit := func(entry *ir.EntryPoint, stage language.Stage) error {
		out, err := back(sh.Module(), entry)
		if err != nil {
			if errors.Is(err, language.ErrNoEntryPoint) {
				return err
			}
			return &policyError{fmt.Errorf("%s: generate %s: %w", sh.Path, target, err)}
		}

		name := pathutil.WithLongExt(sh.Path, target.Ext(stage))
		full := filepath.Join(targetDir, name)
		if dir := filepath.Dir(full); dir != targetDir {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(full, out, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", full, err)
		}

		rel, err := manifestRel(cfg, full)
		if err != nil {
			return err
		}
		data.RegisterResult(target, codegen.File{
			Language: target,
			Path:     rel,
			Stage:    stage,
		})
		return nil
	}

	switch {
	case len(entries) > 1 && target.WholeModule():
		log.Info("generating module",
			zap.String("path", sh.Path), zap.String("target", target.String()))
		return emit(nil, language.StageNone)

	case len(entries) > 1:
		for i := range entries {
			entry := &entries[i]
			stage := language.StageFromIR(entry.Stage)
			log.Info("generating entry point",
				zap.String("path", sh.Path),
				zap.String("target", target.String()),
				zap.String("entry", entry.Name),
				zap.String("stage", stage.String()))
			if err := emit(entry, stage); err != nil {
				return err
			}
		}
		return nil

	default:
		entry := &entries[0]
		return emit(entry, language.StageFromIR(entry.Stage))
	}
}

// manifestRel rewrites full as a slash-separated path relative to the
// manifest file's directory, the form //go:embed patterns need.
func manifestRel(cfg *config.Config, full string) (string, error) {
	rel, err := filepath.Rel(filepath.Dir(cfg.Generated), full)
	if err != nil {
		return "", fmt.Errorf("manifest-relative path for %s: %w", full, err)
	}
	return filepath.ToSlash(rel), nil
}
