// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package starch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/gogpu/starch/config"
)

// debounce collects bursts of filesystem events into one rebuild.
const debounce = 200 * time.Millisecond

// Watch builds once, then rebuilds whenever the source tree changes,
// until ctx is cancelled. Changes under the output root and to the
// manifest file are ignored so rebuilds do not retrigger themselves.
// A failing rebuild is logged and watching continues.
func Watch(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	out, err := filepath.Abs(cfg.Out)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	gen, err := filepath.Abs(cfg.Generated)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	if err := watchTree(watcher, cfg.Src, out); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	if _, err := Build(cfg, log); err != nil {
		log.Error("build failed", zap.Error(err))
	}

	var timer *time.Timer
	var rebuild <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path, err := filepath.Abs(event.Name)
			if err != nil || path == gen || underneath(out, path) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(path); err == nil && info.IsDir() {
					if err := watchTree(watcher, path, out); err != nil {
						log.Warn("cannot watch new directory",
							zap.String("path", path), zap.Error(err))
					}
				}
			}
			log.Debug("source change", zap.String("path", event.Name))
			if timer == nil {
				timer = time.NewTimer(debounce)
				rebuild = timer.C
			} else {
				timer.Reset(debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))

		case <-rebuild:
			timer = nil
			rebuild = nil
			if _, err := Build(cfg, log); err != nil {
				log.Error("build failed", zap.Error(err))
			}
		}
	}
}

// watchTree adds root and every directory below it to the watcher,
// skipping the output subtree.
func watchTree(watcher *fsnotify.Watcher, root, out string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		if abs == out || underneath(out, abs) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func underneath(root, path string) bool {
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}
