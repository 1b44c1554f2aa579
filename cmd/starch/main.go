// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Command starch transpiles a tree of shader sources and generates an
// embed manifest for them.
//
// Usage:
//
//	starch build            # one-shot build
//	starch watch            # rebuild on source changes
//
// Configuration is resolved from STARCH_SHADER_* environment
// variables, starch.yml in the project root, and defaults, in that
// order.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gogpu/starch"
	"github.com/gogpu/starch/config"
)

const version = "0.1.0-dev"

var (
	rootDir string
	verbose bool
	jobs    int
)

func main() {
	cmd := &cobra.Command{
		Use:           "starch",
		Short:         "shader transpiler and embed-manifest generator",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&rootDir, "root", "C", ".", "project root")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	cmd.PersistentFlags().IntVarP(&jobs, "jobs", "j", 0, "concurrent shader pipelines (overrides config)")
	cmd.AddCommand(buildCmd(), watchCmd())

	if err := cmd.Execute(); err != nil {
		zap.NewStdLog(logger()).Printf("error: %v", err)
		os.Exit(1)
	}
}

func logger() *zap.Logger {
	var log *zap.Logger
	var err error
	if verbose {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(rootDir)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = jobs
	}
	return cfg, nil
}

func buildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "transpile all shaders and write the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := logger()
			defer log.Sync()

			_, err = starch.Build(cfg, log)
			return err
		},
	}
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "rebuild whenever the shader source tree changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := logger()
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if err := starch.Watch(ctx, cfg, log); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
