// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the jobtree command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/jobtree"
	"github.com/matt-FFFFFF/jobtree/cmd/cmdstate"
	"github.com/matt-FFFFFF/jobtree/cmd/jobtree/dispatch"
	"github.com/matt-FFFFFF/jobtree/cmd/jobtree/run"
	"github.com/matt-FFFFFF/jobtree/cmd/jobtree/show"
	"github.com/matt-FFFFFF/jobtree/cmd/jobtree/variants"
	"github.com/matt-FFFFFF/jobtree/internal/config"
	"github.com/matt-FFFFFF/jobtree/internal/ctxlog"
	"github.com/matt-FFFFFF/jobtree/internal/job"
	"github.com/matt-FFFFFF/jobtree/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

const (
	envFileFlag  = "env-file"
	logLevelFlag = "log-level"
)

// rootCmd is the root command for the CLI.
var rootCmd = &cli.Command{
	Commands: []*cli.Command{
		run.RunCmd,
		dispatch.DispatchCmd,
		show.ShowCmd,
		variants.VariantsCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "jobtree",
	Description: `jobtree runs the steps of a processing pipeline as child processes.
Jobs are described in YAML or JSON files. A job runs a script, an executable, a shell command
or a MATLAB statement, and batch jobs chain other jobs together, stopping at the first failure.
Many independent jobs can be dispatched in parallel on a bounded pool of workers.

Every process writes its output to its own file in the log directory of its working directory.`,
	Usage:     "jobtree run -f job.yaml",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:      envFileFlag,
			Usage:     "Read environment variables from these files before loading the configuration. Defaults to .env.",
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:    logLevelFlag,
			Usage:   "Log level: DEBUG, INFO, WARN or ERROR",
			Sources: cli.EnvVars(ctxlog.LogLevelEnvVar),
		},
	},
	Before:                before,
	EnableShellCompletion: true,
}

// before loads the configuration once and hands it to the subcommands.
func before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if lvl := cmd.String(logLevelFlag); lvl != "" {
		ctxlog.LevelVar.Set(ctxlog.ParseLevel(lvl))
	}

	cfg, err := config.Load(cmd.StringSlice(envFileFlag)...)
	if err != nil {
		return ctx, err
	}

	ctxlog.Debug(ctx, "configuration loaded",
		"root", cfg.Root,
		"tools", cfg.Tools,
		"cpuCount", cfg.CPUCount,
		"batchRunner", cfg.BatchRunner)

	return cmdstate.With(ctx, cmdstate.State{Config: cfg, Env: job.NewEnv(cfg)}), nil
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", jobtree.Version, jobtree.Commit)

	err := rootCmd.Run(ctx, os.Args) // Err is handled by cli framework

	if ctx.Err() != nil {
		ctxlog.Logger(ctx).Error("command terminated due to cancellation", "error", ctx.Err())
		os.Exit(1)
	}

	if err != nil {
		ctxlog.Logger(ctx).Error("command execution failed", "error", err)
		os.Exit(1)
	}

	ctxlog.Logger(ctx).Info("command completed successfully")
}
