// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package dispatch implements the dispatch subcommand.
package dispatch

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/jobtree/cmd/cmdstate"
	"github.com/matt-FFFFFF/jobtree/internal/ctxlog"
	"github.com/matt-FFFFFF/jobtree/internal/job"
	"github.com/matt-FFFFFF/jobtree/internal/jobfile"
	"github.com/matt-FFFFFF/jobtree/internal/parallel"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag        = "file"
	globFlag        = "glob"
	parallelismFlag = "parallelism"
	simpleFlag      = "simple"
	cliExitStr      = ""
)

// DispatchCmd runs several job files in parallel.
var DispatchCmd = newCommand()

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "dispatch",
		Usage: "Run many independent job files in parallel",
		Description: `Run every given job file on a pool of workers. All jobs run even when some fail.
Progress is printed as each job finishes, followed by a list of the failed jobs.

The pool size is the --parallelism value, else JOBTREE_CPU_COUNT, else half the CPUs.`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    fileFlag,
				Aliases: []string{"f"},
				Usage: "Path or go-getter URL of a job file. " +
					"Specify multiple times to run multiple files.",
				TakesFile: true,
			},
			&cli.StringSliceFlag{
				Name:  globFlag,
				Usage: "Glob pattern matching local job files. Specify multiple times for more patterns.",
			},
			&cli.IntFlag{
				Name:    parallelismFlag,
				Aliases: []string{"p"},
				Usage:   "Maximum number of jobs to run at once",
				Value:   0,
			},
			&cli.BoolFlag{
				Name:  simpleFlag,
				Usage: "Do not print progress",
				Value: false,
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	state, err := cmdstate.From(ctx)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	jobs, err := loadJobs(ctx, cmd.StringSlice(fileFlag), cmd.StringSlice(globFlag))
	if err != nil {
		logger.Error(err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	if len(jobs) == 0 {
		logger.Error("Please specify at least one job file using the --file or --glob flag.")
		return cli.Exit(cliExitStr, 1)
	}

	executor := &parallel.Executor{
		Workers: cmd.Int(parallelismFlag),
		Config:  state.Config,
		Out:     cmd.Root().Writer,
	}
	units := parallel.JobUnits(state.Env, jobs...)

	if cmd.Bool(simpleFlag) {
		failed := 0

		for i, s := range executor.DispatchSimple(ctx, units) {
			if s != 0 {
				failed++

				logger.Error("job failed", "job", units[i].Label, "status", s)
			}
		}

		if failed > 0 {
			return cli.Exit(cliExitStr, 1)
		}

		return nil
	}

	report := executor.Dispatch(ctx, units)
	if report.Err != nil {
		logger.Error(fmt.Sprintf("%d of %d jobs failed", len(report.Failures), len(units)), "error", report.Err)
		return cli.Exit(cliExitStr, 1)
	}

	return nil
}

func loadJobs(ctx context.Context, files, globs []string) ([]*job.Job, error) {
	jobs := make([]*job.Job, 0, len(files))

	for i, f := range files {
		if f == "" {
			return nil, fmt.Errorf("the job file at index %d is empty", i)
		}

		j, err := jobfile.FetchJob(ctx, f)
		if err != nil {
			return nil, err
		}

		jobs = append(jobs, j)
	}

	if len(globs) > 0 {
		matched, err := jobfile.LoadGlob(globs...)
		if err != nil {
			return nil, err
		}

		jobs = append(jobs, matched...)
	}

	return jobs, nil
}
