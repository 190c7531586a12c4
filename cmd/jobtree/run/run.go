// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run implements the run subcommand.
package run

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/jobtree/cmd/cmdstate"
	"github.com/matt-FFFFFF/jobtree/internal/ctxlog"
	"github.com/matt-FFFFFF/jobtree/internal/jobfile"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag   = "file"
	folderFlag = "folder"
	cliExitStr = ""
)

// RunCmd runs the job described by a job file.
var RunCmd = newCommand()

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the job described by a job file",
		Description: `Load a job record from a YAML or JSON file and run it.
The exit code is the status of the job.

Job file URLs use Hashicorp's go-getter syntax, which allows for fetching files from various sources.
See https://github.com/hashicorp/go-getter.

Batch jobs that reference another job file run it through this command, passing the file with --config.
Any arguments after the flags are accepted and ignored.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      fileFlag,
				Aliases:   []string{"f", "config"},
				Usage:     "Path or go-getter URL of the job file",
				TakesFile: true,
				Required:  true,
				OnlyOnce:  true,
			},
			&cli.StringFlag{
				Name:      folderFlag,
				Usage:     "Run the job from this directory",
				TakesFile: true,
				OnlyOnce:  true,
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

	src := cmd.String(fileFlag)

	if cmd.Args().Present() {
		logger.Debug("ignoring extra arguments", "args", cmd.Args().Slice())
	}

	rec, err := jobfile.FetchRecord(ctx, src)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to load job file %s: %s", src, err.Error()))
		return cli.Exit(cliExitStr, 1)
	}

	status, err := jobfile.RunRecord(ctx, state.Env, rec, cmd.String(folderFlag))
	if err != nil {
		logger.Error(fmt.Sprintf("Job %s could not run: %s", rec.Name, err.Error()))
		return cli.Exit(cliExitStr, 1)
	}

	if status != 0 {
		logger.Error("job failed", "job", rec.Name, "status", status)
		return cli.Exit(cliExitStr, ExitCode(status))
	}

	logger.Info("job completed", "job", rec.Name)

	return nil
}

// ExitCode maps a job status to a process exit code. Statuses outside 1..255 become 1.
func ExitCode(status int) int {
	if status > 0 && status < 256 {
		return status
	}

	if status == 0 {
		return 0
	}

	return 1
}
