// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package show implements the show subcommand.
package show

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/TylerBrock/colorjson"
	"github.com/matt-FFFFFF/jobtree/cmd/cmdstate"
	"github.com/matt-FFFFFF/jobtree/internal/color"
	"github.com/matt-FFFFFF/jobtree/internal/job"
	"github.com/matt-FFFFFF/jobtree/internal/jobfile"
	"github.com/matt-FFFFFF/jobtree/internal/runlog"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag    = "file"
	jsonFlag    = "json"
	cmdlineFlag = "cmdline"
)

var (
	// ErrLoadJob is returned when the job file cannot be loaded.
	ErrLoadJob = errors.New("failed to load job file")
	// ErrWriteRecord is returned when the record cannot be written.
	ErrWriteRecord = errors.New("failed to write job record")
)

// ShowCmd prints a job file in normalized form.
var ShowCmd = newCommand()

func newCommand() *cli.Command {
	return &cli.Command{
		Name:        "show",
		Usage:       "Print a job file in normalized form",
		Description: "Load a job file, build the job and print it back as YAML, or as JSON with --json.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      fileFlag,
				Aliases:   []string{"f"},
				Usage:     "Path or go-getter URL of the job file",
				TakesFile: true,
				Required:  true,
			},
			&cli.BoolFlag{
				Name:  jsonFlag,
				Usage: "Print JSON instead of YAML",
			},
			&cli.BoolFlag{
				Name:  cmdlineFlag,
				Usage: "Also print the command line the job would run",
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	j, err := jobfile.FetchJob(ctx, cmd.String(fileFlag))
	if err != nil {
		return errors.Join(ErrLoadJob, err)
	}

	w := cmd.Root().Writer

	if cmd.Bool(jsonFlag) {
		err = writeJSON(w, j.ToRecord())
	} else {
		err = writeYAML(w, j.ToRecord())
	}

	if err != nil {
		return errors.Join(ErrWriteRecord, err)
	}

	if !cmd.Bool(cmdlineFlag) {
		return nil
	}

	state, err := cmdstate.From(ctx)
	if err != nil {
		return err
	}

	return writeCommandLine(w, j, state.Env)
}

func writeYAML(w io.Writer, rec job.Record) error {
	data, err := jobfile.Encode(rec)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

func writeJSON(w io.Writer, rec job.Record) error {
	// colorjson only walks generic maps and slices.
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}

	f := colorjson.NewFormatter()
	f.Indent = 2
	f.DisabledColor = !color.Enabled()

	out, err := f.Marshal(generic)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(out))

	return err
}

func writeCommandLine(w io.Writer, j *job.Job, env *job.Env) error {
	cmdline, err := j.CommandLine(env)
	if errors.Is(err, job.ErrNoFlatCommandLine) {
		_, err = fmt.Fprintf(w, "# inline batch with %d children\n", len(j.Config.Children()))
		return err
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "# %s\n", runlog.FormatCommand(cmdline))

	return err
}
