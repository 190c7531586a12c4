// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package jobfile

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/matt-FFFFFF/jobtree/internal/ctxlog"
	"github.com/matt-FFFFFF/jobtree/internal/job"
)

// ErrChangeDirectory is returned when the run folder cannot be entered.
var ErrChangeDirectory = errors.New("cannot change directory")

// chdirMu serialises runs that change the process working directory.
var chdirMu sync.Mutex

// RunRecord builds the job described by rec and runs it.
// A non-empty folder becomes the working directory for the run and the
// previous directory is restored afterwards.
func RunRecord(ctx context.Context, env *job.Env, rec job.Record, folder string) (int, error) {
	j, err := job.FromRecord(rec)
	if err != nil {
		return -1, err
	}

	return RunJob(ctx, env, j, folder)
}

// RunFile loads the job stored at path and runs it in folder, see RunRecord.
// The path is read before changing directory.
func RunFile(ctx context.Context, env *job.Env, path, folder string) (int, error) {
	j, err := LoadJob(path)
	if err != nil {
		return -1, err
	}

	return RunJob(ctx, env, j, folder)
}

// RunJob runs j, inside folder when it is not empty.
func RunJob(ctx context.Context, env *job.Env, j *job.Job, folder string) (int, error) {
	if folder == "" {
		return j.Run(ctx, env)
	}

	chdirMu.Lock()
	defer chdirMu.Unlock()

	prev, err := os.Getwd()
	if err != nil {
		return -1, errors.Join(ErrChangeDirectory, err)
	}

	if err := os.Chdir(folder); err != nil {
		return -1, errors.Join(ErrChangeDirectory, err)
	}

	defer func() {
		if err := os.Chdir(prev); err != nil {
			ctxlog.Error(ctx, "cannot restore working directory", "dir", prev, "error", err)
		}
	}()

	ctxlog.Debug(ctx, "running job in folder", "job", j.Name, "folder", folder)

	return j.Run(ctx, env)
}
