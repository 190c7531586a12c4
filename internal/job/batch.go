// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/jobtree/internal/ctxlog"
)

// ErrBatchChild is returned when an inline child cannot be built.
var ErrBatchChild = errors.New("cannot build batch child")

func runBatch(ctx context.Context, j *Job, env *Env) (int, error) {
	if j.Config.Kind() == ConfigKindInline {
		return runChildren(ctx, j, env)
	}

	cmdline, err := batchCommandLine(j, env)
	if err != nil {
		return -1, err
	}

	return env.Runner.Run(ctx, cmdline, j.WorkingDirectory, j.Name, false)
}

// runChildren builds every child before running any of them, then runs them
// in order and returns the first nonzero status.
func runChildren(ctx context.Context, j *Job, env *Env) (int, error) {
	children := make([]*Job, len(j.Config.children))

	for i, rec := range j.Config.children {
		child, err := FromRecord(rec)
		if err != nil {
			return -1, fmt.Errorf("%w: batch %q child %d: %w", ErrBatchChild, j.Name, i, err)
		}

		children[i] = child
	}

	for _, child := range children {
		if err := ctx.Err(); err != nil {
			return -1, err
		}

		status, err := child.Run(ctx, env)
		if err != nil {
			return status, err
		}

		if status != 0 {
			ctxlog.Debug(ctx, "batch stopped at failing child",
				"batch", j.Name,
				"child", child.Name,
				"status", status)

			return status, nil
		}
	}

	return 0, nil
}
