// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package parallel

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/jobtree/internal/ctxlog"
	"github.com/matt-FFFFFF/jobtree/internal/job"
)

// Unit is one independent piece of work. Fn returns an exit status, zero for success.
type Unit struct {
	Label string
	Fn    func(ctx context.Context) int
}

// JobUnits wraps each job in a unit labelled with the job name.
// A job that cannot be run at all reports status -1.
func JobUnits(env *job.Env, jobs ...*job.Job) []Unit {
	units := make([]Unit, len(jobs))

	for i, j := range jobs {
		units[i] = Unit{
			Label: j.Name,
			Fn: func(ctx context.Context) int {
				status, err := j.Run(ctx, env)
				if err != nil {
					ctxlog.Error(ctx, "job could not run", "job", j.Name, "error", err)
					return -1
				}

				return status
			},
		}
	}

	return units
}

// FuncUnits wraps plain functions. Labels are their positions.
func FuncUnits(fns ...func() int) []Unit {
	units := make([]Unit, len(fns))

	for i, fn := range fns {
		units[i] = Unit{
			Label: fmt.Sprintf("func #%d", i),
			Fn:    func(context.Context) int { return fn() },
		}
	}

	return units
}

// ArgUnits applies f to each argument, one unit per argument.
func ArgUnits[A any](f func(A) int, args []A) []Unit {
	units := make([]Unit, len(args))

	for i, a := range args {
		units[i] = Unit{
			Label: fmt.Sprintf("arg: %v", a),
			Fn:    func(context.Context) int { return f(a) },
		}
	}

	return units
}
