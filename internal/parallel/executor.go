// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package parallel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/jobtree/internal/config"
	"github.com/matt-FFFFFF/jobtree/internal/ctxlog"
	"github.com/matt-FFFFFF/jobtree/internal/progress"
	"golang.org/x/sync/errgroup"
)

// ErrUnitFailed matches every UnitError.
var ErrUnitFailed = errors.New("unit failed")

// UnitError is the failure of a single unit.
type UnitError struct {
	Label  string
	Status int
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("%s: exit status %d", e.Label, e.Status)
}

// Is makes errors.Is(err, ErrUnitFailed) true.
func (e *UnitError) Is(target error) bool {
	return target == ErrUnitFailed
}

// Report is the outcome of a dispatch.
type Report struct {
	// Statuses holds one status per unit, in input order.
	Statuses []int
	// Failures describes failed units in completion order.
	Failures []string
	// Err aggregates a UnitError per failed unit in input order, nil when all succeeded.
	Err error
}

// Executor runs units on a bounded worker pool.
type Executor struct {
	// Workers is the pool size. When not positive it is derived from Config.
	Workers int
	Config  config.Config
	// Out receives progress lines, os.Stdout when nil.
	Out io.Writer
	// Clock is used for timings, time.Now when nil.
	Clock func() time.Time
}

// Dispatch runs every unit and reports progress as each one finishes.
func (e *Executor) Dispatch(ctx context.Context, units []Unit) Report {
	workers := ResolveWorkers(e.Workers, e.Config)
	now := e.clock()

	tracker := progress.NewTracker(e.out(), len(units), now)
	tracker.Begin(workers)

	ctxlog.Debug(ctx, "dispatching units", "units", len(units), "workers", workers)

	monitor := progress.NewMonitor(len(units))
	monitor.Listen(tracker.Observe)

	statuses := make([]int, len(units))

	g := &errgroup.Group{}
	g.SetLimit(workers)

	for i, u := range units {
		g.Go(func() error {
			start := now()
			statuses[i] = runUnit(ctx, u)
			monitor.Report(progress.Completion{
				Label:  u.Label,
				Start:  start,
				End:    now(),
				Status: statuses[i],
			})

			return nil
		})
	}

	_ = g.Wait()

	monitor.Close()
	tracker.End()

	var result *multierror.Error

	for i, s := range statuses {
		if s != 0 {
			result = multierror.Append(result, &UnitError{Label: units[i].Label, Status: s})
		}
	}

	return Report{
		Statuses: statuses,
		Failures: tracker.Failures(),
		Err:      result.ErrorOrNil(),
	}
}

// DispatchSimple runs every unit on the pool without progress reporting.
func (e *Executor) DispatchSimple(ctx context.Context, units []Unit) []int {
	workers := ResolveWorkers(e.Workers, e.Config)
	statuses := make([]int, len(units))

	g := &errgroup.Group{}
	g.SetLimit(workers)

	for i, u := range units {
		g.Go(func() error {
			statuses[i] = runUnit(ctx, u)
			return nil
		})
	}

	_ = g.Wait()

	return statuses
}

// RunInBackground starts fn on its own goroutine and returns a channel that
// is closed when fn returns. Nobody has to wait for it.
func RunInBackground(ctx context.Context, fn func(context.Context)) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		fn(ctx)
	}()

	return done
}

// runUnit calls the unit, turning a panic into status -1.
func runUnit(ctx context.Context, u Unit) (status int) {
	defer func() {
		if r := recover(); r != nil {
			ctxlog.Error(ctx, "unit panicked", "label", u.Label, "panic", fmt.Sprint(r))

			status = -1
		}
	}()

	return u.Fn(ctx)
}

func (e *Executor) out() io.Writer {
	if e.Out == nil {
		return os.Stdout
	}

	return e.Out
}

func (e *Executor) clock() func() time.Time {
	if e.Clock == nil {
		return time.Now
	}

	return e.Clock
}
