// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package parallel

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matt-FFFFFF/jobtree/internal/color"
	"github.com/matt-FFFFFF/jobtree/internal/job"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func statusUnits(ran *atomic.Int32, statuses ...int) []Unit {
	units := make([]Unit, len(statuses))

	for i, s := range statuses {
		units[i] = Unit{
			Label: string(rune('a' + i)),
			Fn: func(context.Context) int {
				ran.Add(1)
				time.Sleep(time.Duration(len(statuses)-i) * 5 * time.Millisecond)

				return s
			},
		}
	}

	return units
}

func TestDispatch_CollectsAllFailures(t *testing.T) {
	defer goleak.VerifyNone(t)

	prev := color.Enabled()
	color.SetEnabled(false)
	t.Cleanup(func() { color.SetEnabled(prev) })

	var ran atomic.Int32

	buf := &bytes.Buffer{}
	e := &Executor{Workers: 2, Out: buf}

	report := e.Dispatch(context.Background(), statusUnits(&ran, 0, 3, 0, 5, 0))

	assert.Equal(t, int32(5), ran.Load(), "every unit runs despite failures")
	assert.Equal(t, []int{0, 3, 0, 5, 0}, report.Statuses)
	assert.ElementsMatch(t, []string{"b, status: 3", "d, status: 5"}, report.Failures)

	require.Error(t, report.Err)
	require.ErrorIs(t, report.Err, ErrUnitFailed)

	var ue *UnitError
	require.ErrorAs(t, report.Err, &ue)
	assert.Equal(t, "b", ue.Label, "errors are listed in input order")
	assert.Equal(t, 3, ue.Status)

	out := buf.String()
	assert.Contains(t, out, "Begin proc, 2 workers, 5 left")
	assert.Contains(t, out, "End proc")
	assert.Contains(t, out, "2 error.")
	assert.Contains(t, out, "Listing errs\n")
	assert.Contains(t, out, "just finished with error")
}

func TestDispatch_AllSucceed(t *testing.T) {
	defer goleak.VerifyNone(t)

	var ran atomic.Int32

	report := (&Executor{Workers: 3, Out: io.Discard}).Dispatch(context.Background(), statusUnits(&ran, 0, 0, 0, 0))
	assert.Equal(t, []int{0, 0, 0, 0}, report.Statuses)
	assert.Empty(t, report.Failures)
	assert.NoError(t, report.Err)
}

func TestDispatch_Empty(t *testing.T) {
	defer goleak.VerifyNone(t)

	report := (&Executor{Workers: 1, Out: io.Discard}).Dispatch(context.Background(), nil)
	assert.Empty(t, report.Statuses)
	assert.NoError(t, report.Err)
}

func TestDispatch_RespectsWorkerLimit(t *testing.T) {
	defer goleak.VerifyNone(t)

	var running, peak atomic.Int32

	units := make([]Unit, 8)
	for i := range units {
		units[i] = Unit{Label: "u", Fn: func(context.Context) int {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}

			time.Sleep(20 * time.Millisecond)
			running.Add(-1)

			return 0
		}}
	}

	statuses := (&Executor{Workers: 2}).DispatchSimple(context.Background(), units)
	assert.Len(t, statuses, 8)
	assert.LessOrEqual(t, peak.Load(), int32(2))
	assert.Positive(t, peak.Load())
}

func TestDispatch_PanicIsFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	units := []Unit{
		{Label: "ok", Fn: func(context.Context) int { return 0 }},
		{Label: "boom", Fn: func(context.Context) int { panic("boom") }},
	}

	report := (&Executor{Workers: 2, Out: io.Discard}).Dispatch(context.Background(), units)
	assert.Equal(t, []int{0, -1}, report.Statuses)
	assert.ErrorIs(t, report.Err, ErrUnitFailed)
}

func TestDispatchSimple_Order(t *testing.T) {
	defer goleak.VerifyNone(t)

	var ran atomic.Int32

	statuses := (&Executor{Workers: 2}).DispatchSimple(context.Background(), statusUnits(&ran, 0, 3, 0, 5, 0))
	assert.Equal(t, []int{0, 3, 0, 5, 0}, statuses)
	assert.Equal(t, int32(5), ran.Load())
}

func TestArgUnits(t *testing.T) {
	defer goleak.VerifyNone(t)

	units := ArgUnits(func(n int) int { return n % 2 }, []int{1, 2, 3})
	require.Len(t, units, 3)
	assert.Equal(t, "arg: 2", units[1].Label)

	statuses := (&Executor{Workers: 2}).DispatchSimple(context.Background(), units)
	assert.Equal(t, []int{1, 0, 1}, statuses)
}

func TestFuncUnits(t *testing.T) {
	units := FuncUnits(func() int { return 4 }, func() int { return 0 })
	require.Len(t, units, 2)
	assert.Equal(t, "func #1", units[1].Label)
	assert.Equal(t, 4, units[0].Fn(context.Background()))
}

type stubRunner struct {
	status int
	err    error
}

func (r stubRunner) Run(context.Context, []string, string, string, bool) (int, error) {
	return r.status, r.err
}

func TestJobUnits(t *testing.T) {
	defer goleak.VerifyNone(t)

	j, err := job.New(job.VariantExecutable, "convert", "tool", "", "", ".")
	require.NoError(t, err)

	units := JobUnits(&job.Env{Runner: stubRunner{status: 2}}, j)
	require.Len(t, units, 1)
	assert.Equal(t, "convert", units[0].Label)
	assert.Equal(t, 2, units[0].Fn(context.Background()))

	broken := JobUnits(&job.Env{Runner: stubRunner{err: errors.New("spawn failed")}}, j)
	assert.Equal(t, -1, broken[0].Fn(context.Background()))
}

func TestRunInBackground(t *testing.T) {
	defer goleak.VerifyNone(t)

	var called atomic.Bool

	done := RunInBackground(context.Background(), func(context.Context) { called.Store(true) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("background function did not finish")
	}

	assert.True(t, called.Load())
}
