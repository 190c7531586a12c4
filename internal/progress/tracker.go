// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/matt-FFFFFF/jobtree/internal/color"
)

// TimeFormat is used for wall-clock times in progress lines.
const TimeFormat = "2006-01-02 15:04:05"

// Tracker turns completions into progress lines. Use it from one goroutine.
type Tracker struct {
	out      io.Writer
	now      func() time.Time
	total    int
	finished int
	est      Estimator
	failures []string
}

// NewTracker returns a tracker for total units. A nil now uses time.Now.
func NewTracker(out io.Writer, total int, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}

	return &Tracker{out: out, total: total, now: now}
}

// Begin prints the dispatch header.
func (t *Tracker) Begin(workers int) {
	fmt.Fprintf(t.out, "Begin proc, %d workers, %d left, start at %s\n", workers, t.total, t.now().Format(TimeFormat)) //nolint:errcheck
}

// Observe records c and prints its progress line.
func (t *Tracker) Observe(c Completion) {
	t.finished++
	t.est.Observe(c.Elapsed())

	left := t.total - t.finished
	if c.Failed() {
		t.failures = append(t.failures, Describe(c))
	}

	fmt.Fprintln(t.out, FormatCompletion(c, left, t.est.Remaining(left), t.now())) //nolint:errcheck
}

// End prints the footer and lists every failure.
func (t *Tracker) End() {
	fmt.Fprintf(t.out, "End proc, end at %s. %d error.\n", t.now().Format(TimeFormat), len(t.failures)) //nolint:errcheck

	if len(t.failures) == 0 {
		return
	}

	fmt.Fprintln(t.out, "Listing errs") //nolint:errcheck

	for _, f := range t.failures {
		fmt.Fprintln(t.out, f) //nolint:errcheck
	}
}

// Failures returns the descriptions of failed units in completion order.
func (t *Tracker) Failures() []string {
	return append([]string(nil), t.failures...)
}

// Estimate returns the current average unit duration.
func (t *Tracker) Estimate() time.Duration {
	return t.est.Average()
}

// Describe identifies a completed unit and its status.
func Describe(c Completion) string {
	return fmt.Sprintf("%s, status: %d", c.Label, c.Status)
}

// FormatCompletion renders a progress line for c.
func FormatCompletion(c Completion, left int, remaining time.Duration, at time.Time) string {
	outcome := "just finished"
	if c.Failed() {
		outcome = "just finished " + color.Colorize("with error", color.FgRed)
	}

	return fmt.Sprintf("%s %s after %.2f s execution. %d left, at %s. Estimated time left: %s (HMS)",
		Describe(c), outcome, c.Elapsed().Seconds(), left, at.Format(TimeFormat), FormatDuration(remaining))
}

// FormatDuration renders d as H:MM:SS, rounded to the second.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	s := int64(d.Round(time.Second) / time.Second)

	return fmt.Sprintf("%d:%02d:%02d", s/3600, (s/60)%60, s%60)
}
