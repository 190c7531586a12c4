// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import "time"

// Weight of the previous average when a new sample is observed.
const previousWeight = 0.75

// Estimator keeps an exponential moving average of unit durations.
// The zero value is ready to use. It is not safe for concurrent use.
type Estimator struct {
	avg    float64
	seeded bool
}

// Observe adds a sample. The first sample seeds the average.
func (e *Estimator) Observe(elapsed time.Duration) {
	s := elapsed.Seconds()
	if !e.seeded {
		e.avg = s
		e.seeded = true

		return
	}

	e.avg = previousWeight*e.avg + (1-previousWeight)*s
}

// Average returns the current average, zero before any sample.
func (e *Estimator) Average() time.Duration {
	return time.Duration(e.avg * float64(time.Second))
}

// Remaining estimates the time needed for n more units.
func (e *Estimator) Remaining(n int) time.Duration {
	if n <= 0 {
		return 0
	}

	return time.Duration(float64(n) * e.avg * float64(time.Second))
}
