// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import "time"

// Completion records one finished unit.
type Completion struct {
	Label  string
	Start  time.Time
	End    time.Time
	Status int
}

// Elapsed returns how long the unit ran.
func (c Completion) Elapsed() time.Duration {
	return c.End.Sub(c.Start)
}

// Failed reports whether the unit returned a nonzero status.
func (c Completion) Failed() bool {
	return c.Status != 0
}
