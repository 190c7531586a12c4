// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import "sync"

// Monitor carries completions from workers to a single listener.
// Its buffer holds every expected completion, so Report never blocks.
type Monitor struct {
	ch   chan Completion
	wg   sync.WaitGroup
	once sync.Once
}

// NewMonitor returns a monitor sized for total completions.
func NewMonitor(total int) *Monitor {
	if total < 0 {
		total = 0
	}

	return &Monitor{ch: make(chan Completion, total)}
}

// Report sends a completion. It must not be called after Close.
func (m *Monitor) Report(c Completion) {
	m.ch <- c
}

// Listen calls fn for every completion on a new goroutine until the monitor is closed.
func (m *Monitor) Listen(fn func(Completion)) {
	m.wg.Add(1)

	go func() {
		defer m.wg.Done()

		for c := range m.ch {
			fn(c)
		}
	}()
}

// Close stops accepting completions and waits until the listener has handled all of them.
func (m *Monitor) Close() {
	m.once.Do(func() {
		close(m.ch)
		m.wg.Wait()
	})
}
