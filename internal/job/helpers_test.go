// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package job

import (
	"context"
	"slices"
	"sync"
)

type runCall struct {
	cmdline  []string
	wd       string
	label    string
	useShell bool
}

// fakeRunner returns a preset status per label and records every call.
type fakeRunner struct {
	mu       sync.Mutex
	statuses map[string]int
	calls    []runCall
}

func newFakeRunner(statuses map[string]int) *fakeRunner {
	return &fakeRunner{statuses: statuses}
}

func (f *fakeRunner) Run(_ context.Context, cmdline []string, wd, label string, useShell bool) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, runCall{
		cmdline:  slices.Clone(cmdline),
		wd:       wd,
		label:    label,
		useShell: useShell,
	})

	return f.statuses[label], nil
}

func (f *fakeRunner) labels() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.label
	}

	return out
}

// fakeResolver resolves only the names it knows.
type fakeResolver struct {
	paths map[string]string
	list  []string
}

func (r fakeResolver) Lookup(name string) (string, bool) {
	p, ok := r.paths[name]
	return p, ok
}

func (r fakeResolver) SearchList() []string {
	return r.list
}

func testEnv(runner ProcessRunner) *Env {
	return &Env{
		Resolver: fakeResolver{
			paths: map[string]string{
				"tool":      "/opt/tools/tool",
				"script.py": "/opt/tools/script.py",
				"cfg.json":  "/opt/cfg/cfg.json",
				"sub.yaml":  "/opt/cfg/sub.yaml",
			},
			list: []string{"/work", "/opt/tools"},
		},
		Runner:      runner,
		Python:      "python3",
		Matlab:      "matlab",
		BatchRunner: []string{"jobtree", "run"},
		LogFileName: func(dir, label string) (string, error) {
			return dir + "/log_" + label + ".txt", nil
		},
	}
}

func childRecord(name string) Record {
	return Record{Name: name, Variant: VariantExecutable, Command: name}
}
