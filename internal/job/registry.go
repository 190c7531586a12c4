// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package job

import (
	"context"
	"maps"
	"slices"
)

// builder holds the per-variant behaviour.
type builder struct {
	config      func(raw any) (Config, error)
	commandLine func(j *Job, env *Env) ([]string, error)
	run         func(ctx context.Context, j *Job, env *Env) (int, error)
}

// registry maps each variant tag to its behaviour. It is filled once by init
// because the batch behaviour builds jobs through the registry itself.
var registry map[Variant]builder

func init() {
	registry = map[Variant]builder{
		VariantJob: {
			config:      fileConfig,
			commandLine: baseCommandLine,
			run:         runProcess(false),
		},
		VariantShell: {
			config:      fileConfig,
			commandLine: baseCommandLine,
			run:         runProcess(true),
		},
		VariantPython: {
			config:      fileConfig,
			commandLine: pythonCommandLine,
			run:         runProcess(false),
		},
		VariantMatlab: {
			config:      fileConfig,
			commandLine: matlabCommandLine,
			run:         runProcess(false),
		},
		VariantExecutable: {
			config:      fileConfig,
			commandLine: baseCommandLine,
			run:         runProcess(false),
		},
		VariantBatch: {
			config:      batchConfig,
			commandLine: batchCommandLine,
			run:         runBatch,
		},
	}
}

// Variants returns the registered variant tags in sorted order.
func Variants() []Variant {
	return slices.Sorted(maps.Keys(registry))
}

// IsRegistered reports whether v names a registered variant.
func IsRegistered(v Variant) bool {
	_, ok := registry[v]
	return ok
}

// runProcess returns a run function that builds the command line and hands it to the process runner.
func runProcess(useShell bool) func(context.Context, *Job, *Env) (int, error) {
	return func(ctx context.Context, j *Job, env *Env) (int, error) {
		cmdline, err := j.CommandLine(env)
		if err != nil {
			return -1, err
		}

		return env.Runner.Run(ctx, cmdline, j.WorkingDirectory, j.Name, useShell)
	}
}
