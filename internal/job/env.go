// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package job

import (
	"context"

	envconfig "github.com/matt-FFFFFF/jobtree/internal/config"
	"github.com/matt-FFFFFF/jobtree/internal/runlog"
	"github.com/matt-FFFFFF/jobtree/internal/searchpath"
)

// ProcessRunner runs a command line inside wd and returns its exit status.
type ProcessRunner interface {
	Run(ctx context.Context, cmdline []string, wd, label string, useShell bool) (int, error)
}

var _ ProcessRunner = (*runlog.Runner)(nil)

// Env holds the runtime dependencies of job execution.
type Env struct {
	Resolver    searchpath.Resolver
	Runner      ProcessRunner
	Python      string
	Matlab      string
	BatchRunner []string
	// LogFileName returns a fresh log file path in dir. MatlabJob uses it for the MATLAB session log.
	LogFileName func(dir, label string) (string, error)

	// BuiltinBatchRunner marks BatchRunner as jobtree's run subcommand, which
	// needs "--" before batch arguments so they are not parsed as its flags.
	BuiltinBatchRunner bool
}

// NewEnv returns the default environment for cfg.
func NewEnv(cfg envconfig.Config) *Env {
	return &Env{
		Resolver:    searchpath.New(cfg),
		Runner:      runlog.New(),
		Python:      cfg.Python,
		Matlab:      cfg.Matlab,
		BatchRunner: cfg.BatchRunner,
		LogFileName: runlog.LogFileName,

		BuiltinBatchRunner: cfg.BuiltinBatchRunner,
	}
}

// resolve returns the absolute path of name, or name itself when it is not on the search path.
func (e *Env) resolve(name string) string {
	if e.Resolver == nil {
		return name
	}

	return searchpath.Resolve(e.Resolver, name)
}

func (e *Env) searchList() []string {
	if e.Resolver == nil {
		return nil
	}

	return e.Resolver.SearchList()
}

func (e *Env) logFileName(dir, label string) (string, error) {
	if e.LogFileName == nil {
		return runlog.LogFileName(dir, label)
	}

	return e.LogFileName(dir, label)
}
