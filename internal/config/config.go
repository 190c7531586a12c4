// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kballard/go-shellquote"
)

// Environment variable names.
const (
	EnvCPUCount    = "JOBTREE_CPU_COUNT"
	EnvRoot        = "JOBTREE_ROOT"
	EnvTools       = "JOBTREE_TOOLS"
	EnvProjectPath = "JOBTREE_PROJECTPATH"
	EnvBuiltinPath = "JOBTREE_BUILTINPATH"
	EnvPython      = "JOBTREE_PYTHON"
	EnvMatlab      = "JOBTREE_MATLAB"
	EnvBatchRunner = "JOBTREE_BATCH_RUNNER"
)

const (
	defaultPython = "python3"
	defaultMatlab = "matlab"
	toolsDirName  = "tools"
	runSubcommand = "run"
)

var (
	// ErrInvalidCPUCount is returned when the CPU count override is not a positive integer.
	ErrInvalidCPUCount = errors.New("invalid " + EnvCPUCount + " value, must be a positive integer")
	// ErrInvalidBatchRunner is returned when the batch runner cannot be split into words.
	ErrInvalidBatchRunner = errors.New("invalid " + EnvBatchRunner + " value")
	// ErrLoadDotEnv is returned when a .env file exists but cannot be parsed.
	ErrLoadDotEnv = errors.New("failed to load .env file")
	// ErrWorkingDirectory is returned when the current directory cannot be determined.
	ErrWorkingDirectory = errors.New("cannot determine working directory")
)

// Config holds the settings consumed by the job model and the parallel executor.
type Config struct {
	// CPUCount overrides the default worker count when greater than zero.
	CPUCount int
	// Root is the installation root that contains the pipeline and tools directories.
	Root string
	// Tools is the tools directory, searched right after the current directory.
	Tools string
	// ProjectPath holds user directories searched before BuiltinPath.
	ProjectPath []string
	// BuiltinPath holds directories shipped with the installation.
	BuiltinPath []string
	// Python is the interpreter used for PythonJob.
	Python string
	// Matlab is the launcher used for MatlabJob.
	Matlab string
	// BatchRunner is the command prefix used to run a BatchJob that references a file.
	BatchRunner []string

	// BuiltinBatchRunner is set when BatchRunner is this executable's own run subcommand.
	BuiltinBatchRunner bool
}

// LookupFunc is the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load reads the given .env files (".env" when none are given), ignoring
// files that do not exist, and then builds a Config from the process environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return Config{}, errors.Join(ErrLoadDotEnv, fmt.Errorf("%s: %w", f, err))
		}
	}

	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config using lookup to read variables.
func FromLookup(lookup LookupFunc) (Config, error) {
	get := func(k string) string {
		v, _ := lookup(k)
		return strings.TrimSpace(v)
	}

	cfg := Config{
		Python:      valueOr(get(EnvPython), defaultPython),
		Matlab:      valueOr(get(EnvMatlab), defaultMatlab),
		ProjectPath: SplitPathList(get(EnvProjectPath)),
		BuiltinPath: SplitPathList(get(EnvBuiltinPath)),
	}

	if v := get(EnvCPUCount); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("%w: %q", ErrInvalidCPUCount, v)
		}

		cfg.CPUCount = n
	}

	cfg.Root = get(EnvRoot)
	if cfg.Root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Config{}, errors.Join(ErrWorkingDirectory, err)
		}

		cfg.Root = wd
	}

	cfg.Tools = valueOr(get(EnvTools), filepath.Join(cfg.Root, toolsDirName))

	runner, err := batchRunner(get(EnvBatchRunner))
	if err != nil {
		return Config{}, err
	}

	cfg.BatchRunner = runner
	cfg.BuiltinBatchRunner = get(EnvBatchRunner) == ""

	return cfg, nil
}

// SplitPathList splits a PATH-style list, dropping empty entries.
func SplitPathList(v string) []string {
	if v == "" {
		return nil
	}

	parts := filepath.SplitList(v)
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

// batchRunner returns the words of the configured runner, or this
// executable's run subcommand.
func batchRunner(v string) ([]string, error) {
	if v != "" {
		words, err := shellquote.Split(v)
		if err != nil || len(words) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidBatchRunner, v)
		}

		return words, nil
	}

	exe, err := os.Executable()
	if err != nil {
		exe = filepath.Base(os.Args[0])
	}

	return []string{exe, runSubcommand}, nil
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}

	return v
}
