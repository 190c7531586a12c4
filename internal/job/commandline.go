// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package job

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/matt-FFFFFF/jobtree/internal/runlog"
)

const (
	configFlag     = "--config"
	endOfFlags     = "--"
	matlabLogLabel = "matlab_log"
)

var (
	// ErrNoFlatCommandLine is returned for a BatchJob with inline children, which has no single command line.
	ErrNoFlatCommandLine = errors.New("inline batch has no flat command line")
	// ErrNoBatchRunner is returned when a file-reference batch is run without a batch runner configured.
	ErrNoBatchRunner = errors.New("no batch runner configured")
	// ErrMatlabWorkingDirectory is returned when the MATLAB working directory cannot be made absolute.
	ErrMatlabWorkingDirectory = errors.New("cannot determine MATLAB working directory")
)

// baseCommandLine is the resolved command, the split arguments and the config flag.
func baseCommandLine(j *Job, env *Env) ([]string, error) {
	return withArguments(j, env, []string{env.resolve(j.Command)})
}

// pythonCommandLine runs the resolved script with the configured interpreter.
func pythonCommandLine(j *Job, env *Env) ([]string, error) {
	return withArguments(j, env, []string{env.Python, env.resolve(j.Command)})
}

func withArguments(j *Job, env *Env, root []string) ([]string, error) {
	args, err := SplitArguments(j.Arguments)
	if err != nil {
		return nil, err
	}

	cmdline := append(root, args...)

	if f := j.Config.File(); f != "" {
		cmdline = append(cmdline, configFlag, env.resolve(f))
	}

	return cmdline, nil
}

// matlabCommandLine starts a non-interactive MATLAB session that adds the
// search list to the MATLAB path, changes into the job's working directory
// and evaluates the command, exiting with -1 if it throws.
// Arguments and config are not used.
func matlabCommandLine(j *Job, env *Env) ([]string, error) {
	wd, err := filepath.Abs(j.WorkingDirectory)
	if err != nil {
		return nil, errors.Join(ErrMatlabWorkingDirectory, err)
	}

	logFile, err := env.logFileName(filepath.Join(wd, runlog.DefaultLogDir), matlabLogLabel)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder

	sb.WriteString(matlabAddPath(env.searchList()))
	sb.WriteString("try, ")
	sb.WriteString("cd(" + matlabString(wd) + ");")
	sb.WriteString(j.Command)
	sb.WriteString(" ; catch me, fprintf('%s / %s', me.identifier, me.message), exit(-1), end, exit;")

	return []string{
		env.Matlab,
		"-wait", "-nosplash", "-minimize", "-nodesktop",
		"-logfile", logFile,
		"-r", sb.String(),
	}, nil
}

func matlabAddPath(dirs []string) string {
	quoted := make([]string, len(dirs))
	for i, d := range dirs {
		quoted[i] = matlabString(d)
	}

	return "addpath(" + strings.Join(quoted, ",") + ");"
}

// matlabString quotes s as a MATLAB character vector.
func matlabString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// batchCommandLine is the external batch runner invocation for a file-reference batch.
func batchCommandLine(j *Job, env *Env) ([]string, error) {
	if j.Config.Kind() == ConfigKindInline {
		return nil, ErrNoFlatCommandLine
	}

	if len(env.BatchRunner) == 0 {
		return nil, ErrNoBatchRunner
	}

	args, err := SplitArguments(j.Arguments)
	if err != nil {
		return nil, err
	}

	cmdline := append([]string{}, env.BatchRunner...)

	if f := j.Config.File(); f != "" {
		cmdline = append(cmdline, configFlag, env.resolve(f))
	}

	if env.BuiltinBatchRunner && len(args) > 0 {
		cmdline = append(cmdline, endOfFlags)
	}

	return append(cmdline, args...), nil
}
