// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runlog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/matt-FFFFFF/jobtree/internal/ctxlog"
	"github.com/matt-FFFFFF/jobtree/internal/signalbroker"
)

const (
	goosWindows = "windows"
	binBash     = "/bin/bash"
	binSh       = "/bin/sh"
)

var (
	// ErrEmptyCommand is returned when the command line has no tokens.
	ErrEmptyCommand = errors.New("empty command line")
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrWaitProcess is returned when waiting for the process fails.
	ErrWaitProcess = errors.New("failed waiting for process")
	// ErrProcessKilled is returned when the process was killed because the context was done.
	ErrProcessKilled = errors.New("process killed, context done")
)

// Runner starts processes and logs their output. It is safe for concurrent use.
type Runner struct {
	// LogDir is where log files are written. A relative directory is taken
	// relative to the working directory of each run.
	LogDir string
	// Shell overrides the shell used when useShell is set.
	Shell string

	signals func(ctx context.Context) chan os.Signal
}

// New returns a Runner writing to DefaultLogDir.
func New() *Runner {
	return &Runner{LogDir: DefaultLogDir}
}

// Run executes cmdline inside wd and returns its exit status.
//
// When useShell is set the first token is a shell command line and any
// further tokens become the shell's positional parameters. A nonzero status
// is logged as a warning and returned without an error; errors are reserved
// for failures to create the log or start the process, and for a run killed
// by context cancellation.
func (r *Runner) Run(ctx context.Context, cmdline []string, wd, label string, useShell bool) (int, error) {
	logger := ctxlog.Logger(ctx).With("label", label)

	if len(cmdline) == 0 {
		return -1, ErrEmptyCommand
	}

	if wd == "" {
		wd = "."
	}

	logDir := r.LogDir
	if logDir == "" {
		logDir = DefaultLogDir
	}

	if !filepath.IsAbs(logDir) {
		logDir = filepath.Join(wd, logDir)
	}

	logPath, err := LogFileName(logDir, label)
	if err != nil {
		return -1, err
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return -1, errors.Join(ErrCreateLogFile, err)
	}
	defer f.Close() //nolint:errcheck

	if _, err := fmt.Fprintf(f, "Command: \n%s\n\n", FormatCommand(cmdline)); err != nil {
		return -1, errors.Join(ErrWriteLogFile, err)
	}

	argv := cmdline
	if useShell {
		argv = shellArgv(r.shell(ctx), cmdline)
	}

	path, err := executablePath(argv[0])
	if err != nil {
		return -1, errors.Join(ErrCouldNotStartProcess, err)
	}

	logger.Info("running job", "command", FormatCommand(cmdline), "cwd", wd, "log", logPath)

	ps, err := os.StartProcess(path, argv, &os.ProcAttr{
		Dir:   wd,
		Env:   os.Environ(),
		Files: []*os.File{os.Stdin, f, f},
	})
	if err != nil {
		fmt.Fprintf(f, "could not start process: %v\n", err) //nolint:errcheck
		return -1, errors.Join(ErrCouldNotStartProcess, err)
	}

	logger.Debug("process started", "pid", ps.Pid)

	status, err := r.wait(ctx, ps)
	if err != nil {
		return status, err
	}

	if status != 0 {
		logger.Warn("job returned non-zero status",
			"command", FormatCommand(cmdline),
			"status", status,
			"log", logPath)
	}

	return status, nil
}

// wait blocks until ps exits, forwarding signals to it and killing it when ctx is done.
func (r *Runner) wait(ctx context.Context, ps *os.Process) (int, error) {
	logger := ctxlog.Logger(ctx)

	newSignals := r.signals
	if newSignals == nil {
		newSignals = func(ctx context.Context) chan os.Signal { return signalbroker.New(ctx) }
	}

	sigCh := newSignals(ctx)
	defer signalbroker.Stop(sigCh)

	done := make(chan struct{})
	killed := make(chan error, 1)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		for {
			select {
			case s := <-sigCh:
				logger.Info("forwarding signal to job", "signal", s.String(), "pid", ps.Pid)

				if err := ps.Signal(s); err != nil {
					logger.Debug("failed to forward signal", "signal", s.String(), "error", err)
				}
			case <-ctx.Done():
				logger.Info("context done, killing job", "pid", ps.Pid)
				killPs(ctx, ps)

				killed <- ctx.Err()

				return
			case <-done:
				return
			}
		}
	}()

	state, err := ps.Wait()

	close(done)
	wg.Wait()

	select {
	case cause := <-killed:
		return -1, errors.Join(ErrProcessKilled, cause)
	default:
	}

	if err != nil {
		return -1, errors.Join(ErrWaitProcess, err)
	}

	return state.ExitCode(), nil
}

func (r *Runner) shell(ctx context.Context) string {
	if r.Shell != "" {
		return r.Shell
	}

	return defaultShell(ctx)
}

// FormatCommand renders a command line for logs, quoting each token.
func FormatCommand(cmdline []string) string {
	quoted := make([]string, len(cmdline))
	for i, t := range cmdline {
		quoted[i] = fmt.Sprintf("%q", t)
	}

	return "[" + strings.Join(quoted, ", ") + "]"
}

func shellArgv(shell string, cmdline []string) []string {
	flag := "-c"
	if runtime.GOOS == goosWindows {
		flag = "/C"
	}

	return append([]string{shell, flag}, cmdline...)
}

func defaultShell(ctx context.Context) string {
	if runtime.GOOS == goosWindows {
		systemRoot := os.Getenv("SystemRoot")
		if systemRoot == "" {
			systemRoot = `C:\Windows`
		}

		return filepath.Join(systemRoot, "System32", "cmd.exe")
	}

	if fi, err := os.Stat(binBash); err == nil && !fi.IsDir() {
		return binBash
	}

	if shell := os.Getenv("SHELL"); shell != "" {
		ctxlog.Debug(ctx, "using SHELL environment variable", "shell", shell)
		return shell
	}

	return binSh
}

// executablePath finds bare names on PATH. Names with a path separator are
// used as given; relative ones are resolved by the OS against the working directory.
func executablePath(name string) (string, error) {
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		return name, nil
	}

	p, err := exec.LookPath(name)
	if err != nil && !errors.Is(err, exec.ErrDot) {
		return "", err
	}

	return p, nil
}

func killPs(ctx context.Context, ps *os.Process) {
	if err := ps.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			ctxlog.Debug(ctx, "process already done", "pid", ps.Pid)
			return
		}

		ctxlog.Error(ctx, "process kill error", "pid", ps.Pid, "error", err)

		return
	}

	ctxlog.Info(ctx, "process killed", "pid", ps.Pid)
}
