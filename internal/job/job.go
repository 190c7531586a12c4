// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package job

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

const defaultWorkingDirectory = "."

var (
	// ErrUnknownVariant is returned when a record names a variant that is not registered.
	ErrUnknownVariant = errors.New("unknown job variant")
	// ErrNilEnv is returned when a job is run or built without an environment.
	ErrNilEnv = errors.New("job environment is nil")
)

// Job is a single processing step. It holds no execution state and is
// never modified by running it.
type Job struct {
	Name             string
	Command          string
	Config           Config
	Arguments        string
	WorkingDirectory string

	variant Variant
}

// New builds a job of the given variant.
//
// cfg is a file reference string, a Config, or for a BatchJob a list of
// child records. args is a shell-syntax string or a list of tokens. An
// empty wd means the current directory.
func New(variant Variant, name, command string, cfg any, args any, wd string) (*Job, error) {
	b, ok := registry[variant]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}

	c, err := b.config(cfg)
	if err != nil {
		return nil, fmt.Errorf("job %q: %w", name, err)
	}

	a, err := NormalizeArguments(args)
	if err != nil {
		return nil, fmt.Errorf("job %q: %w", name, err)
	}

	if wd == "" {
		wd = defaultWorkingDirectory
	}

	return &Job{
		Name:             name,
		Command:          command,
		Config:           c,
		Arguments:        a,
		WorkingDirectory: wd,
		variant:          variant,
	}, nil
}

// FromRecord builds the job described by rec.
func FromRecord(rec Record) (*Job, error) {
	return New(rec.Variant, rec.Name, rec.Command, rec.Config, rec.Arguments, rec.WorkingDirectory)
}

// Variant returns the job's variant tag.
func (j *Job) Variant() Variant {
	return j.variant
}

// ToRecord returns the record form of the job. Arguments are emitted in
// their normalized string form.
func (j *Job) ToRecord() Record {
	return Record{
		Name:             j.Name,
		Variant:          j.variant,
		Command:          j.Command,
		Config:           j.Config.value(),
		Arguments:        j.Arguments,
		WorkingDirectory: j.WorkingDirectory,
	}
}

// CommandLine returns the tokens the job would run.
func (j *Job) CommandLine(env *Env) ([]string, error) {
	if env == nil {
		return nil, ErrNilEnv
	}

	b, ok := registry[j.variant]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, j.variant)
	}

	return b.commandLine(j, env)
}

// Run runs the job and returns its exit status.
func (j *Job) Run(ctx context.Context, env *Env) (int, error) {
	if env == nil {
		return -1, ErrNilEnv
	}

	b, ok := registry[j.variant]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrUnknownVariant, j.variant)
	}

	return b.run(ctx, j, env)
}

// Equal reports whether both jobs have the same variant and fields.
func (j *Job) Equal(other *Job) bool {
	if j == nil || other == nil {
		return j == other
	}

	return j.variant == other.variant &&
		j.Name == other.Name &&
		j.Command == other.Command &&
		j.Arguments == other.Arguments &&
		j.WorkingDirectory == other.WorkingDirectory &&
		j.Config.kind == other.Config.kind &&
		j.Config.file == other.Config.file &&
		reflect.DeepEqual(j.Config.value(), other.Config.value())
}
