// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package jobfile

import (
	"errors"
	"fmt"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/jobtree/internal/job"
	"github.com/spf13/afero"
)

const fileMode = 0o644

var (
	// ErrReadFile is returned when a job file cannot be read.
	ErrReadFile = errors.New("cannot read job file")
	// ErrWriteFile is returned when a job file cannot be written.
	ErrWriteFile = errors.New("cannot write job file")
	// ErrDecode is returned when a job file is not a valid record.
	ErrDecode = errors.New("cannot decode job record")
	// ErrEncode is returned when a record cannot be encoded.
	ErrEncode = errors.New("cannot encode job record")
	// ErrNoJobFiles is returned when a pattern matches no files.
	ErrNoJobFiles = errors.New("no job files found")
)

// FsFactory returns the filesystem used for job files. Tests replace it with an in-memory filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Decode parses a YAML or JSON record. Unknown keys are ignored.
func Decode(data []byte) (job.Record, error) {
	var rec job.Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return job.Record{}, errors.Join(ErrDecode, err)
	}

	return rec, nil
}

// Encode renders rec as YAML with the fields in record order.
func Encode(rec job.Record) ([]byte, error) {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}

	return data, nil
}

// Load reads the record stored at path.
func Load(path string) (job.Record, error) {
	data, err := afero.ReadFile(FsFactory(), path)
	if err != nil {
		return job.Record{}, errors.Join(ErrReadFile, err)
	}

	rec, err := Decode(data)
	if err != nil {
		return job.Record{}, fmt.Errorf("%s: %w", path, err)
	}

	return rec, nil
}

// LoadJob reads the record stored at path and builds its job.
func LoadJob(path string) (*job.Job, error) {
	rec, err := Load(path)
	if err != nil {
		return nil, err
	}

	j, err := job.FromRecord(rec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return j, nil
}

// LoadGlob builds the jobs of every file matching the patterns, sorted by
// path. All files are tried; errors are returned together.
func LoadGlob(patterns ...string) ([]*job.Job, error) {
	fs := FsFactory()

	var paths []string

	for _, p := range patterns {
		matches, err := afero.Glob(fs, p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}

		paths = append(paths, matches...)
	}

	slices.Sort(paths)
	paths = slices.Compact(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoJobFiles, patterns)
	}

	var (
		jobs   []*job.Job
		result error
	)

	for _, p := range paths {
		j, err := LoadJob(p)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}

		jobs = append(jobs, j)
	}

	if result != nil {
		return nil, result
	}

	return jobs, nil
}

// Save writes rec to path as YAML.
func Save(path string, rec job.Record) error {
	data, err := Encode(rec)
	if err != nil {
		return err
	}

	if err := afero.WriteFile(FsFactory(), path, data, fileMode); err != nil {
		return errors.Join(ErrWriteFile, err)
	}

	return nil
}
