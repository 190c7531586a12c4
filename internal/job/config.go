// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package job

import (
	"errors"
	"fmt"
	"slices"

	"github.com/goccy/go-yaml"
)

// ConfigKind says how a job's config is interpreted.
type ConfigKind int

const (
	// ConfigKindFile is a config file reference, possibly empty.
	ConfigKindFile ConfigKind = iota
	// ConfigKindInline is a list of child records embedded in a BatchJob.
	ConfigKindInline
)

// String implements fmt.Stringer.
func (k ConfigKind) String() string {
	switch k {
	case ConfigKindFile:
		return "file"
	case ConfigKindInline:
		return "inline"
	default:
		return fmt.Sprintf("ConfigKind(%d)", int(k))
	}
}

var (
	// ErrInvalidConfig is returned when a non-batch job has a config that is not a string.
	ErrInvalidConfig = errors.New("config must be a file reference string")
	// ErrInvalidBatchConfig is returned when a batch config is neither a string nor a list of records.
	ErrInvalidBatchConfig = errors.New("batch config must be a file reference string or a list of job records")
	// ErrChildRecord is returned when an inline child cannot be read as a record.
	ErrChildRecord = errors.New("invalid child record")
)

// Config is either a file reference or an ordered list of child records.
type Config struct {
	kind     ConfigKind
	file     string
	children []Record
}

// FileConfig returns a file reference config.
func FileConfig(path string) Config {
	return Config{kind: ConfigKindFile, file: path}
}

// InlineConfig returns a config holding child records.
func InlineConfig(children ...Record) Config {
	return Config{kind: ConfigKindInline, children: slices.Clone(children)}
}

// Kind returns the config kind.
func (c Config) Kind() ConfigKind {
	return c.kind
}

// File returns the file reference. It is empty for inline configs.
func (c Config) File() string {
	return c.file
}

// Children returns a copy of the child records of an inline config.
func (c Config) Children() []Record {
	return slices.Clone(c.children)
}

// value returns the config in record form.
func (c Config) value() any {
	if c.kind == ConfigKindInline {
		return c.Children()
	}

	return c.file
}

// fileConfig accepts the config of a non-batch job.
func fileConfig(raw any) (Config, error) {
	switch v := raw.(type) {
	case nil:
		return FileConfig(""), nil
	case string:
		return FileConfig(v), nil
	case Config:
		if v.kind != ConfigKindFile {
			return Config{}, ErrInvalidConfig
		}

		return v, nil
	default:
		return Config{}, fmt.Errorf("%w: got %T", ErrInvalidConfig, raw)
	}
}

// batchConfig classifies the config of a BatchJob.
func batchConfig(raw any) (Config, error) {
	switch v := raw.(type) {
	case nil:
		return FileConfig(""), nil
	case string:
		return FileConfig(v), nil
	case Config:
		return v, nil
	case []Record:
		children := make([]Record, len(v))

		for i, r := range v {
			n, err := normalizeRecord(r)
			if err != nil {
				return Config{}, fmt.Errorf("%w: child %d: %w", ErrChildRecord, i, err)
			}

			children[i] = n
		}

		return Config{kind: ConfigKindInline, children: children}, nil
	case []any:
		children := make([]Record, len(v))

		for i, item := range v {
			r, err := toRecord(item)
			if err != nil {
				return Config{}, fmt.Errorf("%w: child %d: %w", ErrChildRecord, i, err)
			}

			children[i] = r
		}

		return Config{kind: ConfigKindInline, children: children}, nil
	case []map[string]any:
		items := make([]any, len(v))
		for i := range v {
			items[i] = v[i]
		}

		return batchConfig(items)
	default:
		return Config{}, fmt.Errorf("%w: got %T", ErrInvalidBatchConfig, raw)
	}
}

// toRecord converts decoded YAML or JSON data into a normalized Record.
func toRecord(item any) (Record, error) {
	if r, ok := item.(Record); ok {
		return normalizeRecord(r)
	}

	data, err := yaml.Marshal(item)
	if err != nil {
		return Record{}, err
	}

	var r Record
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Record{}, err
	}

	return normalizeRecord(r)
}

// normalizeRecord puts a child record in canonical form: default working
// directory, string arguments and, recursively, typed inline children.
// Configs of unexpected shape are kept so the child fails when it is built.
func normalizeRecord(r Record) (Record, error) {
	if r.WorkingDirectory == "" {
		r.WorkingDirectory = defaultWorkingDirectory
	}

	args, err := NormalizeArguments(r.Arguments)
	if err != nil {
		return Record{}, err
	}

	r.Arguments = args

	switch r.Config.(type) {
	case nil:
		r.Config = ""
	case []any, []Record, []map[string]any:
		c, err := batchConfig(r.Config)
		if err != nil {
			return Record{}, err
		}

		r.Config = c.value()
	}

	return r, nil
}
