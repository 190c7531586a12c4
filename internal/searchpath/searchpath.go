// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package searchpath resolves bare command and config names to absolute paths.
//
// Names are looked up on a prioritised list of directories, much like a
// MATLAB path: the current directory, the tools directories, the project
// path, the builtin path and finally the fixed pipeline directories under
// the installation root. Resolution never fails hard: a miss is reported to
// the caller, which falls back to the literal name.
package searchpath

import (
	"path/filepath"

	"github.com/matt-FFFFFF/jobtree/internal/config"
	"github.com/spf13/afero"
)

// FsFactory returns the filesystem used for lookups. Tests replace it with an in-memory filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Resolver is the lookup contract consumed by the job model.
type Resolver interface {
	// Lookup returns the absolute path of name and true, or "" and false when it is not found.
	Lookup(name string) (string, bool)
	// SearchList returns the directories searched, in priority order.
	SearchList() []string
}

var _ Resolver = (*SearchPath)(nil)

// SearchPath is the default Resolver.
type SearchPath struct {
	dirs []string
	fs   afero.Fs
}

// New builds the search list from cfg.
// The current directory entry is kept relative and made absolute on every
// call, so it follows the process working directory.
func New(cfg config.Config) *SearchPath {
	dirs := []string{
		".",
		cfg.Tools,
		filepath.Join(cfg.Tools, "ui_programs"),
	}
	dirs = append(dirs, cfg.ProjectPath...)
	dirs = append(dirs, cfg.BuiltinPath...)
	dirs = append(dirs,
		filepath.Join(cfg.Root, "pipeline", "DWI"),
		filepath.Join(cfg.Root, "pipeline", "T1"),
		filepath.Join(cfg.Root, "pipeline", "BOLD"),
		filepath.Join(cfg.Root, "tools", "helper_tools"),
		filepath.Join(cfg.Root, "tools", "job_runner"),
	)

	return NewFromList(dirs...)
}

// NewFromList returns a SearchPath over exactly the given directories.
func NewFromList(dirs ...string) *SearchPath {
	return &SearchPath{
		dirs: dirs,
		fs:   FsFactory(),
	}
}

// SearchList implements Resolver.
func (s *SearchPath) SearchList() []string {
	out := make([]string, 0, len(s.dirs))
	for _, d := range s.dirs {
		out = append(out, absOrSelf(d))
	}

	return out
}

// Lookup implements Resolver. A name that is already an existing file
// resolves to itself before any directory is searched.
func (s *SearchPath) Lookup(name string) (string, bool) {
	if name == "" {
		return "", false
	}

	if s.isFile(name) {
		return absOrSelf(name), true
	}

	for _, d := range s.dirs {
		p := filepath.Join(d, name)
		if s.isFile(p) {
			return absOrSelf(p), true
		}
	}

	return "", false
}

// Resolve returns the resolved path of name, or name itself on a miss.
func Resolve(r Resolver, name string) string {
	if p, ok := r.Lookup(name); ok {
		return p
	}

	return name
}

func (s *SearchPath) isFile(p string) bool {
	fi, err := s.fs.Stat(p)
	if err != nil {
		return false
	}

	return fi.Mode().IsRegular()
}

func absOrSelf(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}

	return abs
}
