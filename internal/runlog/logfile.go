// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runlog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultLogDir is the log directory, relative to the job's working directory.
	DefaultLogDir = "log"

	timestampLayout = "20060102-150405.000000"
	idLength        = 8
	logDirMode      = 0o755
)

var (
	// ErrCreateLogDir is returned when the log directory cannot be created.
	ErrCreateLogDir = errors.New("cannot create log directory")
	// ErrCreateLogFile is returned when the log file cannot be created.
	ErrCreateLogFile = errors.New("cannot create log file")
	// ErrWriteLogFile is returned when the command header cannot be written to the log file.
	ErrWriteLogFile = errors.New("cannot write log file")
)

// now is replaced in tests.
var now = time.Now

// LogFileName creates dir if needed and returns a new log file path inside it.
// The name embeds a timestamp, the label and a random id, so two calls never
// return the same path even within the same microsecond.
func LogFileName(dir, label string) (string, error) {
	if dir == "" {
		dir = DefaultLogDir
	}

	if err := os.MkdirAll(dir, logDirMode); err != nil {
		return "", errors.Join(ErrCreateLogDir, err)
	}

	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:idLength]
	name := fmt.Sprintf("log_%s_%s_%s.txt", now().Format(timestampLayout), sanitizeLabel(label), id)

	return filepath.Join(dir, name), nil
}

func sanitizeLabel(label string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ', '\t', '\n':
			return '_'
		}

		return r
	}, label)
}
