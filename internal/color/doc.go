// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color colourises terminal output with ANSI escape codes.
//
// Colour is disabled when NO_COLOR is set, forced on when FORCE_COLOR is set,
// and otherwise enabled only when stdout is a terminal (golang.org/x/term).
// It is used for log levels and for the job status marks printed by the CLI.
package color
