// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package parallel runs independent units of work on a bounded pool of
// workers.
//
// Dispatch never stops early: every unit runs, statuses come back in input
// order and failures are collected for the caller. Progress is printed as
// units finish.
package parallel
