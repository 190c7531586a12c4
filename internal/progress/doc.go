// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress tracks the completion of parallel units of work.
//
// Workers send a Completion on a Monitor as each unit finishes. A single
// Tracker consumes them, keeps an exponential moving average of unit
// durations and prints one line per completion with an estimate of the
// time left.
package progress
