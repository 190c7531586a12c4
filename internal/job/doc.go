// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package job is the job execution model.
//
// A Job is one processing step: a generic executable, a shell command, a
// Python script, a MATLAB statement or a batch of other jobs. Jobs are built
// from records (see Record) through a fixed registry keyed by the variant
// tag, and can be turned back into an equivalent record at any time.
//
// Running a job builds its command line and hands it to a ProcessRunner. A
// BatchJob either runs its children in order, stopping at the first nonzero
// status, or delegates a referenced job file to the external batch runner.
package job
