// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runlog runs a command line as a child process with its combined
// output captured in a log file.
//
// Every invocation gets its own file, log/log_<timestamp>_<label>_<id>.txt,
// which starts with the literal command line followed by whatever the process
// wrote to stdout and stderr. The child writes straight into the file, so a
// chatty process can never fill a pipe and stall the wait.
package runlog
