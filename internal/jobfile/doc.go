// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package jobfile reads and writes job records as YAML or JSON files and
// runs the jobs they describe.
package jobfile
