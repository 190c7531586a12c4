// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config reads the environment-derived settings of jobtree.
//
// The environment is read exactly once, at the program boundary, into a
// Config value which is then passed explicitly to the search path, the job
// runtime and the parallel executor. An optional .env file is loaded first
// with godotenv; variables already set in the process environment win.
package config
