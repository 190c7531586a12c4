// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger on a context.Context.
//
// The default logger writes to stderr through PrettyHandler, a human-readable
// console handler. The level comes from the JOBTREE_LOG_LEVEL environment
// variable and defaults to WARN, so process failure warnings are always shown.
package ctxlog
