// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package parallel

import (
	"runtime"

	"github.com/matt-FFFFFF/jobtree/internal/config"
)

// numCPU is replaced in tests.
var numCPU = runtime.NumCPU

// ResolveWorkers returns the pool size: explicit when positive, else the
// configured CPU count override, else half the CPUs and at least one.
func ResolveWorkers(explicit int, cfg config.Config) int {
	if explicit > 0 {
		return explicit
	}

	if cfg.CPUCount > 0 {
		return cfg.CPUCount
	}

	return max(1, numCPU()/2)
}
