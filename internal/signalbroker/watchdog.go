// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/jobtree/internal/ctxlog"
)

// Watch cancels the context on the second signal of a given type.
// The first one is left to the running child processes, which receive it from their own broker.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for sig := range sigCh {
		if _, ok := seen[sig]; ok {
			ctxlog.Info(ctx, "received second signal of type, cancelling running jobs", "signal", sig.String())
			Stop(sigCh)
			close(sigCh)
			cancel()

			return
		}

		ctxlog.Info(ctx, "received signal, forwarded to running jobs", "signal", sig.String())

		seen[sig] = struct{}{}
	}
}
