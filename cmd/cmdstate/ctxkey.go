// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdstate carries the loaded configuration and the job environment
// from main to the subcommands through the context.
package cmdstate

import (
	"context"
	"errors"

	"github.com/matt-FFFFFF/jobtree/internal/config"
	"github.com/matt-FFFFFF/jobtree/internal/job"
)

// ErrNoState is returned when the context carries no state.
var ErrNoState = errors.New("command state missing from context")

type stateKey struct{}

// State is what every subcommand needs to build and run jobs.
type State struct {
	Config config.Config
	Env    *job.Env
}

// With returns a copy of ctx carrying s.
func With(ctx context.Context, s State) context.Context {
	return context.WithValue(ctx, stateKey{}, s)
}

// From returns the state stored on ctx.
func From(ctx context.Context) (State, error) {
	s, ok := ctx.Value(stateKey{}).(State)
	if !ok || s.Env == nil {
		return State{}, ErrNoState
	}

	return s, nil
}
