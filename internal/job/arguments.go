// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package job

import (
	"errors"
	"fmt"

	"github.com/kballard/go-shellquote"
)

var (
	// ErrInvalidArguments is returned when arguments are neither a string nor a list of strings.
	ErrInvalidArguments = errors.New("arguments must be a string or a list of strings")
	// ErrSplitArguments is returned when an argument string is not valid shell syntax.
	ErrSplitArguments = errors.New("cannot split arguments")
)

// NormalizeArguments turns a string or a list of tokens into a single
// shell-syntax string. Splitting the result gives back the original tokens.
func NormalizeArguments(args any) (string, error) {
	switch a := args.(type) {
	case nil:
		return "", nil
	case string:
		return a, nil
	case []string:
		return shellquote.Join(a...), nil
	case []any:
		tokens := make([]string, len(a))

		for i, v := range a {
			switch t := v.(type) {
			case string:
				tokens[i] = t
			case int, int64, uint64, float64, bool:
				tokens[i] = fmt.Sprint(t)
			default:
				return "", fmt.Errorf("%w: element %d is %T", ErrInvalidArguments, i, v)
			}
		}

		return shellquote.Join(tokens...), nil
	default:
		return "", fmt.Errorf("%w: got %T", ErrInvalidArguments, args)
	}
}

// SplitArguments splits a shell-syntax argument string into tokens.
func SplitArguments(args string) ([]string, error) {
	tokens, err := shellquote.Split(args)
	if err != nil {
		return nil, errors.Join(ErrSplitArguments, fmt.Errorf("%q: %w", args, err))
	}

	return tokens, nil
}
