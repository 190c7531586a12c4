// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package variants implements the variants subcommand.
package variants

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/jobtree/internal/job"
	"github.com/urfave/cli/v3"
)

// VariantsCmd lists the job variant tags accepted in job files.
var VariantsCmd = &cli.Command{
	Name:  "variants",
	Usage: "List the job variants accepted in the typename field",
	Action: func(_ context.Context, cmd *cli.Command) error {
		for _, v := range job.Variants() {
			if _, err := fmt.Fprintln(cmd.Root().Writer, v); err != nil {
				return err
			}
		}

		return nil
	},
}
