// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package job

// Record is the serialisable form of a job.
//
// Config is a file reference string or, for a BatchJob, a list of child
// records. Arguments is a shell-syntax string or a list of tokens.
// Both are left untyped so that records decoded from YAML or JSON can be
// handed to FromRecord as they are.
type Record struct {
	Name             string  `yaml:"name" json:"name"`
	Variant          Variant `yaml:"typename" json:"typename"`
	Command          string  `yaml:"cmd" json:"cmd"`
	Config           any     `yaml:"config" json:"config"`
	Arguments        any     `yaml:"argv" json:"argv"`
	WorkingDirectory string  `yaml:"wd" json:"wd"`
}
