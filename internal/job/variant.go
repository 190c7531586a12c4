// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package job

// Variant is the record tag that selects how a job builds its command line and runs.
type Variant string

// Registered variants. The values are the tags used in record files.
const (
	VariantJob        Variant = "Job"
	VariantShell      Variant = "ShellJob"
	VariantPython     Variant = "PythonJob"
	VariantMatlab     Variant = "MatlabJob"
	VariantExecutable Variant = "ExecutableJob"
	VariantBatch      Variant = "BatchJob"
)

// String implements fmt.Stringer.
func (v Variant) String() string {
	return string(v)
}
