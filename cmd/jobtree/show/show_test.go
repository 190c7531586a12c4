// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package show

import (
	"bytes"
	"context"
	"testing"

	"github.com/matt-FFFFFF/jobtree/cmd/cmdstate"
	"github.com/matt-FFFFFF/jobtree/internal/color"
	"github.com/matt-FFFFFF/jobtree/internal/job"
	"github.com/matt-FFFFFF/jobtree/internal/jobfile"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jobYAML = `typename: PythonJob
name: stats
cmd: stats.py
argv: [--subject, "a b"]
`

func run(t *testing.T, args ...string) string {
	t.Helper()

	prev := color.Enabled()
	color.SetEnabled(false)
	t.Cleanup(func() { color.SetEnabled(prev) })

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/jobs/stats.yaml", []byte(jobYAML), 0o644))

	stubs := gostub.Stub(&jobfile.FsFactory, func() afero.Fs { return fs })
	t.Cleanup(stubs.Reset)

	ctx := cmdstate.With(context.Background(), cmdstate.State{Env: &job.Env{Python: "python3"}})

	buf := &bytes.Buffer{}
	cmd := newCommand()
	cmd.Writer = buf

	require.NoError(t, cmd.Run(ctx, append([]string{"show"}, args...)))

	return buf.String()
}

func TestShow_YAML(t *testing.T) {
	out := run(t, "-f", "/jobs/stats.yaml")
	assert.Contains(t, out, "name: stats\ntypename: PythonJob\ncmd: stats.py\n")
	assert.Contains(t, out, "wd: ")
	assert.Contains(t, out, "--subject 'a b'")
}

func TestShow_JSON(t *testing.T) {
	out := run(t, "-f", "/jobs/stats.yaml", "--json")
	assert.Contains(t, out, `"typename": "PythonJob"`)
	assert.Contains(t, out, `"wd": "."`)
}

func TestShow_CommandLine(t *testing.T) {
	out := run(t, "-f", "/jobs/stats.yaml", "--cmdline")
	assert.Contains(t, out, `# ["python3", "stats.py", "--subject", "a b"]`)
}
