// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package job

import (
	"context"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		variant Variant
		cfg     any
		args    any
		wd      string
	}{
		{name: "generic", variant: VariantJob, cfg: "cfg.json", args: "-v", wd: "/data"},
		{name: "shell", variant: VariantShell, cfg: "", args: "ls -la", wd: "."},
		{name: "python", variant: VariantPython, cfg: "cfg.json", args: []string{"a b", "c"}, wd: "sub"},
		{name: "matlab", variant: VariantMatlab, cfg: nil, args: nil, wd: ""},
		{name: "executable", variant: VariantExecutable, cfg: "x.json", args: []any{"--n", 3}, wd: "."},
		{name: "batch file", variant: VariantBatch, cfg: "sub.yaml", args: "--fast", wd: "."},
		{
			name:    "batch inline",
			variant: VariantBatch,
			cfg: []Record{
				childRecord("one"),
				{
					Name:    "nested",
					Variant: VariantBatch,
					Config:  []Record{childRecord("two")},
				},
			},
			wd: ".",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			j, err := New(tc.variant, tc.name, "cmd", tc.cfg, tc.args, tc.wd)
			require.NoError(t, err)

			rec := j.ToRecord()
			assert.Equal(t, tc.variant, rec.Variant)

			back, err := FromRecord(rec)
			require.NoError(t, err)
			assert.True(t, j.Equal(back), "round trip changed the job: %+v != %+v", j, back)
			assert.Equal(t, tc.variant, back.Variant())
		})
	}
}

func TestRoundTripThroughYAML(t *testing.T) {
	j, err := New(VariantBatch, "pipeline", "", []Record{
		{Name: "a", Variant: VariantPython, Command: "script.py", Arguments: []string{"x y"}},
		{Name: "b", Variant: VariantShell, Command: "echo hi"},
	}, nil, ".")
	require.NoError(t, err)

	data, err := yaml.Marshal(j.ToRecord())
	require.NoError(t, err)

	var rec Record
	require.NoError(t, yaml.Unmarshal(data, &rec))

	back, err := FromRecord(rec)
	require.NoError(t, err)
	assert.True(t, j.Equal(back))
}

func TestFromRecord_UnknownVariant(t *testing.T) {
	for _, v := range []Variant{"NoSuchJob", ""} {
		j, err := FromRecord(Record{Name: "x", Variant: v})
		require.ErrorIs(t, err, ErrUnknownVariant)
		assert.Nil(t, j)
	}
}

func TestFromRecord_Defaults(t *testing.T) {
	j, err := FromRecord(Record{Variant: VariantJob})
	require.NoError(t, err)
	assert.Equal(t, ".", j.WorkingDirectory)
	assert.Empty(t, j.Arguments)
	assert.Equal(t, ConfigKindFile, j.Config.Kind())
	assert.Empty(t, j.Config.File())
}

func TestNew_InvalidBatchConfig(t *testing.T) {
	for _, cfg := range []any{42, 3.5, true, map[string]any{"a": 1}} {
		j, err := New(VariantBatch, "b", "", cfg, nil, ".")
		require.ErrorIs(t, err, ErrInvalidBatchConfig, "config %v", cfg)
		assert.Nil(t, j)
	}
}

func TestNew_InvalidConfigForNonBatch(t *testing.T) {
	_, err := New(VariantJob, "j", "tool", []Record{childRecord("a")}, nil, ".")
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNew_InvalidArguments(t *testing.T) {
	_, err := New(VariantJob, "j", "tool", "", 12, ".")
	require.ErrorIs(t, err, ErrInvalidArguments)
}

func TestBatchConfigClassification(t *testing.T) {
	file, err := New(VariantBatch, "f", "", "sub.yaml", nil, ".")
	require.NoError(t, err)
	assert.Equal(t, ConfigKindFile, file.Config.Kind())

	empty, err := New(VariantBatch, "e", "", nil, nil, ".")
	require.NoError(t, err)
	assert.Equal(t, ConfigKindFile, empty.Config.Kind())

	inline, err := New(VariantBatch, "i", "", []any{
		map[string]any{"name": "a", "typename": "Job", "cmd": "tool", "argv": []any{"x", "y z"}},
	}, nil, ".")
	require.NoError(t, err)
	require.Equal(t, ConfigKindInline, inline.Config.Kind())

	children := inline.Config.Children()
	require.Len(t, children, 1)
	assert.Equal(t, VariantJob, children[0].Variant)
	assert.Equal(t, "x 'y z'", children[0].Arguments)
	assert.Equal(t, ".", children[0].WorkingDirectory)
}

func TestNormalizeArguments(t *testing.T) {
	fromList, err := NormalizeArguments([]string{"a b", "c", "it's"})
	require.NoError(t, err)

	fromString, err := NormalizeArguments(`'a b' c "it's"`)
	require.NoError(t, err)

	listTokens, err := SplitArguments(fromList)
	require.NoError(t, err)

	stringTokens, err := SplitArguments(fromString)
	require.NoError(t, err)

	assert.Equal(t, []string{"a b", "c", "it's"}, listTokens)
	assert.Equal(t, listTokens, stringTokens)

	none, err := NormalizeArguments(nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestVariants(t *testing.T) {
	assert.Equal(t, []Variant{
		VariantBatch,
		VariantExecutable,
		VariantJob,
		VariantMatlab,
		VariantPython,
		VariantShell,
	}, Variants())
	assert.True(t, IsRegistered(VariantShell))
	assert.False(t, IsRegistered("Nope"))
}

func TestEqual(t *testing.T) {
	a, err := New(VariantJob, "a", "tool", "", "", ".")
	require.NoError(t, err)

	b, err := New(VariantExecutable, "a", "tool", "", "", ".")
	require.NoError(t, err)

	assert.False(t, a.Equal(b), "variant is part of equality")
	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(nil))
}

func TestRun_NilEnv(t *testing.T) {
	j, err := New(VariantJob, "a", "tool", "", "", ".")
	require.NoError(t, err)

	status, err := j.Run(context.Background(), nil)
	require.ErrorIs(t, err, ErrNilEnv)
	assert.Equal(t, -1, status)
}
