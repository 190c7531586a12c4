// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runlog

import (
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFileName(t *testing.T) {
	fixed := time.Date(2025, 3, 4, 5, 6, 7, 8000, time.UTC)
	stubs := gostub.Stub(&now, func() time.Time { return fixed })
	defer stubs.Reset()

	dir := filepath.Join(t.TempDir(), "nested", "log")

	a, err := LogFileName(dir, "preprocess")
	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.Equal(t, dir, filepath.Dir(a))
	assert.Regexp(t, regexp.MustCompile(`^log_20250304-050607\.000008_preprocess_[0-9a-f]{8}\.txt$`), filepath.Base(a))

	b, err := LogFileName(dir, "preprocess")
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "same timestamp and label must still give distinct names")
}

func TestSanitizeLabel(t *testing.T) {
	assert.Equal(t, "a_b_c_d", sanitizeLabel("a/b c:d"))
	assert.Equal(t, "plain", sanitizeLabel("plain"))
}
