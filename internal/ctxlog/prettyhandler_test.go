// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyHandler_Handle(t *testing.T) {
	var buf bytes.Buffer

	h := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelDebug}, WithDestinationWriter(&buf))
	logger := slog.New(h)

	logger.Warn("job failed", "status", 3, "label", "dwi_preproc")

	out := buf.String()
	assert.Contains(t, out, "WARN:")
	assert.Contains(t, out, "job failed")
	assert.Contains(t, out, `"status": 3`)
	assert.Contains(t, out, `"label": "dwi_preproc"`)
	assert.NotContains(t, out, "\033[", "colour must be off unless requested")
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelWarn})

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestPrettyHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer

	h := NewPrettyHandler(nil, WithDestinationWriter(&buf))
	logger := slog.New(h).With("job", "t1_segment")

	logger.Info("hello")

	assert.Contains(t, buf.String(), `"job": "t1_segment"`)
}

func TestPrettyHandler_ReplaceAttrDropsTime(t *testing.T) {
	var buf bytes.Buffer

	h := NewPrettyHandler(&slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}

			return a
		},
	}, WithDestinationWriter(&buf))

	require.NoError(t, h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "no time", 0)))
	assert.Equal(t, "INFO: no time\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestPrettyHandler_WriteError(t *testing.T) {
	h := NewPrettyHandler(nil, WithDestinationWriter(failingWriter{}))

	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0))
	require.ErrorIs(t, err, ErrIoWrite)
}

func TestLevelColour(t *testing.T) {
	assert.NotEqual(t, levelColour(slog.LevelWarn), levelColour(slog.LevelError))
	assert.Equal(t, levelColour(slog.LevelError+4), levelColour(slog.LevelError+8))
}
