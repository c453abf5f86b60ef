package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulldiveVR/codex/internal/errors"
)

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error {
	return errors.New("sink closed")
}

func TestMultiHandler_Levels(t *testing.T) {
	var terminal, file bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&terminal, &slog.HandlerOptions{Level: slog.LevelWarn}),
		nil,
		slog.NewJSONHandler(&file, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h).With("file", "acme.ts").WithGroup("compiler")

	assert.True(t, h.Enabled(t.Context(), slog.LevelDebug))
	assert.False(t, h.Enabled(t.Context(), LevelTrace))

	logger.Debug("checking", "mode", "tsc")
	logger.Warn("adapter failed", "mode", "tsc")

	assert.NotContains(t, terminal.String(), "checking")
	assert.Contains(t, terminal.String(), "adapter failed")
	assert.Contains(t, terminal.String(), "compiler.mode=tsc")

	lines := bytes.Split(bytes.TrimSpace(file.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "acme.ts", rec["file"])
	assert.Equal(t, map[string]any{"mode": "tsc"}, rec["compiler"])
}

func TestMultiHandler_JoinsErrors(t *testing.T) {
	var buf bytes.Buffer
	text := slog.NewTextHandler(&buf, nil)
	h := NewMultiHandler(failingHandler{text}, text)

	err := h.Handle(t.Context(), slog.NewRecord(time.Time{}, slog.LevelError, "boom", 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink closed")
	assert.Contains(t, buf.String(), "boom", "later handlers still run")
}

func TestMultiHandler_EmptyGroup(t *testing.T) {
	h := NewMultiHandler(slog.NewTextHandler(&bytes.Buffer{}, nil))
	assert.Same(t, h, h.WithGroup(""))
}
