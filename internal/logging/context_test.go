package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/upliftapp/gymstatus/internal/logging"
)

type lineWriter struct {
	lines []string
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.lines = append(w.lines, string(p))
	return len(p), nil
}

func (w *lineWriter) pop(t *testing.T) map[string]any {
	t.Helper()
	require.NotEmpty(t, w.lines)

	last := w.lines[len(w.lines)-1]
	w.lines = w.lines[:len(w.lines)-1]

	var entry map[string]any
	require.NoError(t, json.NewDecoder(strings.NewReader(last)).Decode(&entry))
	require.Contains(t, entry, "time")
	delete(entry, "time")
	return entry
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	ctx := logging.AddToContext(t.Context(), logger)

	require.Same(t, logger, logging.FromContext(ctx))
}

func TestAddMetaToContext(t *testing.T) {
	t.Parallel()

	w := &lineWriter{}
	root := slog.New(slog.NewJSONHandler(w, nil)).With(slog.String("instanceID", "abc"))
	ctx := logging.AddToContext(t.Context(), root)

	ctx = logging.AddMetaToContext(ctx, slog.String("gymID", "teagle"))
	logging.FromContext(ctx).Info("resolved")
	require.Equal(t, map[string]any{
		"level":      "INFO",
		"msg":        "resolved",
		"instanceID": "abc",
		"gymID":      "teagle",
	}, w.pop(t))

	ctx = logging.AddMetaToContext(ctx, slog.String("gymID", "noyes"), slog.Int("facilities", 3))
	logging.FromContext(ctx).Info("resolved")
	require.Equal(t, map[string]any{
		"level":      "INFO",
		"msg":        "resolved",
		"instanceID": "abc",
		"gymID":      "noyes",
		"facilities": float64(3),
	}, w.pop(t))

	require.Empty(t, w.lines)
}
