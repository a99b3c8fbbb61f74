package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/upliftapp/gymstatus/internal/logging"
)

func TestRequestLoggerMiddleware(t *testing.T) {
	t.Parallel()

	run := func(t *testing.T, request *http.Request) map[string]any {
		t.Helper()

		buf := &bytes.Buffer{}
		middleware := logging.NewRequestLoggerMiddleware(slog.New(slog.NewJSONHandler(buf, nil)))

		handler := middleware(func(w http.ResponseWriter, r *http.Request) {
			logging.FromContext(r.Context()).Info("test")
		})
		handler(httptest.NewRecorder(), request)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		delete(entry, "time")
		return entry
	}

	t.Run("with user agent", func(t *testing.T) {
		t.Parallel()

		request := httptest.NewRequest(http.MethodGet, "http://example.com/v1/gyms", nil)
		request.Header.Set("User-Agent", "uplift-ios/2.0")

		require.Equal(t, map[string]any{
			"level":      "INFO",
			"msg":        "test",
			"userAgent":  "uplift-ios/2.0",
			"methodPath": "GET /v1/gyms",
		}, run(t, request))
	})

	t.Run("missing user agent", func(t *testing.T) {
		t.Parallel()

		request := httptest.NewRequest(http.MethodPost, "http://example.com/v1/gyms/refresh", nil)
		request.Header.Del("User-Agent")

		require.Equal(t, map[string]any{
			"level":      "INFO",
			"msg":        "test",
			"userAgent":  "<missing>",
			"methodPath": "POST /v1/gyms/refresh",
		}, run(t, request))
	})
}

func TestFromContextWithoutLogger(t *testing.T) {
	t.Parallel()
	logging.FromContext(t.Context()).Info("don't crash when no logger in context")
}
