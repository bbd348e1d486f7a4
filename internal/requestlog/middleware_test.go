package requestlog_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peliculas/internal/requestlog"
)

func newRouter(logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(requestlog.RequestID(), requestlog.Logger(logger))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, requestlog.GetRequestID(c))
	})
	return r
}

func TestRequestIDGenerated(t *testing.T) {
	r := newRouter(slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil)))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	id := w.Header().Get(requestlog.HeaderRequestID)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, w.Body.String())
}

func TestRequestIDPropagated(t *testing.T) {
	r := newRouter(slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil)))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestlog.HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(requestlog.HeaderRequestID))
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestLoggerWritesAccessLine(t *testing.T) {
	var buf bytes.Buffer
	r := newRouter(slog.New(slog.NewJSONHandler(&buf, nil)))

	req := httptest.NewRequest(http.MethodGet, "/missing?x=1", nil)
	req.Header.Set(requestlog.HeaderRequestID, "req-1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "WARN", line["level"])
	assert.EqualValues(t, http.StatusNotFound, line["status"])
	assert.Equal(t, "/missing", line["path"])
	assert.Equal(t, "x=1", line["query"])
	assert.Equal(t, "req-1", line["request_id"])
}
