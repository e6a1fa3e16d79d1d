package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/DenisKhanov/GenAPI/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		EnvLogsLevel:     "info",
		HTTPServer:       "127.0.0.1:0",
		UploadDir:        filepath.Join(t.TempDir(), "uploads"),
		MaxUploadMB:      1,
		GenerativeName:   "openai",
		GenerativeApiKey: "test-key",
		GenerativeModel:  "gpt-4o",
		GenerativeTemp:   -1,
		ShutdownTimeout:  time.Second,
		MetricsNamespace: "test",
	}
}

func TestNewApp_Routes(t *testing.T) {
	app, err := newApp(context.Background(), testConfig(t))
	require.NoError(t, err)
	handler := app.serverHTTP.Handler

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/generate-from-document", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"No file uploaded"}`, w.Body.String())

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `test_http_requests_total{method="POST",path="/generate-from-document",status="400"} 1`)
}

func TestNewApp_UnknownProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.GenerativeName = "deepseek"

	_, err := newApp(context.Background(), cfg)
	assert.Error(t, err)
}

func TestApp_RunServerStopsOnCancel(t *testing.T) {
	app, err := newApp(context.Background(), testConfig(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.runServer(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
