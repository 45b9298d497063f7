package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/deskfolio/deskos/internal/api/middleware"
	"github.com/deskfolio/deskos/internal/domain/desktop"
	"github.com/deskfolio/deskos/internal/infrastructure/config"
	"github.com/deskfolio/deskos/internal/infrastructure/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = "0"
	cfg.Logging.Development = true
	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config) (*Server, *httptest.Server) {
	t.Helper()
	s, err := newServer(cfg, logging.NewNop())
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		s.hub.Close()
	})
	return s, ts
}

func TestServerRoutes(t *testing.T) {
	_, ts := newTestServer(t, testConfig(t))

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))

	resp, err = http.Post(ts.URL+"/desktops", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), `deskos_http_requests_total{method="POST",path="/desktops",status="201"} 1`)
}

func TestServerCompressesResponses(t *testing.T) {
	_, ts := newTestServer(t, testConfig(t))

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/apps", nil)
	require.NoError(t, err)
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
}

func TestServerSeedsCatalog(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guestbook.yaml"), []byte(`apps:
  - id: guestbook
    name: Guestbook
    icon: "📖"
    component: GuestbookApp
    category: personal
    defaultSize:
      width: 500
      height: 600
`), 0o644))

	cfg := testConfig(t)
	cfg.Catalog.Dir = dir
	cfg.Catalog.ContentFile = filepath.Join(dir, "missing.yaml")
	_, ts := newTestServer(t, cfg)

	resp, err := http.Get(ts.URL + "/apps/guestbook")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// A missing content file falls back to the built-in content
	resp, err = http.Get(ts.URL + "/content/projects")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServerRateLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.RateLimit.RequestsPerSecond = 1
	cfg.RateLimit.Burst = 1
	_, ts := newTestServer(t, cfg)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := http.Get(ts.URL + "/")
		require.NoError(t, err)
		resp.Body.Close()
		codes = append(codes, resp.StatusCode)
	}
	assert.Contains(t, codes, http.StatusTooManyRequests)
}

func TestServerRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Driver = "s3"
	_, err := newServer(cfg, logging.NewNop())
	assert.Error(t, err)
}

func TestServerFileStorage(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Driver = "file"
	cfg.Storage.Path = t.TempDir()
	s, ts := newTestServer(t, cfg)

	resp, err := http.Post(ts.URL+"/desktops", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 1, s.Hub().Len())
}

func TestServerShutdown(t *testing.T) {
	s, err := newServer(testConfig(t), logging.NewNop())
	require.NoError(t, err)
	_, err = s.Hub().Create()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	// Run after Shutdown returns at once
	assert.NoError(t, s.Run())
	_, err = s.Hub().Create()
	assert.ErrorIs(t, err, desktop.ErrHubClosed)
}
