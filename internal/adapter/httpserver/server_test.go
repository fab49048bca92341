package httpserver

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/pscheid92/bufferpad/internal/buffer"
	"github.com/pscheid92/bufferpad/internal/platform/config"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	*Server
	store *buffer.Store
	clock *clockwork.FakeClock
}

type testServerOption func(*config.Config, *[]HealthCheck)

func withHealthChecks(checks ...HealthCheck) testServerOption {
	return func(_ *config.Config, hc *[]HealthCheck) {
		*hc = append(*hc, checks...)
	}
}

func withConfig(fn func(*config.Config)) testServerOption {
	return func(cfg *config.Config, _ *[]HealthCheck) {
		fn(cfg)
	}
}

func newTestConfig() *config.Config {
	return &config.Config{
		AppEnv:          "development",
		Port:            "8080",
		LogLevel:        "debug",
		LogFormat:       "text",
		MaxBodySize:     "64K",
		UpdateRateLimit: 1000,
		UpdateRateBurst: 1000,
		ShutdownTimeout: 10 * time.Second,
	}
}

func newTestServer(t *testing.T, opts ...testServerOption) *testServer {
	t.Helper()

	cfg := newTestConfig()
	var checks []HealthCheck
	for _, opt := range opts {
		opt(cfg, &checks)
	}

	clock := clockwork.NewFakeClock()
	store := buffer.NewStore(clock, nil)

	srv, err := NewServer(cfg, store, clock, prometheus.NewRegistry(), checks)
	require.NoError(t, err)

	return &testServer{Server: srv, store: store, clock: clock}
}

func (ts *testServer) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func (ts *testServer) postForm(t *testing.T, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)
	return rec
}

func TestNewServer_Address(t *testing.T) {
	ts := newTestServer(t)
	require.Equal(t, ":8080", ts.Address())

	ts = newTestServer(t, withConfig(func(cfg *config.Config) {
		cfg.Host = "127.0.0.1"
		cfg.Port = "9000"
	}))
	require.Equal(t, "127.0.0.1:9000", ts.Address())
}

func TestNewServer_DebugModeFollowsAppEnv(t *testing.T) {
	ts := newTestServer(t)
	require.True(t, ts.echo.Debug)

	ts = newTestServer(t, withConfig(func(cfg *config.Config) { cfg.AppEnv = "production" }))
	require.False(t, ts.echo.Debug)
}
