package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bablu7011/internship-project/internal/config"
	"github.com/Bablu7011/internship-project/internal/readiness"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		AppHost:        "localhost:8080",
		Port:           "8080",
		Timezone:       "UTC",
		MetricsEnabled: true,
		SwaggerEnabled: true,
	}
}

func newApp(t *testing.T, opts Options) (*fiber.App, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	if opts.Config == nil {
		opts.Config = testConfig()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	opts.AccessLog = &logs

	app, err := New(opts)
	require.NoError(t, err)
	return app, &logs
}

func get(t *testing.T, app *fiber.App, path string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestNew_Greeting(t *testing.T) {
	app, _ := newApp(t, Options{})

	status, body := get(t, app, "/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Auto Scaling Works!")
}

func TestNew_Health(t *testing.T) {
	app, logs := newApp(t, Options{})

	for i := 0; i < 3; i++ {
		status, body := get(t, app, "/health")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "OK", body)
	}
	assert.Contains(t, logs.String(), `"path":"/health"`)
}

func TestNew_Metrics(t *testing.T) {
	app, _ := newApp(t, Options{})

	get(t, app, "/health")
	status, body := get(t, app, "/metrics")

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `http_requests_total{method="GET",path="/health",status="200"} 1`)
	assert.NotContains(t, body, `path="/metrics"`)
}

func TestNew_MetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = false
	app, _ := newApp(t, Options{Config: cfg})

	status, _ := get(t, app, "/metrics")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestNew_Swagger(t *testing.T) {
	app, _ := newApp(t, Options{})

	status, body := get(t, app, "/swagger/doc.json")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Liveness probe")
	assert.Contains(t, body, `"host": "localhost:8080"`)

	cfg := testConfig()
	cfg.SwaggerEnabled = false
	app, _ = newApp(t, Options{Config: cfg})
	status, _ = get(t, app, "/swagger/doc.json")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestNew_Readiness(t *testing.T) {
	prober := readiness.NewProber(time.Second, readiness.Named("object_store", func(context.Context) error {
		return errors.New("refused")
	}))
	app, _ := newApp(t, Options{Prober: prober})

	status, body := get(t, app, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, body, "SERVICE_UNAVAILABLE")

	status, _ = get(t, app, "/health")
	assert.Equal(t, http.StatusOK, status)
}

func TestNew_MissingTemplate(t *testing.T) {
	app, err := New(Options{
		Config:    testConfig(),
		Templates: fstest.MapFS{"other.html": &fstest.MapFile{Data: []byte("x")}},
		Registry:  prometheus.NewRegistry(),
		AccessLog: io.Discard,
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "init views")
	assert.Nil(t, app)
}

func TestNew_DuplicateMetricsRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(Options{Config: testConfig(), Registry: reg, AccessLog: io.Discard})
	require.NoError(t, err)

	_, err = New(Options{Config: testConfig(), Registry: reg, AccessLog: io.Discard})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "register metrics")
}

func TestNew_MetricsUnmatchedRoutes(t *testing.T) {
	app, _ := newApp(t, Options{})

	send := func(method, path string, want int) {
		resp, err := app.Test(httptest.NewRequest(method, path, nil))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, want, resp.StatusCode, "%s %s", method, path)
	}
	send(http.MethodGet, "/favicon.ico", http.StatusNotFound)
	send(http.MethodGet, "/robots.txt", http.StatusNotFound)
	send(http.MethodGet, "/health", http.StatusOK)
	send(http.MethodDelete, "/health", http.StatusMethodNotAllowed)

	status, body := get(t, app, "/metrics")
	require.Equal(t, http.StatusOK, status)

	var lines []string
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "http_requests_total{") {
			lines = append(lines, line)
		}
	}
	assert.ElementsMatch(t, []string{
		`http_requests_total{method="DELETE",path="<unmatched>",status="405"} 1`,
		`http_requests_total{method="GET",path="/health",status="200"} 1`,
		`http_requests_total{method="GET",path="<unmatched>",status="404"} 2`,
	}, lines)
	assert.NotContains(t, body, "favicon")
	assert.NotContains(t, body, "robots")
}
