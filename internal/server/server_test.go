package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	return New(Config{Name: "ad-metrics-service", Version: "test", CORSOrigins: []string{"http://localhost:3000"}})
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, body
}

func TestHealth(t *testing.T) {
	resp, body := do(t, newTestApp(), httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out healthResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "healthy", out.Status)
	assert.NotEmpty(t, out.Timestamp)
}

func TestRootInfo(t *testing.T) {
	resp, body := do(t, newTestApp(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out infoResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "ad-metrics-service", out.Service)
	assert.Equal(t, "test", out.Version)
	assert.Equal(t, "/health", out.Health)
}

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	app := newTestApp()

	resp, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	resp, _ = do(t, app, req)
	assert.Equal(t, "abc-123", resp.Header.Get(requestIDHeader))
}

func TestNotFound_UsesErrorEnvelope(t *testing.T) {
	resp, body := do(t, newTestApp(), httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, false, out["success"])
	assert.NotEmpty(t, out["error"])
}

func TestPanic_Recovered(t *testing.T) {
	app := newTestApp()
	API(app).Get("/boom", func(c *fiber.Ctx) error {
		panic("kaboom")
	})

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/boom", nil))
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, string(body), `"success":false`)
}

func TestMetrics_ExposesHTTPCounters(t *testing.T) {
	app := newTestApp()

	_, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), "http_requests_total"), "missing http_requests_total")
}

func TestCORS_AllowedOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	resp, _ := do(t, newTestApp(), req)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}
