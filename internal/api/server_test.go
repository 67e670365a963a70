// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Metaversitas/Metaversitas-2.0/internal/api"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/config"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/constants"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/metrics"
)

func newTestServer(t *testing.T, deps api.HealthDependencies) http.Handler {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	liveness, readiness := api.NewHealthHandlers(deps, logger)

	cfg := &config.Config{Environment: config.EnvironmentDevelopment, Host: "127.0.0.1", Port: "8080"}
	server := api.NewServer(ctx, cfg, logger, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   metrics.Handler(),
	})
	return server.Handler()
}

func get(handler http.Handler, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
	return recorder
}

/*
TestHealth answers liveness without touching dependencies and tags the request.
*/
func TestHealth(t *testing.T) {
	handler := newTestServer(t, api.HealthDependencies{})

	recorder := get(handler, "/health")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, recorder.Body.String())
	assert.NotEmpty(t, recorder.Header().Get(constants.HeaderXRequestID))
}

/*
TestReady reports each dependency and degrades to 503 on any failure.
*/
func TestReady(t *testing.T) {
	healthy := func(context.Context) error { return nil }

	t.Run("ready", func(t *testing.T) {
		handler := newTestServer(t, api.HealthDependencies{CheckDatabase: healthy, CheckCache: healthy})

		recorder := get(handler, "/ready")
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"data":{"status":"ready","checks":[{"name":"postgres","ok":true},{"name":"redis","ok":true}]}}`, recorder.Body.String())
	})

	t.Run("degraded", func(t *testing.T) {
		handler := newTestServer(t, api.HealthDependencies{
			CheckDatabase: healthy,
			CheckCache:    func(context.Context) error { return errors.New("connection refused") },
		})

		recorder := get(handler, "/ready")
		require.Equal(t, http.StatusServiceUnavailable, recorder.Code)

		var body struct {
			Data struct {
				Status string `json:"status"`
				Checks []struct {
					Name  string `json:"name"`
					OK    bool   `json:"ok"`
					Error string `json:"error"`
				} `json:"checks"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "degraded", body.Data.Status)
		require.Len(t, body.Data.Checks, 2)
		assert.False(t, body.Data.Checks[1].OK)
		assert.Equal(t, "connection refused", body.Data.Checks[1].Error)
	})
}

/*
TestMetrics exposes request latency labelled by route pattern.
*/
func TestMetrics(t *testing.T) {
	handler := newTestServer(t, api.HealthDependencies{})
	get(handler, "/health")

	recorder := get(handler, "/metrics")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `metaversitas_http_request_duration_seconds_count{method="GET",route="/health",status="200"}`)
}

/*
TestUnmountedRoutes returns 404 for domains that were not wired.
*/
func TestUnmountedRoutes(t *testing.T) {
	handler := newTestServer(t, api.HealthDependencies{})

	assert.Equal(t, http.StatusNotFound, get(handler, "/auth/login").Code)
	assert.Equal(t, http.StatusNotFound, get(handler, "/user/profile").Code)
}
