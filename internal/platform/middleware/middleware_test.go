// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/constants"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/ctxutil"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/middleware"
)

var ok = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

/*
TestRequestID keeps a client id and mints one otherwise.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "client-id")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "client-id", seen)
	assert.Equal(t, "client-id", recorder.Header().Get(constants.HeaderXRequestID))

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))
}

/*
TestRateLimiter rejects a client once its burst is spent.
*/
func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	handler := middleware.NewRateLimiter(ctx, 1, 2).Handler(ok)

	codes := make([]int, 0, 3)
	for range 3 {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = "203.0.113.7:5000"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		codes = append(codes, recorder.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "203.0.113.8:5000"
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, other)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestPanicRecovery converts a panic into a 500 envelope.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.JSONEq(t, `{"message":"Internal Server Error"}`, recorder.Body.String())
}

type environment bool

func (e environment) IsDevelopment() bool { return bool(e) }

/*
TestCORS reflects the origin in development only.
*/
func TestCORS(t *testing.T) {
	preflight := func(dev bool) *httptest.ResponseRecorder {
		request := httptest.NewRequest(http.MethodOptions, "/auth/login", nil)
		request.Header.Set(constants.HeaderOrigin, "http://localhost:5173")
		recorder := httptest.NewRecorder()
		middleware.CORS(environment(dev))(ok).ServeHTTP(recorder, request)
		return recorder
	}

	dev := preflight(true)
	assert.Equal(t, http.StatusNoContent, dev.Code)
	assert.Equal(t, "http://localhost:5173", dev.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", dev.Header().Get("Access-Control-Allow-Credentials"))

	prod := preflight(false)
	assert.Equal(t, http.StatusOK, prod.Code)
	assert.Empty(t, prod.Header().Get("Access-Control-Allow-Origin"))
}

/*
TestRealIP prefers proxy headers over the socket address.
*/
func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXForwardedFor, "198.51.100.4, 10.0.0.1")
	assert.Equal(t, "198.51.100.4", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXRealIP, "198.51.100.9")
	assert.Equal(t, "198.51.100.9", middleware.RealIP(request))
}
