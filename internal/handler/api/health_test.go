//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"availability-engine/internal/handler/api"
	"availability-engine/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name   string
		db     api.Pinger
		code   int
		status string
	}{
		{name: "success: memory store", db: nil, code: http.StatusOK, status: "ok"},
		{name: "success: database reachable", db: pingerFunc(func(context.Context) error { return nil }), code: http.StatusOK, status: "ok"},
		{name: "error: database down", db: pingerFunc(func(context.Context) error { return errors.New("refused") }), code: http.StatusServiceUnavailable, status: "unavailable"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health", api.NewHealthHandler(tc.db).Check)

			rec := httptest.PerformRequest(t, r, http.MethodGet, "/health", nil, "")
			assert.Equal(t, tc.code, rec.Code)

			var body map[string]string
			_ = httptest.DecodeResponseBody(t, rec.Body, &body)
			assert.Equal(t, tc.status, body["status"])
		})
	}
}
