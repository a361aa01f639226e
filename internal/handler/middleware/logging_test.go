//go:build unit

package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"availability-engine/internal/domain/party"
	"availability-engine/internal/handler/middleware"
	"availability-engine/internal/pkg/config"
	"availability-engine/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggedRouter(buf *bytes.Buffer, actor *party.Ref) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r := gin.New()
	r.Use(middleware.RequestLogger(logger), middleware.Recovery(logger), middleware.ErrorHandler())
	r.GET("/holds/:id", func(c *gin.Context) {
		if actor != nil {
			c.Set("party", *actor)
		}
		c.JSON(http.StatusOK, gin.H{"requestId": middleware.GetRequestID(c)})
	})
	r.GET("/boom", func(*gin.Context) { panic("sweeper state corrupted") })
	return r
}

func TestRequestLogger(t *testing.T) {
	t.Run("success: caller request id is echoed", func(t *testing.T) {
		var buf bytes.Buffer
		router := newLoggedRouter(&buf, nil)

		rec := httptest.PerformRequestWithHeaders(t, router, http.MethodGet, "/holds/abc", nil, "",
			map[string]string{middleware.HeaderRequestID: "edge-42"})

		require.Equal(t, http.StatusOK, rec.Code)
		httptest.AssertHeaders(t, rec, map[string]string{middleware.HeaderRequestID: "edge-42"})
		assert.Contains(t, buf.String(), "request_id=edge-42")
		assert.Contains(t, buf.String(), "resource_id=abc")
	})

	t.Run("success: generated when header is unusable", func(t *testing.T) {
		var buf bytes.Buffer
		router := newLoggedRouter(&buf, nil)

		rec := httptest.PerformRequestWithHeaders(t, router, http.MethodGet, "/holds/abc", nil, "",
			map[string]string{middleware.HeaderRequestID: strings.Repeat("x", 200)})

		_, err := uuid.Parse(rec.Header().Get(middleware.HeaderRequestID))
		assert.NoError(t, err)
	})

	t.Run("success: acting party is logged", func(t *testing.T) {
		var buf bytes.Buffer
		guide := party.Ref{ID: uuid.New(), Type: party.TypeGuide}
		router := newLoggedRouter(&buf, &guide)

		httptest.PerformRequest(t, router, http.MethodGet, "/holds/abc", nil, "")

		assert.Contains(t, buf.String(), "party_id="+guide.ID.String())
		assert.Contains(t, buf.String(), "party_type=guide")
	})

	t.Run("error: panic becomes a logged 500", func(t *testing.T) {
		var buf bytes.Buffer
		router := newLoggedRouter(&buf, nil)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/boom", nil, "")

		httptest.AssertErrorResponse(t, rec, http.StatusInternalServerError, "Internal server error")
		assert.Contains(t, buf.String(), "recovered from panic")
		assert.Contains(t, buf.String(), "level=ERROR")
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := middleware.NewLogger(config.LogConfig{Level: "warn", TimeZone: "UTC", TimeFormat: "2006-01-02"}, &buf)

	logger.Info("hold requested")
	logger.Warn("hold expired")

	assert.NotContains(t, buf.String(), "hold requested")
	assert.Contains(t, buf.String(), "hold expired")
}
