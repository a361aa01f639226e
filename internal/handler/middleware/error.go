package middleware

import (
	"log/slog"
	"net/http"

	"availability-engine/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler writes the last public httperr.Response when a handler aborted without a body.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if c.Writer.Written() {
			return
		}

		if resp, ok := lastPublicResponse(c.Errors); ok {
			c.JSON(resp.Status, resp)
			return
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, httperr.Internal())
	}
}

func lastPublicResponse(errors []*gin.Error) (httperr.Response, bool) {
	for i := len(errors) - 1; i >= 0; i-- {
		if !errors[i].IsType(gin.ErrorTypePublic) {
			continue
		}
		if resp, ok := errors[i].Meta.(httperr.Response); ok {
			return resp, true
		}
	}
	return httperr.Response{}, false
}

// Recovery turns a panic into a 500 and logs it with the request id and acting party.
// It must be installed after RequestLogger so the request id is already set.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			attrs := []any{"panic", rec, "route", c.FullPath(), "request_id", GetRequestID(c)}
			if ref, ok := GetParty(c); ok {
				attrs = append(attrs, "party_id", ref.ID.String())
			}
			logger.ErrorContext(c.Request.Context(), "recovered from panic", attrs...)
			c.AbortWithStatusJSON(http.StatusInternalServerError, httperr.Internal())
		}()
		c.Next()
	}
}
