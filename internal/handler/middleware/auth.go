package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"availability-engine/internal/domain/party"
	"availability-engine/internal/handler/httperr"
	"availability-engine/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const ctxPartyKey = "party"

var (
	errMissingToken = errors.New("missing bearer token")
	errPartyMissing = errors.New("party missing from context")
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errMissingToken, "Access token required", nil)
			return
		}

		ref, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		c.Set(ctxPartyKey, ref)
		c.Next()
	}
}

// RequireProvider rejects parties that do not own a calendar. Use after RequireAuth.
func (m *AuthMiddleware) RequireProvider() gin.HandlerFunc {
	return func(c *gin.Context) {
		ref, ok := GetParty(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errPartyMissing, "Internal server error", nil)
			return
		}
		if !ref.Type.IsProvider() {
			httperr.AbortWithError(c, http.StatusForbidden, party.ErrNotProvider, "Only guides and transport providers manage slots", nil)
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

// GetParty returns the acting party set by RequireAuth.
func GetParty(c *gin.Context) (party.Ref, bool) {
	v, exists := c.Get(ctxPartyKey)
	if !exists {
		return party.Ref{}, false
	}
	ref, ok := v.(party.Ref)
	return ref, ok
}
