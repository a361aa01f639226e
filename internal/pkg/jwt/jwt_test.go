//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"availability-engine/internal/domain/party"
	"availability-engine/internal/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	ref := party.Ref{ID: uuid.New(), Type: party.TypeGuide}

	t.Run("round trip keeps the party", func(t *testing.T) {
		svc := jwt.NewService("secret", time.Hour)
		token, err := svc.GenerateToken(ref)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, ref.ID, claims.PartyID)
		assert.Equal(t, "guide", claims.PartyType)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		token, err := jwt.NewService("secret", time.Hour).GenerateToken(ref)
		require.NoError(t, err)

		_, err = jwt.NewService("other", time.Hour).ValidateToken(token)
		require.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := jwt.NewService("secret", -time.Minute).GenerateToken(ref)
		require.NoError(t, err)

		_, err = jwt.NewService("secret", time.Hour).ValidateToken(token)
		require.ErrorIs(t, err, jwt.ErrExpiredToken)
	})
}

func TestService_RejectsForeignTokens(t *testing.T) {
	svc := jwt.NewService("secret", time.Hour)
	id := uuid.New()

	sign := func(method gojwt.SigningMethod, key any, claims jwt.Claims) string {
		token, err := gojwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}
	valid := func() jwt.Claims {
		return jwt.Claims{
			PartyID:   id,
			PartyType: "agency",
			RegisteredClaims: gojwt.RegisteredClaims{
				Subject:   id.String(),
				ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
	}

	testCases := []struct {
		name  string
		token string
	}{
		{name: "HS512 is not accepted", token: sign(gojwt.SigningMethodHS512, []byte("secret"), valid())},
		{name: "subject mismatch", token: func() string {
			c := valid()
			c.Subject = uuid.NewString()
			return sign(gojwt.SigningMethodHS256, []byte("secret"), c)
		}()},
		{name: "missing expiry", token: func() string {
			c := valid()
			c.ExpiresAt = nil
			return sign(gojwt.SigningMethodHS256, []byte("secret"), c)
		}()},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tc.token)
			assert.ErrorIs(t, err, jwt.ErrInvalidToken)
		})
	}
}
