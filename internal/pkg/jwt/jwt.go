package jwt

import (
	"errors"
	"time"

	"availability-engine/internal/domain/party"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const clockSkew = 5 * time.Second

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

type Claims struct {
	PartyID   uuid.UUID `json:"party_id"`
	PartyType string    `json:"party_type"`
	jwt.RegisteredClaims
}

type Service struct {
	secretKey     []byte
	tokenDuration time.Duration
}

func NewService(secretKey string, tokenDuration time.Duration) *Service {
	return &Service{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
	}
}

// GenerateToken is used by tooling and tests. Production tokens come from the identity provider
// that shares the signing secret.
func (s *Service) GenerateToken(ref party.Ref) (string, error) {
	now := time.Now()
	claims := Claims{
		PartyID:   ref.ID,
		PartyType: ref.Type.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ref.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ValidateToken accepts HS256 tokens whose subject matches the party_id claim. A small leeway
// absorbs clock skew with the identity provider.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return s.secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, ErrInvalidToken
	case claims.PartyID == uuid.Nil || claims.Subject != claims.PartyID.String():
		return nil, ErrInvalidToken
	}
	return claims, nil
}
