package usecase

import (
	"availability-engine/internal/domain/party"
	"availability-engine/internal/pkg/jwt"
)

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (party.Ref, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (party.Ref, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return party.Ref{}, err
	}

	partyType, err := party.NewType(claims.PartyType)
	if err != nil {
		return party.Ref{}, err
	}

	ref := party.Ref{ID: claims.PartyID, Type: partyType}
	if err := ref.Validate(); err != nil {
		return party.Ref{}, err
	}
	return ref, nil
}
