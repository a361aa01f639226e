//go:build unit || e2e

package builder

import (
	"strings"

	"availability-engine/internal/domain/party"

	"github.com/google/uuid"
)

type PartyBuilder struct {
	ID          uuid.UUID
	Type        party.Type
	DisplayName string
	Email       string
}

func NewPartyBuilder() *PartyBuilder {
	return &PartyBuilder{
		ID:          uuid.New(),
		Type:        party.TypeGuide,
		DisplayName: "Test Guide",
		Email:       "guide@example.com",
	}
}

func (b *PartyBuilder) With(mutate func(*PartyBuilder)) *PartyBuilder {
	mutate(b)
	return b
}

// WithType also derives a readable name and address from the type.
func (b *PartyBuilder) WithType(t party.Type) *PartyBuilder {
	b.Type = t
	b.DisplayName = "Test " + strings.ToUpper(t.String()[:1]) + t.String()[1:]
	b.Email = t.String() + "@example.com"
	return b
}

func (b *PartyBuilder) BuildAccount() party.Account {
	return party.Account{
		ID:          b.ID,
		Type:        b.Type,
		DisplayName: b.DisplayName,
		Email:       b.Email,
	}
}

func (b *PartyBuilder) BuildRef() party.Ref {
	return party.Ref{ID: b.ID, Type: b.Type}
}
