package party

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidType    = errors.New("invalid party type")
	ErrNotProvider    = errors.New("party type does not own a calendar")
	ErrMissingPartyID = errors.New("party id is required")
)

type Type string

const (
	TypeGuide     Type = "guide"
	TypeTransport Type = "transport"
	TypeAgency    Type = "agency"
	TypeDMC       Type = "dmc"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeGuide, TypeTransport, TypeAgency, TypeDMC:
		return true
	default:
		return false
	}
}

// IsProvider reports whether parties of this type own a calendar of slots.
func (t Type) IsProvider() bool {
	return t == TypeGuide || t == TypeTransport
}

func NewType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", ErrInvalidType
	}
	return t, nil
}

// NewProviderRole parses a calendar owner role.
func NewProviderRole(s string) (Type, error) {
	t, err := NewType(s)
	if err != nil {
		return "", err
	}
	if !t.IsProvider() {
		return "", ErrNotProvider
	}
	return t, nil
}

// Ref identifies one side of a hold or booking request.
type Ref struct {
	ID   uuid.UUID
	Type Type
}

func (r Ref) Validate() error {
	if r.ID == uuid.Nil {
		return ErrMissingPartyID
	}
	if !r.Type.IsValid() {
		return ErrInvalidType
	}
	return nil
}

func (r Ref) Equal(o Ref) bool {
	return r.ID == o.ID && r.Type == o.Type
}

// Account is the directory view of a party, used for notification rendering.
type Account struct {
	ID          uuid.UUID
	Type        Type
	DisplayName string
	Email       string
}

func (a Account) Ref() Ref {
	return Ref{ID: a.ID, Type: a.Type}
}
