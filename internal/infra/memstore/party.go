package memstore

import (
	"context"

	"availability-engine/internal/domain/party"
	"availability-engine/internal/infra"
)

type PartyDirectory struct {
	store *Store
}

func (d *PartyDirectory) Resolve(_ context.Context, ref party.Ref) (*party.Account, error) {
	d.store.mu.RLock()
	defer d.store.mu.RUnlock()

	acct, ok := d.store.parties[ref.ID]
	if !ok || acct.Type != ref.Type {
		return nil, infra.NewNotFound("party not found")
	}
	return &acct, nil
}

func (d *PartyDirectory) Upsert(_ context.Context, acct party.Account) error {
	d.store.mu.Lock()
	defer d.store.mu.Unlock()

	d.store.parties[acct.ID] = acct
	return nil
}
