package commands

import (
	"context"

	"availability-engine/internal/domain/party"
	"availability-engine/internal/domain/slot"
	"availability-engine/internal/pkg/errs"
	"availability-engine/internal/pkg/ptr"
	"availability-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

// resolveParty looks ref up in the directory and checks the stored type matches the claimed one.
func resolveParty(ctx context.Context, dir shared.PartyDirectory, ref party.Ref) (*party.Account, error) {
	if err := ref.Validate(); err != nil {
		return nil, errs.WithKind(errs.Wrap(err, "invalid party reference"), errs.ErrValidation)
	}
	acct, err := dir.Resolve(ctx, ref)
	if err != nil {
		return nil, translateRepoErr(err, "party "+ref.ID.String())
	}
	if acct.Type != ref.Type {
		return nil, errs.NotFound("party " + ref.ID.String() + " of type " + ref.Type.String())
	}
	return acct, nil
}

// providerBlocked reports whether owner already has blocking time inside r.
func providerBlocked(ctx context.Context, slots shared.SlotRepository, owner party.Ref, r slot.TimeRange) (bool, error) {
	found, err := slots.ListOverlapping(ctx, []uuid.UUID{owner.ID}, r)
	if err != nil {
		return false, translateRepoErr(err, "slot")
	}
	var mine []*slot.Slot
	for _, s := range found {
		if s.OwnerRole() == owner.Type {
			mine = append(mine, s)
		}
	}
	return slot.BlocksRange(mine, r), nil
}

func optionalMessage(msg string) *string {
	if msg == "" {
		return nil
	}
	return ptr.Of(msg)
}
