package commands

import (
	"time"

	"availability-engine/internal/domain/hold"
	"availability-engine/internal/pkg/config"
	"availability-engine/internal/pkg/errs"
)

// OverlapPolicy decides whether a new pending request may target time the provider already blocked.
type OverlapPolicy string

const (
	// OverlapAdvisory never checks availability. Overlapping requests may all be accepted and the
	// provider reconciles them manually.
	OverlapAdvisory OverlapPolicy = "advisory"
	// OverlapRejectUnavailable rejects new requests over a range the provider has blocked.
	OverlapRejectUnavailable OverlapPolicy = "reject_unavailable"
)

type Policy struct {
	HoldTTL      time.Duration
	CancelPolicy hold.CancelPolicy
	Overlap      OverlapPolicy
}

func DefaultPolicy() Policy {
	return Policy{
		HoldTTL:      48 * time.Hour,
		CancelPolicy: hold.CancelByEither,
		Overlap:      OverlapAdvisory,
	}
}

func NewPolicy(cfg config.Config) (Policy, error) {
	cancel, err := hold.NewCancelPolicy(cfg.Hold.CancelPolicy)
	if err != nil {
		return Policy{}, errs.Wrap(err, "HOLD_CANCEL_POLICY")
	}
	overlap := OverlapPolicy(cfg.Hold.OverlapPolicy)
	switch overlap {
	case OverlapAdvisory, OverlapRejectUnavailable:
	default:
		return Policy{}, errs.Newf("REQUEST_OVERLAP_POLICY: unknown value %q", cfg.Hold.OverlapPolicy)
	}
	if cfg.Hold.TTL <= 0 {
		return Policy{}, errs.New("HOLD_TTL must be positive")
	}
	return Policy{
		HoldTTL:      cfg.Hold.TTL,
		CancelPolicy: cancel,
		Overlap:      overlap,
	}, nil
}
