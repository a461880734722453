package service

import (
	"context"
	"errors"

	"github.com/evaultlabs/ticket-vault/internal/model"
	"github.com/evaultlabs/ticket-vault/internal/repository"
)

// ClaimStore is the storage surface for redeeming tickets.
type ClaimStore interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetEvent(ctx context.Context, creator string) (model.Event, error)
	GetTicket(ctx context.Context, eventID uint64, buyer string) (model.Ticket, error)
	MarkClaimed(ctx context.Context, eventID uint64, buyer string) error
}

// ClaimService redeems tickets.  A claim only re-validates enrollment;
// repeated claims by the rightful buyer re-set the flag and succeed, so
// claiming is not idempotency-guarded.  There is no reversal.
type ClaimService struct {
	store ClaimStore
}

// NewClaim constructs a ClaimService.
func NewClaim(store ClaimStore) *ClaimService {
	return &ClaimService{store: store}
}

// Claim marks the buyer's ticket for the creator's event as claimed.
// It fails with model.ErrNotEnrolled when the buyer is absent from the
// event's enrolled set, and with model.ErrAccountNotInitialized when
// the enrolled buyer has no ticket record to redeem.
func (s *ClaimService) Claim(ctx context.Context, creator, buyer string) (model.Ticket, error) {
	var out model.Ticket
	err := s.store.WithTx(ctx, func(ctx context.Context) error {
		ev, err := s.store.GetEvent(ctx, creator)
		if err != nil {
			return err
		}
		if !ev.Enrolled(buyer) {
			return model.ErrNotEnrolled
		}

		tk, err := s.store.GetTicket(ctx, ev.ID, buyer)
		if err != nil {
			if errors.Is(err, repository.ErrTicketNotFound) {
				return model.ErrAccountNotInitialized
			}
			return err
		}

		if err := s.store.MarkClaimed(ctx, ev.ID, buyer); err != nil {
			return err
		}
		tk.Claimed = true
		out = tk
		return nil
	})
	if err != nil {
		return model.Ticket{}, err
	}
	return out, nil
}
