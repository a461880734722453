// Package service implements the event/enrollment/claim state machine
// on top of the repository layer.  Each service depends on a narrow
// store interface and an injected clock so the logic can be exercised
// against in-memory fakes.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/evaultlabs/ticket-vault/internal/clock"
	"github.com/evaultlabs/ticket-vault/internal/model"
)

// ErrDetailsTooLong is returned when the event details payload exceeds
// model.MaxDetailsLen bytes.
var ErrDetailsTooLong = errors.New("event details too long")

// EventStore is the storage surface the registry needs.  CreateEvent
// must reject a duplicate creator with repository.ErrEventExists rather
// than overwrite the existing record.
type EventStore interface {
	CreateEvent(ctx context.Context, ev *model.Event) error
	GetEvent(ctx context.Context, creator string) (model.Event, error)
}

// RegistryService creates and reads Event records.  One creator
// identity owns at most one event; capacity and fee values are taken
// from the caller unvalidated beyond their types.
type RegistryService struct {
	store EventStore
	clock clock.Clock
}

// NewRegistry constructs a RegistryService.
func NewRegistry(store EventStore, clk clock.Clock) *RegistryService {
	return &RegistryService{store: store, clock: clk}
}

// CreateEventInput carries the caller-supplied event parameters.
type CreateEventInput struct {
	Capacity     uint32
	Details      string
	TicketFee    uint64
	EscrowAmount uint64
}

// startLeadTime is how far in the future a new event starts.
const startLeadTime = time.Hour

// Create allocates a new event for the creator.  The start time is set
// one hour from now, counters start at zero and availability starts
// true regardless of capacity.
func (s *RegistryService) Create(ctx context.Context, creator string, in CreateEventInput) (model.Event, error) {
	if len(in.Details) > model.MaxDetailsLen {
		return model.Event{}, ErrDetailsTooLong
	}

	ev := model.Event{
		Creator:            creator,
		Details:            in.Details,
		Amount:             in.EscrowAmount,
		TicketFee:          in.TicketFee,
		TotalTicketsIssued: in.Capacity,
		TotalTicketsSold:   0,
		TicketAvailable:    true,
		StartTime:          s.clock.Now().Add(startLeadTime),
		EnrolledPubkeys:    []string{},
		TicketType:         model.TicketGeneral,
	}
	if err := s.store.CreateEvent(ctx, &ev); err != nil {
		return model.Event{}, err
	}
	return ev, nil
}

// Get returns the event keyed by the creator identity.
func (s *RegistryService) Get(ctx context.Context, creator string) (model.Event, error) {
	return s.store.GetEvent(ctx, creator)
}
