package service

import (
	"context"

	"github.com/evaultlabs/ticket-vault/internal/clock"
	"github.com/evaultlabs/ticket-vault/internal/model"
	"github.com/evaultlabs/ticket-vault/internal/seat"
)

// EnrollmentStore is the storage surface for enrollment.  WithTx must
// run the callback inside a single transaction with no partial
// visibility: either every mutation performed through the ctx it passes
// commits, or none does.  GetEventForUpdate must lock the event row so
// concurrent enrollments against the same event serialize on it.
type EnrollmentStore interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetEventForUpdate(ctx context.Context, creator string) (model.Event, error)
	EnsureVault(ctx context.Context, owner string) error
	UpdateEventEnrollment(ctx context.Context, ev model.Event) error
	UpsertTicket(ctx context.Context, t *model.Ticket) error
}

// PaymentGateway moves escrow value between holding accounts.  A
// transfer invoked inside an enrollment transaction must either commit
// with it or fail it; returning an error aborts the whole enrollment
// with no state change.
type PaymentGateway interface {
	Transfer(ctx context.Context, amount uint64, from, to, authorizedBy string) error
}

// VaultAccount returns the ledger account key holding escrowed fees for
// the given buyer's vault.
func VaultAccount(owner string) string {
	return "vault:" + owner
}

// EnrollmentService sells tickets.  It validates eligibility, derives
// the seat and ticket identifier, escrows the fee and commits the event
// and ticket mutations as one atomic step.
type EnrollmentService struct {
	store    EnrollmentStore
	payments PaymentGateway
	clock    clock.Clock
}

// NewEnrollment constructs an EnrollmentService.
func NewEnrollment(store EnrollmentStore, payments PaymentGateway, clk clock.Clock) *EnrollmentService {
	return &EnrollmentService{store: store, payments: payments, clock: clk}
}

// Enroll sells one ticket of the creator's event to the buyer.
//
// Preconditions are checked in a fixed order inside the event-row lock
// and the first failure is reported: sold out, duplicate enrollment,
// event already started, zero escrow amount.  On success the buyer's
// vault is ensured, the fee transfer runs, the event counters and
// enrolled list are updated (availability flips once sold reaches
// issued) and the buyer's ticket is written with a snapshot of the
// event as of this enrollment.  All of it commits atomically or not at
// all.
func (s *EnrollmentService) Enroll(ctx context.Context, creator, buyer string) (model.Ticket, error) {
	now := s.clock.Now()

	var out model.Ticket
	err := s.store.WithTx(ctx, func(ctx context.Context) error {
		ev, err := s.store.GetEventForUpdate(ctx, creator)
		if err != nil {
			return err
		}

		if !ev.TicketAvailable {
			return model.ErrAllTicketsSold
		}
		if ev.Enrolled(buyer) {
			return model.ErrAlreadyEnrolled
		}
		if !now.Before(ev.StartTime) {
			return model.ErrEventAlreadyStarted
		}
		if ev.Amount == 0 {
			return model.ErrAmountNotEqualToTicketFee
		}

		if err := s.store.EnsureVault(ctx, buyer); err != nil {
			return err
		}

		asg := seat.Allocate(buyer, now)

		// The transfer participates in this transaction: a failure here
		// rolls back everything, and the mutations below only become
		// visible together with the committed transfer.
		if err := s.payments.Transfer(ctx, ev.Amount, buyer, VaultAccount(buyer), buyer); err != nil {
			return err
		}

		ev.TicketID = asg.TicketID
		ev.SeatNo = asg.SeatNo
		ev.TotalTicketsSold++
		ev.EnrolledPubkeys = append(ev.EnrolledPubkeys, buyer)
		ev.EnrolledPubkeysCount++
		if ev.TotalTicketsSold >= ev.TotalTicketsIssued {
			ev.TicketAvailable = false
		}
		ev.TicketType = model.TicketTypeForAmount(ev.Amount)

		if err := s.store.UpdateEventEnrollment(ctx, ev); err != nil {
			return err
		}

		enrolled := append([]string(nil), ev.EnrolledPubkeys...)
		tk := model.Ticket{
			EventID: ev.ID,
			Buyer:   buyer,
			Claimed: false,
			Details: model.TicketDetails{
				TicketID:        asg.TicketID,
				EventDetails:    ev.Details,
				EventStartTime:  ev.StartTime,
				SeatNo:          asg.SeatNo,
				Amount:          ev.Amount,
				TicketType:      ev.TicketType,
				EnrolledPubkeys: enrolled,
			},
		}
		if err := s.store.UpsertTicket(ctx, &tk); err != nil {
			return err
		}

		out = tk
		return nil
	})
	if err != nil {
		return model.Ticket{}, err
	}
	return out, nil
}
