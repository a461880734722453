package service

import (
	"context"
	"fmt"

	"github.com/evaultlabs/ticket-vault/internal/model"
	"github.com/evaultlabs/ticket-vault/internal/repository"
)

// fakeStore is an in-memory stand-in for the repository layer.  WithTx
// emulates transactional rollback by restoring a snapshot when the
// callback fails, so tests can assert that failed operations leave no
// partial state behind.
type fakeStore struct {
	nextEventID  uint64
	nextTicketID uint64
	events       map[string]model.Event  // keyed by creator
	vaults       map[string]bool         // keyed by owner
	tickets      map[string]model.Ticket // keyed by eventID|buyer
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events:  make(map[string]model.Event),
		vaults:  make(map[string]bool),
		tickets: make(map[string]model.Ticket),
	}
}

func ticketKey(eventID uint64, buyer string) string {
	return fmt.Sprintf("%d|%s", eventID, buyer)
}

func (f *fakeStore) seedEvent(ev model.Event) model.Event {
	f.nextEventID++
	ev.ID = f.nextEventID
	if ev.EnrolledPubkeys == nil {
		ev.EnrolledPubkeys = []string{}
	}
	f.events[ev.Creator] = ev
	return ev
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	events := make(map[string]model.Event, len(f.events))
	for k, v := range f.events {
		v.EnrolledPubkeys = append([]string(nil), v.EnrolledPubkeys...)
		events[k] = v
	}
	vaults := make(map[string]bool, len(f.vaults))
	for k, v := range f.vaults {
		vaults[k] = v
	}
	tickets := make(map[string]model.Ticket, len(f.tickets))
	for k, v := range f.tickets {
		tickets[k] = v
	}

	if err := fn(ctx); err != nil {
		f.events = events
		f.vaults = vaults
		f.tickets = tickets
		return err
	}
	return nil
}

func (f *fakeStore) CreateEvent(_ context.Context, ev *model.Event) error {
	if _, ok := f.events[ev.Creator]; ok {
		return repository.ErrEventExists
	}
	f.nextEventID++
	ev.ID = f.nextEventID
	f.events[ev.Creator] = *ev
	return nil
}

func (f *fakeStore) GetEvent(_ context.Context, creator string) (model.Event, error) {
	ev, ok := f.events[creator]
	if !ok {
		return model.Event{}, repository.ErrEventNotFound
	}
	ev.EnrolledPubkeys = append([]string(nil), ev.EnrolledPubkeys...)
	return ev, nil
}

func (f *fakeStore) GetEventForUpdate(ctx context.Context, creator string) (model.Event, error) {
	return f.GetEvent(ctx, creator)
}

func (f *fakeStore) EnsureVault(_ context.Context, owner string) error {
	f.vaults[owner] = true
	return nil
}

func (f *fakeStore) UpdateEventEnrollment(_ context.Context, ev model.Event) error {
	f.events[ev.Creator] = ev
	return nil
}

func (f *fakeStore) UpsertTicket(_ context.Context, t *model.Ticket) error {
	key := ticketKey(t.EventID, t.Buyer)
	if existing, ok := f.tickets[key]; ok {
		t.ID = existing.ID
	} else {
		f.nextTicketID++
		t.ID = f.nextTicketID
	}
	f.tickets[key] = *t
	return nil
}

func (f *fakeStore) GetTicket(_ context.Context, eventID uint64, buyer string) (model.Ticket, error) {
	tk, ok := f.tickets[ticketKey(eventID, buyer)]
	if !ok {
		return model.Ticket{}, repository.ErrTicketNotFound
	}
	return tk, nil
}

func (f *fakeStore) MarkClaimed(_ context.Context, eventID uint64, buyer string) error {
	key := ticketKey(eventID, buyer)
	tk, ok := f.tickets[key]
	if !ok {
		return repository.ErrTicketNotFound
	}
	tk.Claimed = true
	f.tickets[key] = tk
	return nil
}

// fakeGateway records transfers and optionally fails them.
type fakeGateway struct {
	failWith  error
	transfers []transferCall
}

type transferCall struct {
	amount             uint64
	from, to, authedBy string
}

func (g *fakeGateway) Transfer(_ context.Context, amount uint64, from, to, authorizedBy string) error {
	if g.failWith != nil {
		return g.failWith
	}
	g.transfers = append(g.transfers, transferCall{amount: amount, from: from, to: to, authedBy: authorizedBy})
	return nil
}
