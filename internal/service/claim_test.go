package service

import (
	"context"
	"testing"
	"time"

	"github.com/evaultlabs/ticket-vault/internal/clock"
	"github.com/evaultlabs/ticket-vault/internal/model"
)

func TestClaimService_Claim(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	// seed an event with one enrolled buyer holding a ticket
	setup := func(t *testing.T) (*ClaimService, *fakeStore) {
		t.Helper()
		store := newFakeStore()
		store.seedEvent(model.Event{
			Creator:            "creator-1",
			Amount:             1_000_000_000,
			TotalTicketsIssued: 2,
			TicketAvailable:    true,
			StartTime:          now.Add(time.Hour),
		})
		enroll := NewEnrollment(store, &fakeGateway{}, clock.NewFixed(now))
		if _, err := enroll.Enroll(context.Background(), "creator-1", "buyer-x"); err != nil {
			t.Fatalf("seed enrollment failed: %v", err)
		}
		return NewClaim(store), store
	}

	t.Run("enrolled buyer claims ticket", func(t *testing.T) {
		svc, store := setup(t)

		tk, err := svc.Claim(context.Background(), "creator-1", "buyer-x")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !tk.Claimed {
			t.Fatalf("expected returned ticket to be claimed")
		}

		stored, err := store.GetTicket(context.Background(), tk.EventID, "buyer-x")
		if err != nil {
			t.Fatalf("ticket lookup failed: %v", err)
		}
		if !stored.Claimed {
			t.Fatalf("expected claimed flag persisted")
		}
	})

	t.Run("stranger cannot claim", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.Claim(context.Background(), "creator-1", "buyer-z")
		if err != model.ErrNotEnrolled {
			t.Fatalf("expected ErrNotEnrolled, got %v", err)
		}
	})

	t.Run("repeated claim succeeds again", func(t *testing.T) {
		svc, _ := setup(t)

		if _, err := svc.Claim(context.Background(), "creator-1", "buyer-x"); err != nil {
			t.Fatalf("first claim failed: %v", err)
		}
		tk, err := svc.Claim(context.Background(), "creator-1", "buyer-x")
		if err != nil {
			t.Fatalf("expected repeated claim to succeed, got %v", err)
		}
		if !tk.Claimed {
			t.Fatalf("expected ticket to remain claimed")
		}
	})

	t.Run("enrolled buyer without ticket record", func(t *testing.T) {
		svc, store := setup(t)

		ev := store.events["creator-1"]
		delete(store.tickets, ticketKey(ev.ID, "buyer-x"))

		_, err := svc.Claim(context.Background(), "creator-1", "buyer-x")
		if err != model.ErrAccountNotInitialized {
			t.Fatalf("expected ErrAccountNotInitialized, got %v", err)
		}
	})
}
