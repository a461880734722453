package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/evaultlabs/ticket-vault/internal/clock"
	"github.com/evaultlabs/ticket-vault/internal/model"
	"github.com/evaultlabs/ticket-vault/internal/repository"
)

func TestRegistryService_Create(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("creates event with defaults", func(t *testing.T) {
		store := newFakeStore()
		svc := NewRegistry(store, clock.NewFixed(now))

		ev, err := svc.Create(context.Background(), "creator-1", CreateEventInput{
			Capacity:     100,
			Details:      "Summer concert",
			TicketFee:    1_000_000_000,
			EscrowAmount: 1_000_000_000,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if ev.ID == 0 {
			t.Fatalf("expected event ID to be assigned")
		}
		if !ev.StartTime.Equal(now.Add(time.Hour)) {
			t.Fatalf("expected start time %v, got %v", now.Add(time.Hour), ev.StartTime)
		}
		if ev.TotalTicketsSold != 0 {
			t.Fatalf("expected sold counter 0, got %d", ev.TotalTicketsSold)
		}
		if !ev.TicketAvailable {
			t.Fatalf("expected availability true on creation")
		}
		if ev.EnrolledPubkeysCount != 0 || len(ev.EnrolledPubkeys) != 0 {
			t.Fatalf("expected empty enrolled set, got %v", ev.EnrolledPubkeys)
		}
	})

	t.Run("rejects second event for same creator", func(t *testing.T) {
		store := newFakeStore()
		svc := NewRegistry(store, clock.NewFixed(now))

		if _, err := svc.Create(context.Background(), "creator-1", CreateEventInput{Capacity: 1, EscrowAmount: 1}); err != nil {
			t.Fatalf("expected first creation to succeed, got %v", err)
		}
		_, err := svc.Create(context.Background(), "creator-1", CreateEventInput{Capacity: 5, EscrowAmount: 1})
		if err != repository.ErrEventExists {
			t.Fatalf("expected ErrEventExists, got %v", err)
		}
	})

	t.Run("rejects oversized details", func(t *testing.T) {
		store := newFakeStore()
		svc := NewRegistry(store, clock.NewFixed(now))

		_, err := svc.Create(context.Background(), "creator-1", CreateEventInput{
			Capacity: 1,
			Details:  strings.Repeat("x", model.MaxDetailsLen+1),
		})
		if err != ErrDetailsTooLong {
			t.Fatalf("expected ErrDetailsTooLong, got %v", err)
		}
		if len(store.events) != 0 {
			t.Fatalf("expected no event stored, got %d", len(store.events))
		}
	})
}
