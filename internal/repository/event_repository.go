package repository

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/evaultlabs/ticket-vault/internal/model"
)

// Events are an explicit keyed map from creator identity to record: the
// creator column carries a UNIQUE index, so creation is insert-if-absent
// and a duplicate surfaces ErrEventExists instead of overwriting.  The
// enrolled list is stored as a JSON array in column order, the 16-byte
// ticket id as lowercase hex.

const eventColumns = `id, creator, details, amount, ticket_fee,
       total_tickets_issued, total_tickets_sold, event_ticket_available,
       event_start_time, enrolled_pubkeys, enrolled_pubkeys_count,
       ticket_id, seat_no, ticket_type, created_at, updated_at`

// CreateEvent inserts a new event and populates its generated ID.
// A second event for the same creator fails with ErrEventExists.
func (s *Store) CreateEvent(ctx context.Context, ev *model.Event) error {
	enrolled, err := json.Marshal(ev.EnrolledPubkeys)
	if err != nil {
		return err
	}
	res, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO events (creator, details, amount, ticket_fee,
		        total_tickets_issued, total_tickets_sold, event_ticket_available,
		        event_start_time, enrolled_pubkeys, enrolled_pubkeys_count,
		        ticket_id, seat_no, ticket_type)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.Creator, ev.Details, ev.Amount, ev.TicketFee,
		ev.TotalTicketsIssued, ev.TotalTicketsSold, ev.TicketAvailable,
		ev.StartTime.UTC(), enrolled, ev.EnrolledPubkeysCount,
		hex.EncodeToString(ev.TicketID[:]), ev.SeatNo, string(ev.TicketType),
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return ErrEventExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ev.ID = uint64(id)
	return nil
}

// GetEvent returns the event keyed by creator identity.
func (s *Store) GetEvent(ctx context.Context, creator string) (model.Event, error) {
	return s.scanEvent(s.q(ctx).QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE creator = ?`, creator))
}

// GetEventForUpdate locks the event row for the rest of the enclosing
// transaction.  Concurrent enrollments against the same event serialize
// here, so the availability and membership checks that follow always
// see the committed state.
func (s *Store) GetEventForUpdate(ctx context.Context, creator string) (model.Event, error) {
	return s.scanEvent(s.q(ctx).QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE creator = ? FOR UPDATE`, creator))
}

// UpdateEventEnrollment persists the fields an enrollment mutates.
func (s *Store) UpdateEventEnrollment(ctx context.Context, ev model.Event) error {
	enrolled, err := json.Marshal(ev.EnrolledPubkeys)
	if err != nil {
		return err
	}
	_, err = s.q(ctx).ExecContext(ctx,
		`UPDATE events
		    SET total_tickets_sold = ?, event_ticket_available = ?,
		        enrolled_pubkeys = ?, enrolled_pubkeys_count = ?,
		        ticket_id = ?, seat_no = ?, ticket_type = ?
		  WHERE id = ?`,
		ev.TotalTicketsSold, ev.TicketAvailable,
		enrolled, ev.EnrolledPubkeysCount,
		hex.EncodeToString(ev.TicketID[:]), ev.SeatNo, string(ev.TicketType),
		ev.ID,
	)
	return err
}

func (s *Store) scanEvent(row *sql.Row) (model.Event, error) {
	var (
		ev        model.Event
		enrolled  []byte
		ticketHex string
		tierStr   string
	)
	err := row.Scan(
		&ev.ID, &ev.Creator, &ev.Details, &ev.Amount, &ev.TicketFee,
		&ev.TotalTicketsIssued, &ev.TotalTicketsSold, &ev.TicketAvailable,
		&ev.StartTime, &enrolled, &ev.EnrolledPubkeysCount,
		&ticketHex, &ev.SeatNo, &tierStr, &ev.CreatedAt, &ev.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Event{}, ErrEventNotFound
		}
		return model.Event{}, err
	}
	if err := json.Unmarshal(enrolled, &ev.EnrolledPubkeys); err != nil {
		return model.Event{}, err
	}
	if ev.EnrolledPubkeys == nil {
		ev.EnrolledPubkeys = []string{}
	}
	raw, err := hex.DecodeString(ticketHex)
	if err != nil {
		return model.Event{}, err
	}
	copy(ev.TicketID[:], raw)
	ev.TicketType = model.TicketType(tierStr)
	return ev, nil
}
