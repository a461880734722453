package repository

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/evaultlabs/ticket-vault/internal/model"
)

// Tickets carry a UNIQUE (event_id, buyer) key, so each pair holds at
// most one ticket and the upsert during enrollment is create-if-absent.
// The snapshot columns copy the event as of minting; the enrolled list
// snapshot is stored as JSON.

const ticketColumns = `id, event_id, buyer, claimed, ticket_id, seat_no,
       amount, ticket_type, event_details, event_start_time,
       enrolled_pubkeys, created_at, updated_at`

// UpsertTicket writes the buyer's ticket for an event, overwriting the
// snapshot if a row for the pair already exists, and populates the ID.
func (s *Store) UpsertTicket(ctx context.Context, t *model.Ticket) error {
	enrolled, err := json.Marshal(t.Details.EnrolledPubkeys)
	if err != nil {
		return err
	}
	// LAST_INSERT_ID(id) makes LastInsertId return the existing row's id
	// on the duplicate-key path.
	res, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO tickets (event_id, buyer, claimed, ticket_id, seat_no,
		        amount, ticket_type, event_details, event_start_time, enrolled_pubkeys)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE
		        id = LAST_INSERT_ID(id),
		        claimed = VALUES(claimed),
		        ticket_id = VALUES(ticket_id),
		        seat_no = VALUES(seat_no),
		        amount = VALUES(amount),
		        ticket_type = VALUES(ticket_type),
		        event_details = VALUES(event_details),
		        event_start_time = VALUES(event_start_time),
		        enrolled_pubkeys = VALUES(enrolled_pubkeys)`,
		t.EventID, t.Buyer, t.Claimed,
		hex.EncodeToString(t.Details.TicketID[:]), t.Details.SeatNo,
		t.Details.Amount, string(t.Details.TicketType),
		t.Details.EventDetails, t.Details.EventStartTime.UTC(), enrolled,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// GetTicket returns the ticket for an (event, buyer) pair.
func (s *Store) GetTicket(ctx context.Context, eventID uint64, buyer string) (model.Ticket, error) {
	row := s.q(ctx).QueryRowContext(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE event_id = ? AND buyer = ?`,
		eventID, buyer,
	)
	tk, err := scanTicket(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Ticket{}, ErrTicketNotFound
		}
		return model.Ticket{}, err
	}
	return tk, nil
}

// MarkClaimed sets the claimed flag for the pair.  Re-claiming an
// already claimed ticket is a no-op at this layer.
func (s *Store) MarkClaimed(ctx context.Context, eventID uint64, buyer string) error {
	_, err := s.q(ctx).ExecContext(ctx,
		`UPDATE tickets SET claimed = TRUE WHERE event_id = ? AND buyer = ?`,
		eventID, buyer,
	)
	return err
}

// ListTicketsByBuyer returns all of a buyer's tickets, newest first,
// along with the creator identity of each referenced event.
func (s *Store) ListTicketsByBuyer(ctx context.Context, buyer string) ([]model.Ticket, []string, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT t.id, t.event_id, t.buyer, t.claimed, t.ticket_id, t.seat_no,
		        t.amount, t.ticket_type, t.event_details, t.event_start_time,
		        t.enrolled_pubkeys, t.created_at, t.updated_at, e.creator
		   FROM tickets t
		   JOIN events e ON e.id = t.event_id
		  WHERE t.buyer = ?
		  ORDER BY t.created_at DESC`,
		buyer,
	)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var (
		tickets  []model.Ticket
		creators []string
	)
	for rows.Next() {
		var creator string
		tk, err := scanTicket(func(dest ...any) error {
			return rows.Scan(append(dest, &creator)...)
		})
		if err != nil {
			return nil, nil, err
		}
		tickets = append(tickets, tk)
		creators = append(creators, creator)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return tickets, creators, nil
}

func scanTicket(scan func(dest ...any) error) (model.Ticket, error) {
	var (
		tk        model.Ticket
		ticketHex string
		tierStr   string
		enrolled  []byte
	)
	err := scan(
		&tk.ID, &tk.EventID, &tk.Buyer, &tk.Claimed, &ticketHex, &tk.Details.SeatNo,
		&tk.Details.Amount, &tierStr, &tk.Details.EventDetails, &tk.Details.EventStartTime,
		&enrolled, &tk.CreatedAt, &tk.UpdatedAt,
	)
	if err != nil {
		return model.Ticket{}, err
	}
	raw, err := hex.DecodeString(ticketHex)
	if err != nil {
		return model.Ticket{}, err
	}
	copy(tk.Details.TicketID[:], raw)
	tk.Details.TicketType = model.TicketType(tierStr)
	if err := json.Unmarshal(enrolled, &tk.Details.EnrolledPubkeys); err != nil {
		return model.Ticket{}, err
	}
	return tk, nil
}
