package model

import "time"

// Event represents a ticketed event record as stored in the `events`
// table.  Each creator identity may own at most one event; the creator
// column carries a UNIQUE index so the storage layer rejects a second
// creation instead of silently overwriting the first.
//
// The TicketID, SeatNo and TicketType fields mirror the values derived
// for the most recent enrollment.  They are kept for inspection parity
// with older clients; the per-buyer copy inside Ticket.Details is the
// authoritative one once more than one buyer has enrolled.
//
// Fields:
//  ID                  – primary key identifier.
//  Creator             – identity of the organizer who created the event (unique).
//  Details             – human-readable event description, at most 256 bytes.
//  Amount              – escrow amount moved per enrollment.
//  TicketFee           – advertised per-ticket fee.
//  TotalTicketsIssued  – capacity; maximum number of tickets.
//  TotalTicketsSold    – running sold counter, never exceeds issued.
//  TicketAvailable     – false once sold reaches issued.
//  StartTime           – absolute start timestamp (creation time + 1h).
//  EnrolledPubkeys     – ordered list of enrolled buyer identities, each unique.
//  EnrolledPubkeysCount – redundant length of EnrolledPubkeys.
//  TicketID            – last generated ticket identifier (16 bytes).
//  SeatNo              – last assigned seat number.
//  TicketType          – last derived ticket tier.
//  CreatedAt           – creation timestamp.
//  UpdatedAt           – last update timestamp.
type Event struct {
	ID                   uint64     // events.id
	Creator              string     // events.creator
	Details              string     // events.details
	Amount               uint64     // events.amount
	TicketFee            uint64     // events.ticket_fee
	TotalTicketsIssued   uint32     // events.total_tickets_issued
	TotalTicketsSold     uint32     // events.total_tickets_sold
	TicketAvailable      bool       // events.event_ticket_available
	StartTime            time.Time  // events.event_start_time
	EnrolledPubkeys      []string   // events.enrolled_pubkeys (JSON)
	EnrolledPubkeysCount uint32     // events.enrolled_pubkeys_count
	TicketID             [16]byte   // events.ticket_id (hex in DB)
	SeatNo               uint32     // events.seat_no
	TicketType           TicketType // events.ticket_type
	CreatedAt            time.Time  // events.created_at
	UpdatedAt            time.Time  // events.updated_at
}

// Enrolled reports whether the given buyer identity already appears in
// the event's enrolled list.
func (e *Event) Enrolled(buyer string) bool {
	for _, pk := range e.EnrolledPubkeys {
		if pk == buyer {
			return true
		}
	}
	return false
}

// MaxDetailsLen bounds the events.details payload in bytes.
const MaxDetailsLen = 256
