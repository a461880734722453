package model

import "time"

// TicketType classifies a ticket into one of three tiers.  The tier is
// a pure function of the event's escrow amount; see TicketTypeForAmount.
type TicketType string

const (
	TicketGeneral   TicketType = "GENERAL"
	TicketVIP       TicketType = "VIP"
	TicketBackstage TicketType = "BACKSTAGE"
)

// TicketTypeForAmount derives the tier from the event amount.  The
// ordering matters: exactly 1_000_000_000 is always General and never
// reaches the VIP branch, and every other value below 10_000_000_000
// (including values under 1_000_000_000) is Backstage.
func TicketTypeForAmount(amount uint64) TicketType {
	switch {
	case amount == 1_000_000_000:
		return TicketGeneral
	case amount >= 10_000_000_000:
		return TicketVIP
	default:
		return TicketBackstage
	}
}

// TicketDetails is the per-buyer snapshot embedded in a ticket at the
// moment of enrollment.  It copies the event fields as they were when
// the ticket was minted, including the full enrolled list at that time.
type TicketDetails struct {
	TicketID        [16]byte   `json:"ticket_id"`
	EventDetails    string     `json:"event_details"`
	EventStartTime  time.Time  `json:"event_start_time"`
	SeatNo          uint32     `json:"seat_no"`
	Amount          uint64     `json:"amount"`
	TicketType      TicketType `json:"ticket_type"`
	EnrolledPubkeys []string   `json:"enrolled_pubkeys"`
}

// Ticket is the proof of enrollment for one buyer in one event, stored
// in the `tickets` table with a UNIQUE (event_id, buyer) key so each
// pair holds at most one ticket.  Claimed starts false and is set to
// true by the claim service; the core never mutates a ticket afterwards.
//
// Fields:
//  ID        – primary key identifier.
//  EventID   – referenced events.id.
//  Buyer     – buyer identity (unique together with EventID).
//  Claimed   – whether the ticket has been redeemed.
//  Details   – snapshot taken during enrollment.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Ticket struct {
	ID        uint64        // tickets.id
	EventID   uint64        // tickets.event_id
	Buyer     string        // tickets.buyer
	Claimed   bool          // tickets.claimed
	Details   TicketDetails // snapshot columns + tickets.enrolled_pubkeys (JSON)
	CreatedAt time.Time     // tickets.created_at
	UpdatedAt time.Time     // tickets.updated_at
}
