// Package queue defines message payloads exchanged over the message
// broker, plus the publisher and background consumer that move them.
package queue

// TicketIssuedEvent is published after an enrollment has committed.  It
// carries enough information for downstream consumers to log, notify or
// run analytics without querying the primary database.
type TicketIssuedEvent struct {
	EventCreator string `json:"event_creator"`
	Buyer        string `json:"buyer"`
	TicketID     string `json:"ticket_id"`
	SeatNo       uint32 `json:"seat_no"`
	TicketType   string `json:"ticket_type"`
	Amount       uint64 `json:"amount"`
	TicketsSold  uint32 `json:"tickets_sold"`
	SoldOut      bool   `json:"sold_out"`
	IssuedAt     string `json:"issued_at"`
}

// TicketClaimedEvent is published after a ticket has been redeemed.
type TicketClaimedEvent struct {
	EventCreator string `json:"event_creator"`
	Buyer        string `json:"buyer"`
	TicketID     string `json:"ticket_id"`
	ClaimedAt    string `json:"claimed_at"`
}
