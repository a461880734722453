package handler

import (
	"encoding/hex"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/evaultlabs/ticket-vault/internal/model"
)

// dbTimeout bounds every database call made from a handler.
const dbTimeout = 5 * time.Second

// callerIdentity returns the 64-char hex identity the JWT middleware
// stored in the context.  Handlers behind JWTAuth can rely on it being
// present; an empty result means the route was misconfigured.
func callerIdentity(c echo.Context) (string, bool) {
	s, ok := c.Get("identity").(string)
	return s, ok && s != ""
}

// eventResp is the JSON shape of an event.  The mirrored ticket_id,
// seat_no and ticket_type from the most recent enrollment are exposed
// verbatim.
type eventResp struct {
	Creator              string    `json:"creator"`
	Details              string    `json:"details"`
	Amount               uint64    `json:"amount"`
	TicketFee            uint64    `json:"ticket_fee"`
	TotalTicketsIssued   uint32    `json:"total_tickets_issued"`
	TotalTicketsSold     uint32    `json:"total_tickets_sold"`
	TicketAvailable      bool      `json:"event_ticket_available"`
	StartTime            time.Time `json:"event_start_time"`
	EnrolledPubkeys      []string  `json:"enrolled_pubkeys"`
	EnrolledPubkeysCount uint32    `json:"enrolled_pubkeys_count"`
	TicketID             string    `json:"ticket_id"`
	SeatNo               uint32    `json:"seat_no"`
	TicketType           string    `json:"ticket_type"`
}

func newEventResp(ev model.Event) eventResp {
	return eventResp{
		Creator:              ev.Creator,
		Details:              ev.Details,
		Amount:               ev.Amount,
		TicketFee:            ev.TicketFee,
		TotalTicketsIssued:   ev.TotalTicketsIssued,
		TotalTicketsSold:     ev.TotalTicketsSold,
		TicketAvailable:      ev.TicketAvailable,
		StartTime:            ev.StartTime,
		EnrolledPubkeys:      ev.EnrolledPubkeys,
		EnrolledPubkeysCount: ev.EnrolledPubkeysCount,
		TicketID:             hex.EncodeToString(ev.TicketID[:]),
		SeatNo:               ev.SeatNo,
		TicketType:           string(ev.TicketType),
	}
}

// ticketResp is the JSON shape of a ticket with its enrollment snapshot.
type ticketResp struct {
	TicketID        string    `json:"ticket_id"`
	Buyer           string    `json:"buyer"`
	Claimed         bool      `json:"claimed"`
	EventDetails    string    `json:"event_details"`
	EventStartTime  time.Time `json:"event_start_time"`
	SeatNo          uint32    `json:"seat_no"`
	Amount          uint64    `json:"amount"`
	TicketType      string    `json:"ticket_type"`
	EnrolledPubkeys []string  `json:"enrolled_pubkeys"`
}

func newTicketResp(t model.Ticket) ticketResp {
	return ticketResp{
		TicketID:        hex.EncodeToString(t.Details.TicketID[:]),
		Buyer:           t.Buyer,
		Claimed:         t.Claimed,
		EventDetails:    t.Details.EventDetails,
		EventStartTime:  t.Details.EventStartTime,
		SeatNo:          t.Details.SeatNo,
		Amount:          t.Details.Amount,
		TicketType:      string(t.Details.TicketType),
		EnrolledPubkeys: t.Details.EnrolledPubkeys,
	}
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
}
