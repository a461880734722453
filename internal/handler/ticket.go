package handler

import (
	"context"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/evaultlabs/ticket-vault/internal/model"
	"github.com/evaultlabs/ticket-vault/internal/queue"
	"github.com/evaultlabs/ticket-vault/internal/repository"
	"github.com/evaultlabs/ticket-vault/internal/service"
)

// TicketHandler exposes the buyer-facing operations: enroll into an
// event, claim the resulting ticket, and list owned tickets.
type TicketHandler struct {
	Enrollments *service.EnrollmentService
	Claims      *service.ClaimService
	Registry    *service.RegistryService
	Tickets     *repository.Store
}

func NewTicketHandler(enr *service.EnrollmentService, cl *service.ClaimService, reg *service.RegistryService, store *repository.Store) *TicketHandler {
	return &TicketHandler{Enrollments: enr, Claims: cl, Registry: reg, Tickets: store}
}

// Enroll buys one ticket for the caller in the creator's event.  The
// payment transfer and all event/ticket mutations commit atomically;
// the broker notification goes out only after the commit and is best
// effort.
func (h *TicketHandler) Enroll(c echo.Context) error {
	buyer, ok := callerIdentity(c)
	if !ok {
		return unauthorized(c)
	}
	creator := strings.TrimSpace(c.Param("creator"))
	if creator == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "creator required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	ticket, err := h.Enrollments.Enroll(ctx, creator, buyer)
	if err != nil {
		return enrollError(c, err)
	}

	// Post-commit notification; a broker outage never fails the sale.
	go func(t model.Ticket) {
		pctx, pcancel := context.WithTimeout(context.Background(), dbTimeout)
		defer pcancel()
		soldOut := false
		sold := uint32(0)
		if ev, err := h.Registry.Get(pctx, creator); err == nil {
			soldOut = !ev.TicketAvailable
			sold = ev.TotalTicketsSold
		}
		_ = queue.PublishTicketIssued(pctx, queue.TicketIssuedEvent{
			EventCreator: creator,
			Buyer:        t.Buyer,
			TicketID:     hex.EncodeToString(t.Details.TicketID[:]),
			SeatNo:       t.Details.SeatNo,
			TicketType:   string(t.Details.TicketType),
			Amount:       t.Details.Amount,
			TicketsSold:  sold,
			SoldOut:      soldOut,
			IssuedAt:     time.Now().UTC().Format(time.RFC3339),
		})
	}(ticket)

	return c.JSON(http.StatusCreated, newTicketResp(ticket))
}

func enrollError(c echo.Context, err error) error {
	switch err {
	case repository.ErrEventNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	case model.ErrAllTicketsSold:
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case model.ErrAlreadyEnrolled:
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case model.ErrEventAlreadyStarted:
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case model.ErrAmountNotEqualToTicketFee:
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	case repository.ErrInsufficientFunds, repository.ErrAccountNotFound:
		return c.JSON(http.StatusPaymentRequired, echo.Map{"error": "insufficient funds"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "enroll failed"})
	}
}

// Claim marks the caller's ticket for the creator's event as redeemed.
// Claiming again succeeds and simply rewrites the flag.
func (h *TicketHandler) Claim(c echo.Context) error {
	buyer, ok := callerIdentity(c)
	if !ok {
		return unauthorized(c)
	}
	creator := strings.TrimSpace(c.Param("creator"))
	if creator == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "creator required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	ticket, err := h.Claims.Claim(ctx, creator, buyer)
	if err != nil {
		switch err {
		case repository.ErrEventNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		case model.ErrNotEnrolled:
			return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
		case model.ErrAccountNotInitialized:
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "claim failed"})
		}
	}

	go func(t model.Ticket) {
		pctx, pcancel := context.WithTimeout(context.Background(), dbTimeout)
		defer pcancel()
		_ = queue.PublishTicketClaimed(pctx, queue.TicketClaimedEvent{
			EventCreator: creator,
			Buyer:        t.Buyer,
			TicketID:     hex.EncodeToString(t.Details.TicketID[:]),
			ClaimedAt:    time.Now().UTC().Format(time.RFC3339),
		})
	}(ticket)

	return c.JSON(http.StatusOK, newTicketResp(ticket))
}

// MyTickets lists every ticket owned by the caller across events.
func (h *TicketHandler) MyTickets(c echo.Context) error {
	buyer, ok := callerIdentity(c)
	if !ok {
		return unauthorized(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	tickets, creators, err := h.Tickets.ListTicketsByBuyer(ctx, buyer)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	type entry struct {
		EventCreator string `json:"event_creator"`
		ticketResp
	}
	out := make([]entry, 0, len(tickets))
	for i, t := range tickets {
		out = append(out, entry{EventCreator: creators[i], ticketResp: newTicketResp(t)})
	}
	return c.JSON(http.StatusOK, echo.Map{"tickets": out})
}
