package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/evaultlabs/ticket-vault/internal/repository"
	"github.com/evaultlabs/ticket-vault/internal/service"
)

// EventHandler exposes event creation and inspection.  Creation is
// organizer-only; each organizer identity owns at most one event.
type EventHandler struct {
	Registry *service.RegistryService
}

func NewEventHandler(reg *service.RegistryService) *EventHandler {
	return &EventHandler{Registry: reg}
}

type createEventReq struct {
	Capacity     uint32 `json:"capacity"`
	Details      string `json:"details"`
	TicketFee    uint64 `json:"ticket_fee"`
	EscrowAmount uint64 `json:"escrow_amount"`
}

// Create registers a new event under the caller's identity.  The start
// time is fixed one hour out; the caller does not choose it.
func (h *EventHandler) Create(c echo.Context) error {
	identity, ok := callerIdentity(c)
	if !ok {
		return unauthorized(c)
	}

	var req createEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	ev, err := h.Registry.Create(ctx, identity, service.CreateEventInput{
		Capacity:     req.Capacity,
		Details:      req.Details,
		TicketFee:    req.TicketFee,
		EscrowAmount: req.EscrowAmount,
	})
	switch {
	case err == nil:
	case err == service.ErrDetailsTooLong:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "details too long"})
	case err == repository.ErrEventExists:
		return c.JSON(http.StatusConflict, echo.Map{"error": "event already exists for this creator"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}

	return c.JSON(http.StatusCreated, newEventResp(ev))
}

// Get returns the event owned by the creator identity in the path.
func (h *EventHandler) Get(c echo.Context) error {
	creator := strings.TrimSpace(c.Param("creator"))
	if creator == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "creator required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	ev, err := h.Registry.Get(ctx, creator)
	if err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, newEventResp(ev))
}
