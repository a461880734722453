package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/evaultlabs/ticket-vault/internal/repository"
)

// WalletHandler fronts the ledger accounts enrollment transfers draw
// from.  It is the funding surface, not part of the vault core.
type WalletHandler struct {
	Ledger *repository.Store
}

func NewWalletHandler(store *repository.Store) *WalletHandler {
	return &WalletHandler{Ledger: store}
}

type topupReq struct {
	Amount uint64 `json:"amount"`
}

// Topup credits the caller's ledger account.
func (h *WalletHandler) Topup(c echo.Context) error {
	identity, ok := callerIdentity(c)
	if !ok {
		return unauthorized(c)
	}

	var req topupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Amount == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be positive"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Ledger.Topup(ctx, identity, req.Amount); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "topup failed"})
	}

	balance, err := h.Ledger.Balance(ctx, identity)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"owner": identity, "balance": balance})
}

// Balance returns the caller's current ledger balance.  An account that
// was never topped up reads as zero.
func (h *WalletHandler) Balance(c echo.Context) error {
	identity, ok := callerIdentity(c)
	if !ok {
		return unauthorized(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	balance, err := h.Ledger.Balance(ctx, identity)
	if err != nil {
		if err == repository.ErrAccountNotFound {
			return c.JSON(http.StatusOK, echo.Map{"owner": identity, "balance": uint64(0)})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"owner": identity, "balance": balance})
}
