package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/xenking/shopcart/internal/domain/checkout"
	"github.com/xenking/shopcart/internal/domain/discount"
)

type checkoutRequest struct {
	DiscountCode string `json:"discountCode"`
}

// Checkout places an order for the caller's cart, optionally redeeming a
// discount code. Any precondition failure leaves all state untouched.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	caller, err := identityFrom(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	o, err := h.checkouts.Checkout(r.Context(), caller.ID, req.DiscountCode)
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "Cart is empty")
	case errors.Is(err, discount.ErrInvalidCode):
		respondError(w, http.StatusBadRequest, "Invalid or expired discount code")
	case err != nil:
		respondInternal(w, r, err)
	default:
		respondJSON(w, http.StatusOK, map[string]any{
			"message": "Order placed successfully",
			"order":   toOrderDTO(o),
		})
	}
}
