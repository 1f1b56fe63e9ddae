package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/xenking/shopcart/internal/domain/discount"
)

type generateDiscountRequest struct {
	AdminKey string `json:"adminKey"`
	UserID   string `json:"userId"`
}

// GenerateDiscount issues a discount code on behalf of an admin. Without a
// user id it appends to the global pool; with one it issues a user-scoped
// code, which requires the user to have reached the order milestone.
func (h *Handler) GenerateDiscount(w http.ResponseWriter, r *http.Request) {
	var req generateDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !h.checkAdminKey(req.AdminKey) {
		respondError(w, http.StatusForbidden, "Unauthorized")
		return
	}

	if req.UserID == "" {
		code, err := h.discounts.IssueAdminGlobal(r.Context())
		if err != nil {
			respondInternal(w, r, err)
			return
		}
		respondJSON(w, http.StatusCreated, map[string]string{
			"message":      "Global discount code generated",
			"discountCode": code,
		})
		return
	}

	code, err := h.discounts.IssueAdminForUser(r.Context(), req.UserID)
	switch {
	case errors.Is(err, discount.ErrNotEnoughOrders):
		respondError(w, http.StatusBadRequest, "User has fewer than 5 orders. Code not allowed.")
	case err != nil:
		respondInternal(w, r, err)
	default:
		respondJSON(w, http.StatusCreated, map[string]string{
			"message":      "New discount code generated for user " + req.UserID,
			"discountCode": code,
		})
	}
}

// Summary returns the aggregate sales view for the admin dashboard.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.reports.Summary(r.Context())
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"totalOrders":         s.TotalOrders,
		"totalItemsPurchased": s.TotalItemsPurchased,
		"totalPurchaseAmount": s.TotalPurchaseAmount.InexactFloat64(),
		"totalDiscountAmount": s.TotalDiscountAmount.InexactFloat64(),
		"orders":              toOrderDTOs(s.Orders),
		"userDiscounts":       s.UserDiscounts,
		"adminDiscountCodes":  s.AdminDiscountCodes,
	})
}
