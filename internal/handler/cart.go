package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"github.com/xenking/shopcart/internal/domain/cart"
)

type addItemRequest struct {
	UserID    string  `json:"userId"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type updateItemRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	// Quantity distinguishes an explicit 0 (remove the item) from an absent
	// field (reject as missing).
	Quantity *int `json:"quantity"`
}

type removeItemRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
}

// GetCart returns the caller's cart together with all their discount codes,
// active and expired. The cart is lazily created on first access.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	caller, err := identityFrom(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if caller.ID != userID {
		respondError(w, http.StatusForbidden, "Forbidden")
		return
	}

	items, err := h.carts.Get(r.Context(), userID)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	codes, err := h.discounts.CodesFor(r.Context(), userID)
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"cart":          toItemDTOs(items),
		"discountCodes": codes,
	})
}

// AddItem adds a product to the user's cart, merging quantities when the
// product is already present. A zero price or quantity is rejected as a
// missing field.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if req.UserID == "" {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	items, err := h.carts.AddItem(r.Context(), req.UserID, itemDTO{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Quantity:  req.Quantity,
	}.toDomain())
	switch {
	case errors.Is(err, cart.ErrMissingFields):
		respondError(w, http.StatusBadRequest, "Missing required fields")
	case err != nil:
		respondInternal(w, r, err)
	default:
		respondJSON(w, http.StatusOK, map[string]any{
			"message": "Item added to cart successfully",
			"cart":    toItemDTOs(items),
		})
	}
}

// UpdateItem sets the quantity of an existing cart line; an explicit zero
// removes the line.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if req.UserID == "" || req.ProductID == "" || req.Quantity == nil {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	items, err := h.carts.UpdateQuantity(r.Context(), req.UserID, req.ProductID, *req.Quantity)
	switch {
	case errors.Is(err, cart.ErrCartNotFound):
		respondError(w, http.StatusNotFound, "Cart not found")
	case errors.Is(err, cart.ErrItemNotFound):
		respondError(w, http.StatusNotFound, "Item not found in cart")
	case err != nil:
		respondInternal(w, r, err)
	default:
		respondJSON(w, http.StatusOK, map[string]any{
			"message": "Cart updated",
			"cart":    toItemDTOs(items),
		})
	}
}

// RemoveItem filters a product out of the caller's cart. Removal is
// idempotent: a product that is already absent is not an error.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	caller, err := identityFrom(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req removeItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if caller.ID != req.UserID {
		respondError(w, http.StatusForbidden, "Forbidden")
		return
	}
	if req.UserID == "" || req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	items, err := h.carts.RemoveItem(r.Context(), req.UserID, req.ProductID)
	switch {
	case errors.Is(err, cart.ErrCartNotFound):
		respondError(w, http.StatusNotFound, "Cart not found")
	case err != nil:
		respondInternal(w, r, err)
	default:
		respondJSON(w, http.StatusOK, map[string]any{
			"message": "Item removed successfully",
			"cart":    toItemDTOs(items),
		})
	}
}
