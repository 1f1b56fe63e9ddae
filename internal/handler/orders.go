package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// OrderHistory returns every order the user has placed, oldest first.
func (h *Handler) OrderHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	orders, err := h.checkouts.History(r.Context(), userID)
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"orders": toOrderDTOs(orders)})
}
