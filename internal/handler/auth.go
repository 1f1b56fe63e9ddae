package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/xenking/shopcart/internal/domain/user"
)

type signUpRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignUp registers a new account.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	_, err := h.users.SignUp(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, user.ErrMissingCredentials):
		respondError(w, http.StatusBadRequest, "Username and password are required")
	case errors.Is(err, user.ErrAlreadyExists):
		respondError(w, http.StatusBadRequest, "User already exists")
	case err != nil:
		respondInternal(w, r, err)
	default:
		respondJSON(w, http.StatusCreated, map[string]string{"message": "User created successfully"})
	}
}
