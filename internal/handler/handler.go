// Package handler exposes the HTTP surface: JSON request decoding, identity
// and admin-key checks, and mapping of domain errors to status codes.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xenking/shopcart/internal/domain/cart"
	"github.com/xenking/shopcart/internal/domain/checkout"
	"github.com/xenking/shopcart/internal/domain/discount"
	"github.com/xenking/shopcart/internal/domain/report"
	"github.com/xenking/shopcart/internal/domain/user"
)

// Handler routes HTTP requests to the domain services.
type Handler struct {
	users      *user.Service
	identities user.Repository
	carts      *cart.Service
	discounts  *discount.Service
	checkouts  *checkout.Service
	reports    *report.Service
	adminKey   []byte
}

// NewHandler constructs a Handler with the required domain dependencies.
// adminKey is the shared secret checked on the admin generate endpoint.
func NewHandler(
	users *user.Service,
	identities user.Repository,
	carts *cart.Service,
	discounts *discount.Service,
	checkouts *checkout.Service,
	reports *report.Service,
	adminKey []byte,
) *Handler {
	return &Handler{
		users:      users,
		identities: identities,
		carts:      carts,
		discounts:  discounts,
		checkouts:  checkouts,
		reports:    reports,
		adminKey:   adminKey,
	}
}

// Routes builds the API router. Endpoints that act on behalf of a user sit
// behind the identity middleware; the admin generate endpoint authorizes via
// the admin key in its payload instead.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Post("/auth/signup", h.SignUp)
	r.Post("/cart/add", h.AddItem)
	r.Get("/orders/{userID}", h.OrderHistory)

	r.Group(func(r chi.Router) {
		r.Use(h.RequireIdentity)
		r.Get("/cart/{userID}", h.GetCart)
		r.Post("/cart/update", h.UpdateItem)
		r.Post("/cart/remove", h.RemoveItem)
		r.Post("/checkout", h.Checkout)
	})

	r.Post("/admin/generate-discount", h.GenerateDiscount)
	r.Get("/admin/summary", h.Summary)

	return r
}
