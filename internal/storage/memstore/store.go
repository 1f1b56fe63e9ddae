// Package memstore holds the whole application state as an in-memory object
// graph, reconstructed on process start. Every repository interface of the
// domain packages is implemented on the same Store so a single mutex can
// make each logical operation a critical section.
package memstore

import (
	"sync"

	"github.com/xenking/shopcart/internal/domain/cart"
	"github.com/xenking/shopcart/internal/domain/discount"
	"github.com/xenking/shopcart/internal/domain/order"
	"github.com/xenking/shopcart/internal/domain/user"
)

// Store is the single owner of all mutable state. Services mutate through
// the repository interfaces and nothing is cached elsewhere.
type Store struct {
	mu sync.Mutex

	users      []user.User
	carts      map[string][]cart.Item
	userCodes  map[string][]discount.Code
	adminCodes []string
	orders     []order.Order
	counts     map[string]int
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		carts:      make(map[string][]cart.Item),
		userCodes:  make(map[string][]discount.Code),
		adminCodes: []string{},
		orders:     []order.Order{},
		counts:     make(map[string]int),
	}
}

// Seed inserts an account directly, bypassing sign-up validation. It is used
// for the administrator account created at startup.
func (s *Store) Seed(u user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, u)
}
