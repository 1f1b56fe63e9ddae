package discount

import (
	"context"

	"github.com/go-faster/errors"
)

// Sentinel errors for discount-code operations.
var (
	// ErrInvalidCode is returned when a code is unknown, belongs to another
	// user, or has already been used.
	ErrInvalidCode = errors.New("invalid or expired discount code")
	// ErrNotEnoughOrders is returned when an admin requests a user code for
	// a user below the order milestone.
	ErrNotEnoughOrders = errors.New("user has fewer than 5 orders")
)

// MilestoneEvery is the order-count interval at which a user automatically
// earns a fresh discount code.
const MilestoneEvery = 5

// Code is a user-scoped discount code. Codes are single-use: redemption
// marks them expired in place rather than deleting them.
type Code struct {
	Code    string `json:"code"`
	Expired bool   `json:"expired"`
}

// Repository defines persistence operations for discount codes. User codes
// are unique by code string per user; admin codes are a flat pool with no
// expiry tracking.
type Repository interface {
	// CodesForUser returns the user's codes, both active and expired.
	CodesForUser(ctx context.Context, userID string) ([]Code, error)
	// ReplaceForUser stores the given codes as the user's full list.
	ReplaceForUser(ctx context.Context, userID string, codes []Code) error
	// AllUserCodes returns the complete user-to-codes mapping.
	AllUserCodes(ctx context.Context) (map[string][]Code, error)
	// AppendAdminCode adds a code to the global admin pool.
	AppendAdminCode(ctx context.Context, code string) error
	// AdminCodes returns the global admin pool.
	AdminCodes(ctx context.Context) ([]string, error)
}
