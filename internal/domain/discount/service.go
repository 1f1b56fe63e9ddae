package discount

import (
	"context"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"

	"github.com/xenking/shopcart/internal/domain/order"
)

// Bloom filter sizing for the issued-code membership pre-check. False
// positives only cost a list scan, so a loose error rate is fine.
const (
	issuedCapacity = 1 << 20
	issuedFPR      = 0.001
)

// Service manages the discount-code lifecycle: redemption, milestone
// issuance, and admin issuance.
//
// Every code the service has ever issued is also recorded in a bloom filter,
// so redemption attempts with codes that never existed are rejected without
// touching the user's list.
type Service struct {
	codes  Repository
	orders order.Repository
	next   SuffixFunc

	mu     sync.Mutex
	issued *bloom.BloomFilter
}

// NewService creates a discount Service. A nil suffix falls back to
// DefaultSuffix.
func NewService(codes Repository, orders order.Repository, next SuffixFunc) *Service {
	if next == nil {
		next = DefaultSuffix()
	}
	return &Service{
		codes:  codes,
		orders: orders,
		next:   next,
		issued: bloom.NewWithEstimates(issuedCapacity, issuedFPR),
	}
}

// recordIssued adds a freshly generated code to the membership filter.
func (s *Service) recordIssued(code string) {
	s.mu.Lock()
	s.issued.AddString(code)
	s.mu.Unlock()
}

// maybeIssued reports whether the code could have been issued by this
// process. False means definitely never issued.
func (s *Service) maybeIssued(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issued.TestString(code)
}

// CodesFor returns the user's codes, both active and expired.
func (s *Service) CodesFor(ctx context.Context, userID string) ([]Code, error) {
	codes, err := s.codes.CodesForUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list codes")
	}
	return codes, nil
}

// ValidateAndConsume redeems a code for the user. The code must be in the
// user's list and not yet expired; on success it is marked expired in place
// (single-use). ErrInvalidCode is returned otherwise.
func (s *Service) ValidateAndConsume(ctx context.Context, userID, code string) error {
	if !s.maybeIssued(code) {
		return ErrInvalidCode
	}

	codes, err := s.codes.CodesForUser(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "list codes")
	}

	for i := range codes {
		if codes[i].Code == code && !codes[i].Expired {
			codes[i].Expired = true
			if err := s.codes.ReplaceForUser(ctx, userID, codes); err != nil {
				return errors.Wrap(err, "save codes")
			}
			return nil
		}
	}
	return ErrInvalidCode
}

// IssueOnMilestone issues a fresh code when the user's order count has just
// reached a multiple of MilestoneEvery. All previous codes for the user are
// expired first. It returns the empty string when the count is not at a
// milestone.
func (s *Service) IssueOnMilestone(ctx context.Context, userID string, newOrderCount int) (string, error) {
	if newOrderCount%MilestoneEvery != 0 {
		return "", nil
	}

	codes, err := s.codes.CodesForUser(ctx, userID)
	if err != nil {
		return "", errors.Wrap(err, "list codes")
	}
	for i := range codes {
		codes[i].Expired = true
	}

	code := userCodePrefix + s.next()
	codes = append(codes, Code{Code: code})
	if err := s.codes.ReplaceForUser(ctx, userID, codes); err != nil {
		return "", errors.Wrap(err, "save codes")
	}

	s.recordIssued(code)
	return code, nil
}

// IssueAdminGlobal generates a new code in the global admin pool. Admin
// global codes carry no expiry and are never consulted at checkout.
func (s *Service) IssueAdminGlobal(ctx context.Context) (string, error) {
	code := adminGlobalPrefix + s.next()
	if err := s.codes.AppendAdminCode(ctx, code); err != nil {
		return "", errors.Wrap(err, "save admin code")
	}
	s.recordIssued(code)
	return code, nil
}

// IssueAdminForUser generates a user-scoped code on behalf of an admin. The
// user must have completed at least MilestoneEvery orders; existing codes are
// expired before the new one is appended.
func (s *Service) IssueAdminForUser(ctx context.Context, userID string) (string, error) {
	count, err := s.orders.CountByUser(ctx, userID)
	if err != nil {
		return "", errors.Wrap(err, "order count")
	}
	if count < MilestoneEvery {
		return "", ErrNotEnoughOrders
	}

	codes, err := s.codes.CodesForUser(ctx, userID)
	if err != nil {
		return "", errors.Wrap(err, "list codes")
	}
	for i := range codes {
		codes[i].Expired = true
	}

	code := adminUserCodePrefix + userID + "-" + s.next()
	codes = append(codes, Code{Code: code})
	if err := s.codes.ReplaceForUser(ctx, userID, codes); err != nil {
		return "", errors.Wrap(err, "save codes")
	}

	s.recordIssued(code)
	return code, nil
}
