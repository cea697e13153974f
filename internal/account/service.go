package account

import (
	"context"

	"github.com/simplebank/simplebank/internal/auth"
)

// Authorize checks that the identity may operate on the account. The
// administrator has no personal accounts, so it is always refused. Every
// ownership check on accounts, including the transfer path, goes through
// here.
func Authorize(identity auth.Identity, acc Account) error {
	if !identity.Authenticated() {
		return auth.ErrUnauthenticated
	}
	if identity.Admin {
		return auth.ErrForbidden
	}
	if acc.UserID != identity.UserID {
		return auth.ErrForbidden
	}
	return nil
}

// Service exposes balance operations on a single account, gated by ownership.
type Service struct {
	repo Repository
}

// NewService builds an account service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the account if the caller owns it.
func (s *Service) Get(ctx context.Context, identity auth.Identity, accountID int64) (Account, error) {
	acc, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return Account{}, err
	}
	if err := Authorize(identity, acc); err != nil {
		return Account{}, err
	}
	return acc, nil
}

// Deposit credits the caller's account and returns the updated record.
func (s *Service) Deposit(ctx context.Context, identity auth.Identity, accountID, amount int64) (Account, error) {
	if _, err := s.Get(ctx, identity, accountID); err != nil {
		return Account{}, err
	}
	if amount <= 0 {
		return Account{}, ErrInvalidAmount
	}
	return s.repo.Deposit(ctx, accountID, amount)
}

// Withdraw debits the caller's account and returns the updated record. A
// withdrawal of the full balance succeeds and leaves the balance at zero.
func (s *Service) Withdraw(ctx context.Context, identity auth.Identity, accountID, amount int64) (Account, error) {
	if _, err := s.Get(ctx, identity, accountID); err != nil {
		return Account{}, err
	}
	if amount <= 0 {
		return Account{}, ErrInvalidAmount
	}
	return s.repo.Withdraw(ctx, accountID, amount)
}
