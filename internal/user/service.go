package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/simplebank/simplebank/internal/account"
	"github.com/simplebank/simplebank/internal/auth"
)

// ErrInvalidInput indicates a blank username or password on creation.
var ErrInvalidInput = errors.New("username and password are required")

// defaultAccountBalance is the opening balance, in the smallest currency
// unit, of each account provisioned for a new user.
const defaultAccountBalance = 1

// Service manages the user lifecycle and profile access. New users get one
// account per supported currency.
type Service struct {
	repo     Repository
	accounts account.Repository
}

// NewService creates a user service.
func NewService(repo Repository, accounts account.Repository) *Service {
	return &Service{repo: repo, accounts: accounts}
}

// Create registers a new user. Only the administrator may call it.
func (s *Service) Create(ctx context.Context, identity auth.Identity, username, password string) (User, error) {
	if !identity.Authenticated() {
		return User{}, auth.ErrUnauthenticated
	}
	if !identity.Admin {
		return User{}, auth.ErrForbidden
	}
	if username == "" || password == "" {
		return User{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	created, err := s.repo.Create(ctx, User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return User{}, err
	}

	for _, currency := range account.Currencies() {
		if _, err := s.accounts.Create(ctx, account.Account{
			UserID:    created.ID,
			Currency:  currency,
			Amount:    defaultAccountBalance,
			CreatedAt: created.CreatedAt,
		}); err != nil {
			return User{}, fmt.Errorf("provision %s account: %w", currency, err)
		}
	}

	return created, nil
}

// List returns all users. The administrator may not enumerate users.
func (s *Service) List(ctx context.Context, identity auth.Identity) ([]User, error) {
	if !identity.Authenticated() {
		return nil, auth.ErrUnauthenticated
	}
	if identity.Admin {
		return nil, auth.ErrForbidden
	}
	return s.repo.List(ctx)
}

// Profile returns the caller's own user record.
func (s *Service) Profile(ctx context.Context, identity auth.Identity) (User, error) {
	if identity.Admin {
		return User{}, auth.ErrForbidden
	}
	if !identity.Authenticated() {
		return User{}, auth.ErrUnauthenticated
	}
	return s.repo.FindByID(ctx, identity.UserID)
}
