package transfer

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/simplebank/simplebank/internal/account"
	"github.com/simplebank/simplebank/internal/auth"
	"github.com/simplebank/simplebank/internal/notification"
)

// ErrCurrencyMismatch indicates the two accounts hold different currencies.
// The text is part of the API contract.
var ErrCurrencyMismatch = errors.New("Account currencies should be same")

// Input captures the data needed to move funds between two accounts.
type Input struct {
	FromAccountID int64
	ToUserID      int64
	ToAccountID   int64
	Amount        int64
}

// Service moves funds between accounts of equal currency. The debit and
// credit are applied atomically by the account repository.
type Service struct {
	accounts account.Repository
	notifier notification.Notifier
}

// NewService constructs a transfer service.
func NewService(accounts account.Repository, notifier notification.Notifier) *Service {
	return &Service{accounts: accounts, notifier: notifier}
}

// Transfer debits the caller's source account and credits the destination.
// The destination is resolved within the recipient's scope, so an account id
// that belongs to someone else reads as not found. A transfer onto the same
// account is permitted and leaves the balance unchanged.
func (s *Service) Transfer(ctx context.Context, identity auth.Identity, in Input) error {
	source, err := s.accounts.Get(ctx, in.FromAccountID)
	if err != nil {
		return err
	}
	if err := account.Authorize(identity, source); err != nil {
		return err
	}

	destination, err := s.accounts.FindByUser(ctx, in.ToUserID, in.ToAccountID)
	if err != nil {
		return err
	}

	if source.Currency != destination.Currency {
		return ErrCurrencyMismatch
	}
	if in.Amount <= 0 {
		return account.ErrInvalidAmount
	}
	if in.Amount > source.Amount {
		return account.ErrInsufficientFunds
	}

	if err := s.accounts.Transfer(ctx, source.ID, destination.ID, in.Amount); err != nil {
		return err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindTransferReceived,
			Destination: strconv.FormatInt(in.ToUserID, 10),
			Body:        fmt.Sprintf("You received %d %s from account %d", in.Amount, source.Currency, source.ID),
		})
	}

	return nil
}
