package transfer

import (
	"context"
	"errors"
	"testing"

	"github.com/simplebank/simplebank/internal/account"
	"github.com/simplebank/simplebank/internal/auth"
	"github.com/simplebank/simplebank/internal/notification"
)

type testNotifier struct {
	last notification.Message
}

func (n *testNotifier) Send(_ context.Context, msg notification.Message) error {
	n.last = msg
	return nil
}

func seedAccount(t *testing.T, repo account.Repository, userID, amount int64, currency account.Currency) account.Account {
	t.Helper()
	acc, err := repo.Create(context.Background(), account.Account{UserID: userID, Currency: currency, Amount: amount})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return acc
}

func TestTransferSuccess(t *testing.T) {
	repo := account.NewMemoryRepository()
	notifier := &testNotifier{}
	svc := NewService(repo, notifier)
	ctx := context.Background()

	source := seedAccount(t, repo, 1, 100, account.RUB)
	destination := seedAccount(t, repo, 2, 100, account.RUB)

	err := svc.Transfer(ctx, auth.UserIdentity(1), Input{
		FromAccountID: source.ID,
		ToUserID:      2,
		ToAccountID:   destination.ID,
		Amount:        100,
	})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}

	from, _ := repo.Get(ctx, source.ID)
	to, _ := repo.Get(ctx, destination.ID)
	if from.Amount != 0 || to.Amount != 200 {
		t.Fatalf("unexpected balances after transfer: from=%d to=%d", from.Amount, to.Amount)
	}
	if from.Amount+to.Amount != 200 {
		t.Fatalf("transfer must conserve total balance, got %d", from.Amount+to.Amount)
	}
	if notifier.last.Kind != notification.KindTransferReceived {
		t.Fatalf("expected transfer notification, got %+v", notifier.last)
	}
}

func TestTransferCurrencyMismatch(t *testing.T) {
	repo := account.NewMemoryRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	source := seedAccount(t, repo, 1, 100, account.RUB)
	destination := seedAccount(t, repo, 2, 100, account.EUR)

	err := svc.Transfer(ctx, auth.UserIdentity(1), Input{
		FromAccountID: source.ID,
		ToUserID:      2,
		ToAccountID:   destination.ID,
		Amount:        10,
	})
	if !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("expected currency mismatch, got %v", err)
	}
	if err.Error() != "Account currencies should be same" {
		t.Fatalf("mismatch message is part of the API contract, got %q", err.Error())
	}
}

func TestTransferNotOwner(t *testing.T) {
	repo := account.NewMemoryRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	source := seedAccount(t, repo, 1, 100, account.RUB)
	destination := seedAccount(t, repo, 2, 100, account.RUB)

	in := Input{FromAccountID: source.ID, ToUserID: 2, ToAccountID: destination.ID, Amount: 10}

	if err := svc.Transfer(ctx, auth.UserIdentity(2), in); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("expected forbidden for non-owner, got %v", err)
	}
	if err := svc.Transfer(ctx, auth.AdminIdentity(), in); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("expected forbidden for admin, got %v", err)
	}
}

func TestTransferDestinationScopedToRecipient(t *testing.T) {
	repo := account.NewMemoryRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	source := seedAccount(t, repo, 1, 100, account.RUB)
	destination := seedAccount(t, repo, 2, 100, account.RUB)

	// destination account exists but belongs to user 2, not user 3
	err := svc.Transfer(ctx, auth.UserIdentity(1), Input{
		FromAccountID: source.ID,
		ToUserID:      3,
		ToAccountID:   destination.ID,
		Amount:        10,
	})
	if !errors.Is(err, account.ErrNotFound) {
		t.Fatalf("expected not found for mismatched recipient, got %v", err)
	}
}

func TestTransferAmountValidation(t *testing.T) {
	repo := account.NewMemoryRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	source := seedAccount(t, repo, 1, 100, account.RUB)
	destination := seedAccount(t, repo, 2, 100, account.RUB)

	in := Input{FromAccountID: source.ID, ToUserID: 2, ToAccountID: destination.ID}

	in.Amount = 0
	if err := svc.Transfer(ctx, auth.UserIdentity(1), in); !errors.Is(err, account.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}

	in.Amount = 101
	if err := svc.Transfer(ctx, auth.UserIdentity(1), in); !errors.Is(err, account.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}

	from, _ := repo.Get(ctx, source.ID)
	to, _ := repo.Get(ctx, destination.ID)
	if from.Amount != 100 || to.Amount != 100 {
		t.Fatalf("failed transfer must not move funds: from=%d to=%d", from.Amount, to.Amount)
	}
}

func TestSelfTransferKeepsBalance(t *testing.T) {
	repo := account.NewMemoryRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	source := seedAccount(t, repo, 1, 100, account.RUB)

	err := svc.Transfer(ctx, auth.UserIdentity(1), Input{
		FromAccountID: source.ID,
		ToUserID:      1,
		ToAccountID:   source.ID,
		Amount:        40,
	})
	if err != nil {
		t.Fatalf("self transfer: %v", err)
	}

	got, _ := repo.Get(ctx, source.ID)
	if got.Amount != 100 {
		t.Fatalf("self transfer must be a net no-op, got %d", got.Amount)
	}
}
