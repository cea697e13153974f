package user

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/simplebank/simplebank/internal/account"
	"github.com/simplebank/simplebank/internal/auth"
)

func newTestService() (*Service, Repository, account.Repository) {
	users := NewMemoryRepository()
	accounts := account.NewMemoryRepository()
	return NewService(users, accounts), users, accounts
}

func TestCreateByAdminProvisionsDefaultAccounts(t *testing.T) {
	svc, _, accounts := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, auth.AdminIdentity(), "alice", "secretword")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 || created.Username != "alice" {
		t.Fatalf("unexpected user: %+v", created)
	}
	if err := bcrypt.CompareHashAndPassword(created.PasswordHash, []byte("secretword")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}

	seen := make(map[account.Currency]bool)
	for id := int64(1); id <= 3; id++ {
		acc, err := accounts.FindByUser(ctx, created.ID, id)
		if err != nil {
			t.Fatalf("default account %d: %v", id, err)
		}
		if acc.Amount != defaultAccountBalance {
			t.Fatalf("expected opening balance %d, got %d", defaultAccountBalance, acc.Amount)
		}
		seen[acc.Currency] = true
	}
	for _, currency := range account.Currencies() {
		if !seen[currency] {
			t.Fatalf("missing default %s account", currency)
		}
	}
}

func TestCreateAuthorization(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, auth.UserIdentity(1), "bob", "secretword"); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("expected forbidden for regular user, got %v", err)
	}
	if _, err := svc.Create(ctx, auth.Identity{}, "bob", "secretword"); !errors.Is(err, auth.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestCreateDuplicateUsername(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, auth.AdminIdentity(), "alice", "secretword"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(ctx, auth.AdminIdentity(), "alice", "otherword"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected username taken, got %v", err)
	}
}

func TestCreateRejectsBlankInput(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, auth.AdminIdentity(), "", "secretword"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank username, got %v", err)
	}
	if _, err := svc.Create(ctx, auth.AdminIdentity(), "alice", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank password, got %v", err)
	}
}

func TestListVisibility(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	for _, name := range []string{"alice", "bob"} {
		if _, err := svc.Create(ctx, auth.AdminIdentity(), name, "secretword"); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	users, err := svc.List(ctx, auth.UserIdentity(1))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}

	if _, err := svc.List(ctx, auth.AdminIdentity()); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("admin may not enumerate users, got %v", err)
	}
	if _, err := svc.List(ctx, auth.Identity{}); !errors.Is(err, auth.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestProfile(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, auth.AdminIdentity(), "alice", "secretword")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	profile, err := svc.Profile(ctx, auth.UserIdentity(created.ID))
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.Username != "alice" {
		t.Fatalf("expected alice, got %s", profile.Username)
	}

	if _, err := svc.Profile(ctx, auth.AdminIdentity()); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("expected forbidden for admin, got %v", err)
	}
	if _, err := svc.Profile(ctx, auth.Identity{}); !errors.Is(err, auth.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}
