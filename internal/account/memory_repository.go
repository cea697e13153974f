package account

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu       sync.RWMutex
	nextID   int64
	accounts map[int64]Account
}

// NewMemoryRepository builds an in-memory account store for development and
// testing. The single mutex gives it the same serialization guarantees the
// Postgres implementation gets from row locks.
func NewMemoryRepository() Repository {
	return &memoryRepository{nextID: 1, accounts: make(map[int64]Account)}
}

func (r *memoryRepository) Create(_ context.Context, acc Account) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc.ID = r.nextID
	r.nextID++
	r.accounts[acc.ID] = acc
	return acc, nil
}

func (r *memoryRepository) Get(_ context.Context, id int64) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acc, ok := r.accounts[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	return acc, nil
}

func (r *memoryRepository) FindByUser(_ context.Context, userID, accountID int64) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acc, ok := r.accounts[accountID]
	if !ok || acc.UserID != userID {
		return Account{}, ErrNotFound
	}
	return acc, nil
}

func (r *memoryRepository) Deposit(_ context.Context, id, amount int64) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc, ok := r.accounts[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	acc.Amount += amount
	r.accounts[id] = acc
	return acc, nil
}

func (r *memoryRepository) Withdraw(_ context.Context, id, amount int64) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acc, ok := r.accounts[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	if acc.Amount < amount {
		return Account{}, ErrInsufficientFunds
	}
	acc.Amount -= amount
	r.accounts[id] = acc
	return acc, nil
}

func (r *memoryRepository) Transfer(_ context.Context, fromID, toID, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	from, ok := r.accounts[fromID]
	if !ok {
		return ErrNotFound
	}
	to, ok := r.accounts[toID]
	if !ok {
		return ErrNotFound
	}
	if from.Amount < amount {
		return ErrInsufficientFunds
	}
	if fromID == toID {
		return nil
	}
	from.Amount -= amount
	to.Amount += amount
	r.accounts[fromID] = from
	r.accounts[toID] = to
	return nil
}
