package account

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound indicates the account id does not resolve, or resolves
	// outside the requested owner's scope.
	ErrNotFound = errors.New("account not found")

	// ErrInvalidAmount indicates a non-positive operation amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds indicates a debit exceeding the current balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Repository persists accounts. Deposit, Withdraw and Transfer mutate
// balances under row-level serialization so the non-negative invariant holds
// for concurrent callers, and Transfer applies its debit and credit
// atomically.
type Repository interface {
	Create(ctx context.Context, acc Account) (Account, error)
	Get(ctx context.Context, id int64) (Account, error)
	FindByUser(ctx context.Context, userID, accountID int64) (Account, error)
	Deposit(ctx context.Context, id, amount int64) (Account, error)
	Withdraw(ctx context.Context, id, amount int64) (Account, error)
	Transfer(ctx context.Context, fromID, toID, amount int64) error
}

// PostgresRepository stores accounts in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an account record and returns it with the assigned identifier.
func (r *PostgresRepository) Create(ctx context.Context, acc Account) (Account, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO accounts (user_id, currency, amount, created_at)
        VALUES ($1, $2, $3, $4) RETURNING id`, acc.UserID, string(acc.Currency), acc.Amount, acc.CreatedAt.UTC())
	if err := row.Scan(&acc.ID); err != nil {
		return Account{}, err
	}
	return acc, nil
}

// Get fetches an account by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (Account, error) {
	row := r.db.QueryRow(ctx, `SELECT id, user_id, currency, amount, created_at
        FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

// FindByUser fetches an account scoped to its owner. An existing account
// owned by someone else is reported as not found.
func (r *PostgresRepository) FindByUser(ctx context.Context, userID, accountID int64) (Account, error) {
	row := r.db.QueryRow(ctx, `SELECT id, user_id, currency, amount, created_at
        FROM accounts WHERE id = $1 AND user_id = $2`, accountID, userID)
	return scanAccount(row)
}

// Deposit credits the account and returns the updated record. The single
// UPDATE serializes concurrent credits on the row.
func (r *PostgresRepository) Deposit(ctx context.Context, id, amount int64) (Account, error) {
	row := r.db.QueryRow(ctx, `UPDATE accounts SET amount = amount + $1 WHERE id = $2
        RETURNING id, user_id, currency, amount, created_at`, amount, id)
	return scanAccount(row)
}

// Withdraw debits the account, failing with ErrInsufficientFunds when the
// balance cannot cover the amount. The row is locked for the duration of the
// check-and-debit.
func (r *PostgresRepository) Withdraw(ctx context.Context, id, amount int64) (Account, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Account{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	acc, err := lockAccount(ctx, tx, id)
	if err != nil {
		return Account{}, err
	}
	if acc.Amount < amount {
		return Account{}, ErrInsufficientFunds
	}

	row := tx.QueryRow(ctx, `UPDATE accounts SET amount = amount - $1 WHERE id = $2
        RETURNING id, user_id, currency, amount, created_at`, amount, id)
	updated, err := scanAccount(row)
	if err != nil {
		return Account{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Account{}, err
	}
	return updated, nil
}

// Transfer debits fromID and credits toID in one transaction; both rows are
// locked in ascending id order to avoid lock cycles between concurrent
// transfers.
func (r *PostgresRepository) Transfer(ctx context.Context, fromID, toID, amount int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	first, second := fromID, toID
	if second < first {
		first, second = second, first
	}
	if _, err := lockAccount(ctx, tx, first); err != nil {
		return err
	}
	if second != first {
		if _, err := lockAccount(ctx, tx, second); err != nil {
			return err
		}
	}

	var fromAmount int64
	if err := tx.QueryRow(ctx, `SELECT amount FROM accounts WHERE id = $1`, fromID).Scan(&fromAmount); err != nil {
		return err
	}
	if fromAmount < amount {
		return ErrInsufficientFunds
	}

	if _, err := tx.Exec(ctx, `UPDATE accounts SET amount = amount - $1 WHERE id = $2`, amount, fromID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `UPDATE accounts SET amount = amount + $1 WHERE id = $2`, amount, toID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func lockAccount(ctx context.Context, tx pgx.Tx, id int64) (Account, error) {
	row := tx.QueryRow(ctx, `SELECT id, user_id, currency, amount, created_at
        FROM accounts WHERE id = $1 FOR UPDATE`, id)
	return scanAccount(row)
}

func scanAccount(row pgx.Row) (Account, error) {
	var (
		acc       Account
		currency  string
		createdAt time.Time
	)
	if err := row.Scan(&acc.ID, &acc.UserID, &currency, &acc.Amount, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	parsed, err := ParseCurrency(currency)
	if err != nil {
		return Account{}, err
	}
	acc.Currency = parsed
	acc.CreatedAt = createdAt.UTC()
	return acc, nil
}
