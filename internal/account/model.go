package account

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Currency is a closed set of supported account currencies. Amounts are held
// in the smallest unit of the currency.
type Currency string

const (
	RUB Currency = "RUB"
	USD Currency = "USD"
	EUR Currency = "EUR"
)

// ErrUnknownCurrency indicates a currency outside the supported set.
var ErrUnknownCurrency = errors.New("unknown currency")

// Currencies returns the supported currencies in a stable order.
func Currencies() []Currency {
	return []Currency{RUB, USD, EUR}
}

// ParseCurrency validates a currency code received at an input boundary.
func ParseCurrency(s string) (Currency, error) {
	switch c := Currency(strings.ToUpper(s)); c {
	case RUB, USD, EUR:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, s)
	}
}

// Account holds a balance in one currency for exactly one owning user.
// Currency and owner are fixed at creation; the balance never goes negative.
type Account struct {
	ID        int64
	UserID    int64
	Currency  Currency
	Amount    int64
	CreatedAt time.Time
}

// View is the externally visible projection of an account.
type View struct {
	ID       int64    `json:"id"`
	Currency Currency `json:"currency"`
	Amount   int64    `json:"amount"`
}

// AsView converts the account to its response projection.
func (a Account) AsView() View {
	return View{ID: a.ID, Currency: a.Currency, Amount: a.Amount}
}
