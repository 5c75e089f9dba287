// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateUsername indicates that two owners derive the same username.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrWrongPin indicates a failed login. Unknown usernames return the
	// same value so callers cannot probe which accounts exist.
	ErrWrongPin = errors.New("wrong username or pin")
	// ErrCloseConfirmation indicates that the closure confirmation does not
	// match the account being closed.
	ErrCloseConfirmation = errors.New("closure confirmation mismatch")
)

// Account holds the owner identity, credentials and movement history.
//
// Movements and MovementDates are parallel slices in insertion order;
// len(Movements) == len(MovementDates) always holds. The balance is never
// stored, it is derived from Movements on every read.
type Account struct {
	Owner         string            `json:"owner"`
	Username      string            `json:"username"`
	PIN           int32             `json:"-"`
	Movements     []decimal.Decimal `json:"movements"`
	MovementDates []time.Time       `json:"movement_dates"`
	InterestRate  decimal.Decimal   `json:"interest_rate"`
	Currency      string            `json:"currency"`
	Locale        string            `json:"locale"`
	CreatedAt     time.Time         `json:"created_at"`
}

// AccountSeed is the input data to register an account. The username is
// derived from the owner name at registration time.
type AccountSeed struct {
	Owner         string
	PIN           int32
	InterestRate  decimal.Decimal
	Movements     []decimal.Decimal
	MovementDates []time.Time
	Currency      string
	Locale        string
}

// Movement is a single signed entry of an account history paired with its
// timestamp. Positive amounts are deposits, negative are withdrawals.
type Movement struct {
	Amount decimal.Decimal `json:"amount"`
	Time   time.Time       `json:"time"`
}
