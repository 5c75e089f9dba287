package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount indicates invalid amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount indicates non-positive amount.
	ErrNegativeAmount = errors.New("negative amount")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrSelfTransfer indicates a transfer to the sending account itself.
	ErrSelfTransfer = errors.New("transfer to the same account")
)

// TransferTxParams is the input data for the transfer transaction. The
// timestamps are captured independently by the caller at the moment of the
// logical operation.
type TransferTxParams struct {
	FromUsername string          `json:"from_username"`
	ToUsername   string          `json:"to_username"`
	Amount       decimal.Decimal `json:"amount"`
	FromAt       time.Time       `json:"from_at"`
	ToAt         time.Time       `json:"to_at"`
}

// TransferTxResult is the result of the transfer transaction.
type TransferTxResult struct {
	FromAccount  Account  `json:"from_account"`
	ToAccount    Account  `json:"to_account"`
	FromMovement Movement `json:"from_movement"`
	ToMovement   Movement `json:"to_movement"`
}
