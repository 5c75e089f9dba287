package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrLoanIneligible indicates that the loan request fails the eligibility
// heuristic (non-positive amount or no movement covering 10% of it).
var ErrLoanIneligible = errors.New("loan request ineligible")

// LoanTicket is the acknowledgement of an accepted loan request. The loan
// movement itself lands asynchronously at ApplyAt; Done is closed once it
// has been applied. There is no cancel handle.
type LoanTicket struct {
	ID         uuid.UUID       `json:"id"`
	Username   string          `json:"username"`
	Amount     decimal.Decimal `json:"amount"`
	AcceptedAt time.Time       `json:"accepted_at"`
	ApplyAt    time.Time       `json:"apply_at"`
	Done       <-chan struct{} `json:"-"`
}
