// Package summaryservice derives display aggregates from an account's
// movement history. Every function is pure and recomputes from scratch;
// histories are small enough that caching would only add invalidation
// bugs.
package summaryservice

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/go-nick/demo-bank/internal/domain"
)

var one = decimal.NewFromInt(1)

// Balance returns the sum of all movements.
func Balance(acc domain.Account) decimal.Decimal {
	balance := decimal.Zero

	for _, m := range acc.Movements {
		balance = balance.Add(m)
	}

	return balance
}

// TotalIncome returns the sum of all positive movements.
func TotalIncome(acc domain.Account) decimal.Decimal {
	income := decimal.Zero

	for _, m := range acc.Movements {
		if m.IsPositive() {
			income = income.Add(m)
		}
	}

	return income
}

// TotalExpense returns the absolute sum of all negative movements.
func TotalExpense(acc domain.Account) decimal.Decimal {
	expense := decimal.Zero

	for _, m := range acc.Movements {
		if m.IsNegative() {
			expense = expense.Add(m)
		}
	}

	return expense.Abs()
}

// InterestEarned returns the interest accrued over all deposits. Each
// deposit contributes deposit*rate/100, but only when that contribution
// reaches at least one whole unit; smaller contributions count as zero.
func InterestEarned(acc domain.Account) decimal.Decimal {
	interest := decimal.Zero

	for _, m := range acc.Movements {
		if !m.IsPositive() {
			continue
		}

		contribution := m.Mul(acc.InterestRate).Div(decimal.NewFromInt(100))
		if contribution.GreaterThanOrEqual(one) {
			interest = interest.Add(contribution)
		}
	}

	return interest
}

// Movements returns the movement history as (amount, timestamp) pairs in
// insertion order.
func Movements(acc domain.Account) []domain.Movement {
	movements := make([]domain.Movement, len(acc.Movements))

	for i, m := range acc.Movements {
		movements[i] = domain.Movement{Amount: m, Time: acc.MovementDates[i]}
	}

	return movements
}

// SortedMovements returns the movement history ordered by amount. The sort
// is stable, so equal amounts keep their insertion order, and it never
// touches the stored history.
func SortedMovements(acc domain.Account, ascending bool) []domain.Movement {
	movements := Movements(acc)

	sort.SliceStable(movements, func(i, j int) bool {
		if ascending {
			return movements[i].Amount.LessThan(movements[j].Amount)
		}

		return movements[i].Amount.GreaterThan(movements[j].Amount)
	})

	return movements
}
