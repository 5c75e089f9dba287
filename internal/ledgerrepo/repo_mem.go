// Package ledgerrepo manages the in-memory data access layer of the
// account registry.
package ledgerrepo

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/go-nick/demo-bank/internal/domain"
)

// RepoMem is an in-memory account registry. Accounts are indexed by
// username and iterated in insertion order. Every mutation of a single
// account is serialized through that account's lock, so a deferred loan
// landing concurrently with a transfer cannot interleave appends.
type RepoMem struct {
	mu       sync.RWMutex
	order    []string
	accounts map[string]*record
}

type record struct {
	mu  sync.Mutex
	acc domain.Account
}

// NewRepoMem returns an empty registry.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		accounts: make(map[string]*record),
	}
}

// clone copies the account so callers never share the stored slices.
func clone(acc domain.Account) domain.Account {
	out := acc
	out.Movements = append([]decimal.Decimal(nil), acc.Movements...)
	out.MovementDates = append([]time.Time(nil), acc.MovementDates...)

	return out
}

// Insert adds the account to the registry.
func (r *RepoMem) Insert(ctx context.Context, acc domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[acc.Username]; ok {
		return domain.ErrDuplicateUsername
	}

	r.accounts[acc.Username] = &record{acc: clone(acc)}
	r.order = append(r.order, acc.Username)

	return nil
}

// Get returns a snapshot of the account with the given username.
func (r *RepoMem) Get(ctx context.Context, username string) (domain.Account, error) {
	r.mu.RLock()
	rec, ok := r.accounts[username]
	r.mu.RUnlock()

	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	return clone(rec.acc), nil
}

// List returns snapshots of all accounts in insertion order.
func (r *RepoMem) List(ctx context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accounts := make([]domain.Account, 0, len(r.order))

	for _, username := range r.order {
		rec := r.accounts[username]

		rec.mu.Lock()
		accounts = append(accounts, clone(rec.acc))
		rec.mu.Unlock()
	}

	return accounts, nil
}

// Delete removes the account from the registry. The username becomes free
// for future registrations; no tombstone is kept.
func (r *RepoMem) Delete(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[username]; !ok {
		return domain.ErrAccountNotFound
	}

	delete(r.accounts, username)

	for i, u := range r.order {
		if u == username {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}

// AppendMovement appends a signed amount and its timestamp to the account
// history and returns the updated snapshot.
func (r *RepoMem) AppendMovement(ctx context.Context, username string, amount decimal.Decimal, at time.Time) (domain.Account, error) {
	r.mu.RLock()
	rec, ok := r.accounts[username]
	r.mu.RUnlock()

	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	rec.acc.Movements = append(rec.acc.Movements, amount)
	rec.acc.MovementDates = append(rec.acc.MovementDates, at)

	return clone(rec.acc), nil
}

// TransferTx appends the negative movement to the sender and the positive
// movement to the receiver while holding both account locks, so either
// both histories grow by one entry or neither does.
func (r *RepoMem) TransferTx(ctx context.Context, arg domain.TransferTxParams) (domain.TransferTxResult, error) {
	var result domain.TransferTxResult

	if arg.FromUsername == arg.ToUsername {
		return result, domain.ErrSelfTransfer
	}

	r.mu.RLock()
	from, okFrom := r.accounts[arg.FromUsername]
	to, okTo := r.accounts[arg.ToUsername]
	r.mu.RUnlock()

	if !okFrom || !okTo {
		return result, domain.ErrAccountNotFound
	}

	// Lock in username order to avoid deadlock with a reverse transfer.
	first, second := from, to
	if arg.ToUsername < arg.FromUsername {
		first, second = to, from
	}

	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	result.FromMovement = domain.Movement{Amount: arg.Amount.Neg(), Time: arg.FromAt}
	result.ToMovement = domain.Movement{Amount: arg.Amount, Time: arg.ToAt}

	from.acc.Movements = append(from.acc.Movements, result.FromMovement.Amount)
	from.acc.MovementDates = append(from.acc.MovementDates, result.FromMovement.Time)

	to.acc.Movements = append(to.acc.Movements, result.ToMovement.Amount)
	to.acc.MovementDates = append(to.acc.MovementDates, result.ToMovement.Time)

	result.FromAccount = clone(from.acc)
	result.ToAccount = clone(to.acc)

	return result, nil
}
