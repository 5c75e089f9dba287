// Package accountservice manages business logic layer of the account
// registry.
package accountservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-nick/demo-bank/internal/domain"
	"github.com/go-nick/demo-bank/pkg/currencypkg"
)

// Repo provides data access layer interface needed by account service layer.
type Repo interface {
	Insert(ctx context.Context, acc domain.Account) error
	Get(ctx context.Context, username string) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Delete(ctx context.Context, username string) error
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
	now  func() time.Time
}

// New returns account service struct to manage account bussines logic.
func New(r Repo) *Service {
	return &Service{
		repo: r,
		now:  time.Now,
	}
}

// UsernameFromOwner derives the stable account identifier from the owner
// name: the lowercase initial of every space separated token, so
// "Jonas Schmedtmann" becomes "js".
func UsernameFromOwner(owner string) string {
	var sb strings.Builder

	for _, token := range strings.Fields(strings.ToLower(owner)) {
		r := []rune(token)
		sb.WriteRune(r[0])
	}

	return sb.String()
}

// Register derives usernames for all seeds and inserts the accounts. It
// fails with domain.ErrDuplicateUsername if two owners derive the same
// username and with an error if a seed carries an unsupported currency or
// mismatched movement histories.
func (s *Service) Register(ctx context.Context, seeds []domain.AccountSeed) error {
	l := zerolog.Ctx(ctx)

	for _, seed := range seeds {
		if len(seed.Movements) != len(seed.MovementDates) {
			return fmt.Errorf("account %q: %d movements but %d dates", seed.Owner, len(seed.Movements), len(seed.MovementDates))
		}

		if !currencypkg.IsSupportedCurrency(seed.Currency) {
			return fmt.Errorf("account %q: unsupported currency %q", seed.Owner, seed.Currency)
		}

		acc := domain.Account{
			Owner:         seed.Owner,
			Username:      UsernameFromOwner(seed.Owner),
			PIN:           seed.PIN,
			Movements:     seed.Movements,
			MovementDates: seed.MovementDates,
			InterestRate:  seed.InterestRate,
			Currency:      seed.Currency,
			Locale:        seed.Locale,
			CreatedAt:     s.now(),
		}

		if err := s.repo.Insert(ctx, acc); err != nil {
			l.Error().Err(err).Str("owner", seed.Owner).Send()
			return err
		}
	}

	return nil
}

// Get returns the account with the given username.
func (s *Service) Get(ctx context.Context, username string) (domain.Account, error) {
	account, err := s.repo.Get(ctx, username)
	if err != nil {
		return account, err
	}

	return account, nil
}

// List returns all registered accounts.
func (s *Service) List(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

// Authenticate returns the account only if it exists and the pin matches
// exactly. Unknown usernames and wrong pins return the same error so the
// caller learns nothing about which accounts exist.
func (s *Service) Authenticate(ctx context.Context, username string, pin int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	account, err := s.repo.Get(ctx, username)
	if err != nil {
		l.Warn().Err(err).Send()
		return domain.Account{}, domain.ErrWrongPin
	}

	if account.PIN != pin {
		l.Warn().Str("username", username).Msg("pin mismatch")
		return domain.Account{}, domain.ErrWrongPin
	}

	return account, nil
}

// Close removes the account from the registry. The confirmation username
// and pin must both match the account being closed.
func (s *Service) Close(ctx context.Context, username, confirmUsername string, confirmPin int32) error {
	l := zerolog.Ctx(ctx)

	if confirmUsername != username {
		return domain.ErrCloseConfirmation
	}

	account, err := s.repo.Get(ctx, username)
	if err != nil {
		return err
	}

	if account.PIN != confirmPin {
		l.Warn().Str("username", username).Msg("close confirmation pin mismatch")
		return domain.ErrCloseConfirmation
	}

	return s.repo.Delete(ctx, username)
}
