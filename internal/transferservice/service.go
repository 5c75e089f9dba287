// Package transferservice manages business logic layer of transfers.
package transferservice

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-nick/demo-bank/internal/domain"
	"github.com/go-nick/demo-bank/internal/summaryservice"
)

// Repo provides data access layer interface needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Repo interface {
	Get(ctx context.Context, username string) (domain.Account, error)
	TransferTx(ctx context.Context, arg domain.TransferTxParams) (domain.TransferTxResult, error)
}

// Service facilitates transfer service layer logic.
type Service struct {
	repo Repo
	now  func() time.Time
}

// New return transfer service struct to manage transfer bussines logic.
func New(r Repo) *Service {
	return &Service{
		repo: r,
		now:  time.Now,
	}
}

func (s *Service) validRequest(ctx context.Context, from domain.Account, toUsername string, amount decimal.Decimal) error {
	l := zerolog.Ctx(ctx)

	if !amount.IsPositive() {
		l.Info().Str("amount", amount.String()).Msg("rejected non-positive transfer")
		return domain.ErrNegativeAmount
	}

	if _, err := s.repo.Get(ctx, toUsername); err != nil {
		l.Info().Err(err).Str("to", toUsername).Send()
		return err
	}

	// The balance is derived at call time, never read from a cache.
	if summaryservice.Balance(from).LessThan(amount) {
		return domain.ErrInsufficientBalance
	}

	if toUsername == from.Username {
		return domain.ErrSelfTransfer
	}

	return nil
}

// Transfer checks if transfer request is valid and then executes transfer.
// On success the sender history gains -amount and the receiver history
// gains +amount, each stamped independently at the moment of the call.
func (s *Service) Transfer(ctx context.Context, fromUsername, toUsername string, amount decimal.Decimal) (domain.TransferTxResult, error) {
	from, err := s.repo.Get(ctx, fromUsername)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	if err := s.validRequest(ctx, from, toUsername, amount); err != nil {
		return domain.TransferTxResult{}, err
	}

	arg := domain.TransferTxParams{
		FromUsername: fromUsername,
		ToUsername:   toUsername,
		Amount:       amount,
		FromAt:       s.now(),
		ToAt:         s.now(),
	}

	result, err := s.repo.TransferTx(ctx, arg)
	if err != nil {
		return result, err
	}

	return result, nil
}
