// Package loanservice manages business logic layer of loan requests.
//
// An accepted loan is not applied synchronously: the caller receives a
// ticket immediately and the movement lands after a fixed delay. Timer
// wiring lives behind the Scheduler interface so tests drive the deferred
// apply by hand.
package loanservice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-nick/demo-bank/internal/domain"
)

// tenPercent is the eligibility threshold factor: some prior movement must
// cover a tenth of the requested amount.
var tenPercent = decimal.RequireFromString("0.1")

// Repo provides data access layer interface needed by loan service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package loanservice
type Repo interface {
	Get(ctx context.Context, username string) (domain.Account, error)
	AppendMovement(ctx context.Context, username string, amount decimal.Decimal, at time.Time) (domain.Account, error)
}

// Scheduler runs a function once after the given delay.
type Scheduler interface {
	Schedule(delay time.Duration, fn func())
}

type timerScheduler struct{}

func (timerScheduler) Schedule(delay time.Duration, fn func()) {
	time.AfterFunc(delay, fn)
}

// Service facilitates loan service layer logic.
type Service struct {
	repo      Repo
	scheduler Scheduler
	delay     time.Duration
	now       func() time.Time
}

// New returns loan service struct with the real timer scheduler.
func New(r Repo, delay time.Duration) *Service {
	return &Service{
		repo:      r,
		scheduler: timerScheduler{},
		delay:     delay,
		now:       time.Now,
	}
}

// NewWithScheduler returns loan service struct with a caller supplied
// scheduler and clock.
func NewWithScheduler(r Repo, delay time.Duration, scheduler Scheduler, now func() time.Time) *Service {
	return &Service{
		repo:      r,
		scheduler: scheduler,
		delay:     delay,
		now:       now,
	}
}

// RequestLoan checks eligibility and, if the request passes, schedules the
// disbursement movement to land after the configured delay. The returned
// ticket's Done channel is closed once the movement has been applied;
// there is no way to cancel an accepted loan.
//
// The requested amount is floored to whole units first. A request is
// eligible when the floored amount is positive and any single movement in
// the history, deposits and withdrawals alike, covers 10% of it.
func (s *Service) RequestLoan(ctx context.Context, username string, amount decimal.Decimal) (*domain.LoanTicket, error) {
	l := zerolog.Ctx(ctx)

	account, err := s.repo.Get(ctx, username)
	if err != nil {
		return nil, err
	}

	amount = amount.Floor()

	if !amount.IsPositive() || !anyMovementCovers(account, amount.Mul(tenPercent)) {
		l.Info().Str("username", username).Str("amount", amount.String()).Msg("rejected loan request")
		return nil, domain.ErrLoanIneligible
	}

	now := s.now()
	done := make(chan struct{})

	ticket := &domain.LoanTicket{
		ID:         uuid.New(),
		Username:   username,
		Amount:     amount,
		AcceptedAt: now,
		ApplyAt:    now.Add(s.delay),
		Done:       done,
	}

	logger := l.With().Stringer("loan_id", ticket.ID).Logger()

	s.scheduler.Schedule(s.delay, func() {
		defer close(done)

		// The request context is long gone by the time the loan lands.
		if _, err := s.repo.AppendMovement(context.Background(), username, amount, s.now()); err != nil {
			logger.Error().Err(err).Msg("cannot apply loan movement")
			return
		}

		logger.Info().Msg("loan movement applied")
	})

	return ticket, nil
}

func anyMovementCovers(account domain.Account, threshold decimal.Decimal) bool {
	for _, m := range account.Movements {
		if m.GreaterThanOrEqual(threshold) {
			return true
		}
	}

	return false
}
