// Package sessionservice manages the login flow of the session adapter.
// The credential check itself stays inside the account service; this
// layer only turns a successful pin check into a bearer access token.
package sessionservice

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-nick/demo-bank/internal/domain"
	"github.com/go-nick/demo-bank/pkg/configpkg"
	"github.com/go-nick/demo-bank/pkg/errorspkg"
	"github.com/go-nick/demo-bank/pkg/tokenpkg"
)

// AccountService provides the account operations needed by the session layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package sessionservice
type AccountService interface {
	Authenticate(ctx context.Context, username string, pin int32) (domain.Account, error)
}

// LoginResult holds the authenticated account and its session token.
type LoginResult struct {
	Account              domain.Account
	AccessToken          string
	AccessTokenExpiresAt time.Time
}

// Service facilitates session service layer logic.
type Service struct {
	accounts AccountService
	// TokenMaker is exported so the router can wire the auth middleware
	// with the same maker that issued the tokens.
	TokenMaker          tokenpkg.Maker
	accessTokenDuration time.Duration
}

// New returns session service struct to manage session bussines logic.
func New(as AccountService, config configpkg.Config) (*Service, error) {
	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	return &Service{
		accounts:            as,
		TokenMaker:          tokenMaker,
		accessTokenDuration: config.AccessTokenDuration,
	}, nil
}

// Login authenticates the username and pin pair and issues an access token
// for the account.
func (s *Service) Login(ctx context.Context, username string, pin int32) (LoginResult, error) {
	l := zerolog.Ctx(ctx)

	var result LoginResult

	account, err := s.accounts.Authenticate(ctx, username, pin)
	if err != nil {
		return result, err
	}

	accessToken, payload, err := s.TokenMaker.CreateToken(account.Username, s.accessTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	result = LoginResult{
		Account:              account,
		AccessToken:          accessToken,
		AccessTokenExpiresAt: payload.ExpiredAt,
	}

	return result, nil
}
