// Package httpserver manages server creation and api routing.
package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-nick/demo-bank/internal/accountdelivery"
	"github.com/go-nick/demo-bank/internal/accountservice"
	"github.com/go-nick/demo-bank/internal/ledgerrepo"
	"github.com/go-nick/demo-bank/internal/loandelivery"
	"github.com/go-nick/demo-bank/internal/loanservice"
	"github.com/go-nick/demo-bank/internal/middleware"
	"github.com/go-nick/demo-bank/internal/seedbank"
	"github.com/go-nick/demo-bank/internal/sessiondelivery"
	"github.com/go-nick/demo-bank/internal/sessionservice"
	"github.com/go-nick/demo-bank/internal/transferdelivery"
	"github.com/go-nick/demo-bank/internal/transferservice"
	"github.com/go-nick/demo-bank/pkg/configpkg"
)

// Server holds the ledger store, handlers router and configuration.
type Server struct {
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes. The
// ledger starts populated with the demo accounts.
func New(logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	repo := ledgerrepo.NewRepoMem()

	accountService := accountservice.New(repo)
	transferService := transferservice.New(repo)
	loanService := loanservice.New(repo, config.LoanDelay)

	sessionService, err := sessionservice.New(accountService, config)
	if err != nil {
		return nil, errors.New("cannot initialize session service")
	}

	if err := accountService.Register(context.Background(), seedbank.Accounts()); err != nil {
		return nil, errors.New("cannot seed demo accounts")
	}

	sessionHandler := sessiondelivery.NewHandler(sessionService)
	accountHandler := accountdelivery.NewHandler(accountService)
	transferHandler := transferdelivery.NewHandler(transferService)
	loanHandler := loandelivery.NewHandler(loanService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/sessions", sessionHandler.Login)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(sessionService.TokenMaker))

	authRoutes.GET("/accounts/summary", accountHandler.Summary)
	authRoutes.DELETE("/accounts", accountHandler.Close)

	authRoutes.POST("/transfers", transferHandler.Create)
	authRoutes.POST("/loans", loanHandler.Create)

	server := &Server{
		Engine: engine,
		Config: config,
	}

	return server, nil
}
