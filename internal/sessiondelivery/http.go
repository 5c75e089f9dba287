// Package sessiondelivery manages delivery layer of sessions.
package sessiondelivery

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-nick/demo-bank/internal/domain"
	"github.com/go-nick/demo-bank/internal/sessionservice"
	"github.com/go-nick/demo-bank/pkg/errorspkg"
	"github.com/go-nick/demo-bank/pkg/moneyfmt"
	"github.com/go-nick/demo-bank/pkg/web"
)

// Service provides service layer interface needed by session delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package sessiondelivery
type Service interface {
	Login(ctx context.Context, username string, pin int32) (sessionservice.LoginResult, error)
}

// Handler facilitates session delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns session handler.
func NewHandler(s Service) Handler {
	return Handler{service: s}
}

type loginRequest struct {
	Username string `json:"username" binding:"required,alphanum"`
	PIN      int32  `json:"pin" binding:"required,min=1000,max=9999"`
}

type loginData struct {
	Welcome  string `json:"welcome"`
	Now      string `json:"now"`
	Username string `json:"username"`
	Owner    string `json:"owner"`
	Currency string `json:"currency"`
	Locale   string `json:"locale"`
}

// Login handles http request to authenticate with username and pin.
func (h *Handler) Login(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req loginRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	result, err := h.service.Login(ctx, req.Username, req.PIN)
	if err != nil {
		if errors.Is(err, domain.ErrWrongPin) {
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	account := result.Account

	res := web.Response{
		AccessToken:          result.AccessToken,
		AccessTokenExpiresAt: result.AccessTokenExpiresAt.Format(time.RFC3339),
		Data: loginData{
			Welcome:  "Welcome back, " + firstName(account.Owner),
			Now:      moneyfmt.CurrentDate(time.Now(), account.Locale),
			Username: account.Username,
			Owner:    account.Owner,
			Currency: account.Currency,
			Locale:   account.Locale,
		},
	}

	gctx.JSON(http.StatusOK, res)
}

func firstName(owner string) string {
	fields := strings.Fields(owner)
	if len(fields) == 0 {
		return owner
	}

	return fields[0]
}
