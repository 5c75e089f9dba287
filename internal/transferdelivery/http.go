// Package transferdelivery manages delivery layer of transfers.
package transferdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-nick/demo-bank/internal/domain"
	"github.com/go-nick/demo-bank/internal/middleware"
	"github.com/go-nick/demo-bank/internal/summaryservice"
	"github.com/go-nick/demo-bank/pkg/errorspkg"
	"github.com/go-nick/demo-bank/pkg/moneyfmt"
	"github.com/go-nick/demo-bank/pkg/tokenpkg"
	"github.com/go-nick/demo-bank/pkg/web"
)

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, fromUsername, toUsername string, amount decimal.Decimal) (domain.TransferTxResult, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transfer handler.
func NewHandler(s Service) Handler {
	return Handler{service: s}
}

type createRequest struct {
	ToUsername string `json:"to_username" binding:"required,alphanum"`
	Amount     string `json:"amount" binding:"required"`
}

type transferData struct {
	FromUsername string `json:"from_username"`
	ToUsername   string `json:"to_username"`
	Amount       string `json:"amount"`
	Balance      string `json:"balance"`
}

type response struct {
	Data transferData `json:"data,omitempty"`
}

// Create handles http request to transfer money to another account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req createRequest
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

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	result, err := h.service.Transfer(ctx, authPayload.Username, req.ToUsername, amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case errors.Is(err, domain.ErrNegativeAmount),
			errors.Is(err, domain.ErrSelfTransfer),
			errors.Is(err, domain.ErrInsufficientBalance):
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	from := result.FromAccount

	balance, err := moneyfmt.Amount(summaryservice.Balance(from), from.Locale, from.Currency)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: transferData{
			FromUsername: from.Username,
			ToUsername:   result.ToAccount.Username,
			Amount:       result.ToMovement.Amount.String(),
			Balance:      balance,
		},
	}

	gctx.JSON(http.StatusOK, res)
}
