// Package loandelivery manages delivery layer of loan requests.
package loandelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-nick/demo-bank/internal/domain"
	"github.com/go-nick/demo-bank/internal/middleware"
	"github.com/go-nick/demo-bank/pkg/errorspkg"
	"github.com/go-nick/demo-bank/pkg/tokenpkg"
	"github.com/go-nick/demo-bank/pkg/web"
)

// Service provides service layer interface needed by loan delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package loandelivery
type Service interface {
	RequestLoan(ctx context.Context, username string, amount decimal.Decimal) (*domain.LoanTicket, error)
}

// Handler facilitates loan delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns loan handler.
func NewHandler(s Service) Handler {
	return Handler{service: s}
}

type createRequest struct {
	Amount string `json:"amount" binding:"required"`
}

type loanData struct {
	ID         string    `json:"id"`
	Amount     string    `json:"amount"`
	AcceptedAt time.Time `json:"accepted_at"`
	ApplyAt    time.Time `json:"apply_at"`
}

type response struct {
	Data loanData `json:"data,omitempty"`
}

// Create handles http request to request a loan. Accepted loans are
// acknowledged with 202: the movement lands only after the configured
// delay.
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

	ticket, err := h.service.RequestLoan(ctx, authPayload.Username, amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanIneligible):
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		case errors.Is(err, domain.ErrAccountNotFound):
			gctx.JSON(http.StatusNotFound, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	res := response{
		Data: loanData{
			ID:         ticket.ID.String(),
			Amount:     ticket.Amount.String(),
			AcceptedAt: ticket.AcceptedAt,
			ApplyAt:    ticket.ApplyAt,
		},
	}

	gctx.JSON(http.StatusAccepted, res)
}
