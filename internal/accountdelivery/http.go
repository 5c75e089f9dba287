// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

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
	"github.com/go-nick/demo-bank/internal/summaryservice"
	"github.com/go-nick/demo-bank/pkg/errorspkg"
	"github.com/go-nick/demo-bank/pkg/moneyfmt"
	"github.com/go-nick/demo-bank/pkg/tokenpkg"
	"github.com/go-nick/demo-bank/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Get(ctx context.Context, username string) (domain.Account, error)
	Close(ctx context.Context, username, confirmUsername string, confirmPin int32) error
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
	now     func() time.Time
}

// NewHandler returns account handler.
func NewHandler(s Service) Handler {
	return Handler{service: s, now: time.Now}
}

type movementRow struct {
	Type   string `json:"type"`
	Date   string `json:"date"`
	Amount string `json:"amount"`
}

type summaryData struct {
	Owner          string        `json:"owner"`
	Username       string        `json:"username"`
	Balance        string        `json:"balance"`
	TotalIncome    string        `json:"total_income"`
	TotalExpense   string        `json:"total_expense"`
	InterestEarned string        `json:"interest_earned"`
	Movements      []movementRow `json:"movements"`
}

type summaryResponse struct {
	Data summaryData `json:"data,omitempty"`
}

type summaryRequest struct {
	Sort string `form:"sort" binding:"omitempty,oneof=asc desc"`
}

// Summary handles http request to get the display summary of the session
// account: formatted aggregates plus the rendered movement rows.
func (h *Handler) Summary(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req summaryRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
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

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	acc, err := h.service.Get(ctx, authPayload.Username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	var movements []domain.Movement

	switch req.Sort {
	case "asc":
		movements = summaryservice.SortedMovements(acc, true)
	case "desc":
		movements = summaryservice.SortedMovements(acc, false)
	default:
		movements = summaryservice.Movements(acc)
	}

	now := h.now()
	rows := make([]movementRow, len(movements))

	for i, m := range movements {
		amount, err := moneyfmt.Amount(m.Amount, acc.Locale, acc.Currency)
		if err != nil {
			l.Error().Err(err).Send()
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

			return
		}

		kind := "withdrawal"
		if m.Amount.IsPositive() {
			kind = "deposit"
		}

		rows[i] = movementRow{
			Type:   kind,
			Date:   moneyfmt.MovementDate(m.Time, acc.Locale, now),
			Amount: amount,
		}
	}

	data := summaryData{
		Owner:     acc.Owner,
		Username:  acc.Username,
		Movements: rows,
	}

	format := func(v decimal.Decimal) string {
		if err != nil {
			return ""
		}

		var s string
		s, err = moneyfmt.Amount(v, acc.Locale, acc.Currency)

		return s
	}

	data.Balance = format(summaryservice.Balance(acc))
	data.TotalIncome = format(summaryservice.TotalIncome(acc))
	data.TotalExpense = format(summaryservice.TotalExpense(acc))
	data.InterestEarned = format(summaryservice.InterestEarned(acc))

	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, summaryResponse{Data: data})
}

type closeRequest struct {
	Username string `json:"username" binding:"required,alphanum"`
	PIN      int32  `json:"pin" binding:"required,min=1000,max=9999"`
}

// Close handles http request to close the session account. The username
// and pin must be re-entered and match the authenticated account.
func (h *Handler) Close(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req closeRequest
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

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	err := h.service.Close(ctx, authPayload.Username, req.Username, req.PIN)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCloseConfirmation):
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
		case errors.Is(err, domain.ErrAccountNotFound):
			gctx.JSON(http.StatusNotFound, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{})
}
