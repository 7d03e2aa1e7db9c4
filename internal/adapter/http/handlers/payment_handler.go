package handlers

import (
	"net/http"

	response "topreparateurs/internal/adapter/http/dto/response"
	"topreparateurs/internal/adapter/http/middleware"
	"topreparateurs/internal/usecase"
	"topreparateurs/pkg/logger"

	"github.com/gin-gonic/gin"
)

// PaymentHandler serves payment reads and the admin payout retry.
type PaymentHandler struct {
	payments usecase.IPaymentUseCase
	quotes   usecase.IQuoteUseCase
	holds    usecase.IHoldUseCase
}

func NewPaymentHandler(payments usecase.IPaymentUseCase, quotes usecase.IQuoteUseCase, holds usecase.IHoldUseCase) *PaymentHandler {
	return &PaymentHandler{payments: payments, quotes: quotes, holds: holds}
}

// GetPayment is visible to the parties of the payment's quote and to admins.
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := h.payments.GetByID(ctx, c.Param("id"))
	if err != nil {
		abortWithError(c, "[payment][handler] get", err)
		return
	}
	if _, err := h.quotes.GetByID(ctx, middleware.ActorFrom(c), p.QuoteID); err != nil {
		abortWithError(c, "[payment][handler] get", err)
		return
	}
	c.JSON(http.StatusOK, response.FromPayment(p))
}

// ReleasePayment retries the payout of a captured payment whose release
// failed. Payments of disputed quotes are refused.
func (h *PaymentHandler) ReleasePayment(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := h.holds.ReleasePayment(ctx, c.Param("id"))
	if err != nil {
		abortWithError(c, "[payment][handler] release", err)
		return
	}
	logger.Info(ctx, "[payment][handler] release success", "payment_id", p.ID, "status", p.Status)
	c.JSON(http.StatusOK, response.FromPayment(p))
}
