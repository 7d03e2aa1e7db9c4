package handlers

import (
	"errors"
	"io"
	"net/http"

	"topreparateurs/internal/usecase"
	"topreparateurs/internal/usecase/interfaces"
	"topreparateurs/pkg"
	"topreparateurs/pkg/logger"

	"github.com/gin-gonic/gin"
)

const maxWebhookBytes = 64 << 10

var errInvalidSignature = pkg.NewDomainErrorSimple("INVALID_SIGNATURE", "Invalid webhook signature", http.StatusBadRequest)

// EventParser verifies a signed processor notification.
// ok is false when the event is authentic but carries no payment update.
type EventParser interface {
	Parse(payload []byte, signature string) (evt interfaces.ProcessorEvent, ok bool, err error)
}

// WebhookHandler applies Stripe PaymentIntent notifications to local payments.
type WebhookHandler struct {
	parser EventParser
	quotes usecase.IQuoteUseCase
}

func NewWebhookHandler(parser EventParser, quotes usecase.IQuoteUseCase) *WebhookHandler {
	return &WebhookHandler{parser: parser, quotes: quotes}
}

func (h *WebhookHandler) Stripe(c *gin.Context) {
	ctx := c.Request.Context()
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBytes))
	if err != nil {
		abortInvalidPayload(c, "[webhook][handler] stripe", err)
		return
	}

	evt, ok, err := h.parser.Parse(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		logger.Warn(ctx, "[webhook][handler] stripe event rejected", "err", err)
		c.AbortWithStatusJSON(errInvalidSignature.HTTPStatus, errInvalidSignature.ToHTTPError())
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	p, err := h.quotes.ReconcilePayment(ctx, evt)
	switch {
	case errors.Is(err, usecase.ErrPaymentNotFound):
		// not one of ours (or created by another environment sharing the account)
		logger.Warn(ctx, "[webhook][handler] stripe event for unknown payment", "provider_payment_id", evt.ProviderPaymentID)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	case err != nil:
		abortWithError(c, "[webhook][handler] stripe", err)
		return
	}
	logger.Info(ctx, "[webhook][handler] stripe event applied", "event_id", evt.EventID, "payment_id", p.ID, "status", p.Status)
	c.JSON(http.StatusOK, gin.H{"received": true})
}
