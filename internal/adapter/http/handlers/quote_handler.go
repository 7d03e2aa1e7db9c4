package handlers

import (
	"errors"
	"io"
	"net/http"

	request "topreparateurs/internal/adapter/http/dto/request"
	response "topreparateurs/internal/adapter/http/dto/response"
	"topreparateurs/internal/adapter/http/middleware"
	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase"
	"topreparateurs/pkg/logger"

	"github.com/gin-gonic/gin"
)

// QuoteHandler exposes the quote workflow: creation, offer, acceptance,
// work start, client validation and cancellation.
type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var payload request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortInvalidPayload(c, "[quote][handler] create", err)
		return
	}

	q, err := h.usecase.CreateQuote(c.Request.Context(), middleware.ActorFrom(c), payload.ToInput())
	if err != nil {
		abortWithError(c, "[quote][handler] create", err)
		return
	}
	logger.Info(c.Request.Context(), "[quote][handler] create success", "quote_id", q.ID)
	c.JSON(http.StatusCreated, response.FromQuote(q))
}

func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	var query request.ListQuotesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortInvalidPayload(c, "[quote][handler] list", err)
		return
	}

	quotes, err := h.usecase.List(c.Request.Context(), middleware.ActorFrom(c), query.ToFilter())
	if err != nil {
		abortWithError(c, "[quote][handler] list", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuotes(quotes))
}

func (h *QuoteHandler) GetQuote(c *gin.Context) {
	q, err := h.usecase.GetByID(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		abortWithError(c, "[quote][handler] get", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

func (h *QuoteHandler) GetTimeline(c *gin.Context) {
	events, err := h.usecase.Timeline(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		abortWithError(c, "[quote][handler] timeline", err)
		return
	}
	c.JSON(http.StatusOK, response.FromTimeline(events))
}

func (h *QuoteHandler) ListPayments(c *gin.Context) {
	payments, err := h.usecase.Payments(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		abortWithError(c, "[quote][handler] payments", err)
		return
	}
	c.JSON(http.StatusOK, response.FromPayments(payments))
}

func (h *QuoteHandler) SubmitOffer(c *gin.Context) {
	var payload request.SubmitOfferRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortInvalidPayload(c, "[quote][handler] offer", err)
		return
	}

	q, err := h.usecase.SubmitOffer(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), payload.ToInput())
	if err != nil {
		abortWithError(c, "[quote][handler] offer", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// AcceptQuote authorizes the payment. A pending payment (asynchronous
// confirmation) is answered with 202 and the quote stays quoted.
func (h *QuoteHandler) AcceptQuote(c *gin.Context) {
	var payload request.AcceptQuoteRequest
	if err := bindOptionalJSON(c, &payload); err != nil {
		abortInvalidPayload(c, "[quote][handler] accept", err)
		return
	}

	res, err := h.usecase.AcceptQuote(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), payload.ToInput())
	if err != nil {
		abortWithError(c, "[quote][handler] accept", err)
		return
	}
	logger.Info(c.Request.Context(), "[quote][handler] accept success", "quote_id", res.Quote.ID,
		"payment_id", res.Payment.ID, "status", res.Payment.Status)

	status := http.StatusOK
	if res.Quote.Status != entities.QuoteStatusAccepted {
		status = http.StatusAccepted
	}
	c.JSON(status, response.FromAcceptResult(res))
}

func (h *QuoteHandler) StartWork(c *gin.Context) {
	q, err := h.usecase.StartWork(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		abortWithError(c, "[quote][handler] start", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// ValidateCompletion captures and releases the funds. When the payout has to
// be retried the quote is still completed and released is false.
func (h *QuoteHandler) ValidateCompletion(c *gin.Context) {
	res, err := h.usecase.ValidateCompletion(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		abortWithError(c, "[quote][handler] validate", err)
		return
	}
	if !res.Released {
		logger.Warn(c.Request.Context(), "[quote][handler] validate completed without release", "quote_id", res.Quote.ID,
			"payment_id", res.Payment.ID)
	}
	c.JSON(http.StatusOK, response.FromCompletionResult(res))
}

func (h *QuoteHandler) CancelQuote(c *gin.Context) {
	var payload request.CancelQuoteRequest
	if err := bindOptionalJSON(c, &payload); err != nil {
		abortInvalidPayload(c, "[quote][handler] cancel", err)
		return
	}

	q, err := h.usecase.Cancel(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), payload.Reason)
	if err != nil {
		abortWithError(c, "[quote][handler] cancel", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(q))
}

// bindOptionalJSON accepts an empty body and otherwise requires valid JSON.
func bindOptionalJSON(c *gin.Context, out any) error {
	if err := c.ShouldBindJSON(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
