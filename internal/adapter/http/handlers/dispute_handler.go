package handlers

import (
	"net/http"

	request "topreparateurs/internal/adapter/http/dto/request"
	response "topreparateurs/internal/adapter/http/dto/response"
	"topreparateurs/internal/adapter/http/middleware"
	"topreparateurs/internal/usecase"
	"topreparateurs/pkg/logger"

	"github.com/gin-gonic/gin"
)

const evidenceFormField = "file"

type DisputeHandler struct {
	usecase usecase.IDisputeUseCase
}

func NewDisputeHandler(uc usecase.IDisputeUseCase) *DisputeHandler {
	return &DisputeHandler{usecase: uc}
}

// RaiseDispute opens a dispute on the quote in the path.
func (h *DisputeHandler) RaiseDispute(c *gin.Context) {
	var payload request.RaiseDisputeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortInvalidPayload(c, "[dispute][handler] raise", err)
		return
	}

	d, err := h.usecase.Raise(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), payload.Reason)
	if err != nil {
		abortWithError(c, "[dispute][handler] raise", err)
		return
	}
	logger.Info(c.Request.Context(), "[dispute][handler] raise success", "dispute_id", d.ID, "quote_id", d.QuoteID)
	c.JSON(http.StatusCreated, response.FromDispute(d))
}

func (h *DisputeHandler) GetDispute(c *gin.Context) {
	view, err := h.usecase.GetByID(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		abortWithError(c, "[dispute][handler] get", err)
		return
	}
	c.JSON(http.StatusOK, response.FromDisputeView(view))
}

func (h *DisputeHandler) ResolveDispute(c *gin.Context) {
	var payload request.ResolveDisputeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortInvalidPayload(c, "[dispute][handler] resolve", err)
		return
	}

	res, err := h.usecase.Resolve(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), payload.ToInput())
	if err != nil {
		abortWithError(c, "[dispute][handler] resolve", err)
		return
	}
	logger.Info(c.Request.Context(), "[dispute][handler] resolve success", "dispute_id", res.Dispute.ID,
		"status", res.Dispute.Status, "payment_status", res.Payment.Status)
	c.JSON(http.StatusOK, response.FromResolutionResult(res))
}

// AttachEvidence stores one multipart file under the "file" field.
func (h *DisputeHandler) AttachEvidence(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, usecase.MaxEvidenceBytes+1<<20)

	fh, err := c.FormFile(evidenceFormField)
	if err != nil {
		abortInvalidPayload(c, "[dispute][handler] evidence", err)
		return
	}
	f, err := fh.Open()
	if err != nil {
		abortInvalidPayload(c, "[dispute][handler] evidence", err)
		return
	}
	defer f.Close()

	d, err := h.usecase.AttachEvidence(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), usecase.EvidenceFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		abortWithError(c, "[dispute][handler] evidence", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromDispute(d))
}
