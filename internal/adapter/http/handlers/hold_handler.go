package handlers

import (
	"net/http"
	"time"

	request "topreparateurs/internal/adapter/http/dto/request"
	response "topreparateurs/internal/adapter/http/dto/response"
	"topreparateurs/internal/usecase"
	"topreparateurs/pkg/logger"

	"github.com/gin-gonic/gin"
)

// HoldHandler lets an admin trigger the release sweep on demand.
type HoldHandler struct {
	usecase usecase.IHoldUseCase
	now     func() time.Time
}

func NewHoldHandler(uc usecase.IHoldUseCase) *HoldHandler {
	return &HoldHandler{usecase: uc, now: time.Now}
}

func (h *HoldHandler) Sweep(c *gin.Context) {
	var payload request.SweepRequest
	if err := bindOptionalJSON(c, &payload); err != nil {
		abortInvalidPayload(c, "[hold][handler] sweep", err)
		return
	}

	res, err := h.usecase.ReleaseDue(c.Request.Context(), h.now().UTC(), payload.Limit)
	if err != nil {
		abortWithError(c, "[hold][handler] sweep", err)
		return
	}
	logger.Info(c.Request.Context(), "[hold][handler] sweep done", "examined", res.Examined, "released", res.Released,
		"skipped", res.Skipped, "failed", res.Failed)
	c.JSON(http.StatusOK, response.FromSweepResult(res))
}
