package handlers

import (
	"errors"
	"net/http"

	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase"
	"topreparateurs/pkg"
	"topreparateurs/pkg/logger"

	"github.com/gin-gonic/gin"
)

var errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)

// mapError converts use case errors into the HTTP error envelope. Specific
// errors are matched first, then their kind.
func mapError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		return pkg.NewDomainError("UNAUTHENTICATED", "Authentication required", err, http.StatusUnauthorized)
	case errors.Is(err, entities.ErrAuthorization):
		return pkg.NewDomainError("FORBIDDEN", "Caller is not allowed to perform this action", err, http.StatusForbidden)

	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainError("QUOTE_NOT_FOUND", "Quote not found", err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainError("PAYMENT_NOT_FOUND", "Payment not found", err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrDisputeNotFound):
		return pkg.NewDomainError("DISPUTE_NOT_FOUND", "Dispute not found", err, http.StatusNotFound)
	case errors.Is(err, entities.ErrNotFound):
		return pkg.NewDomainError("NOT_FOUND", "Resource not found", err, http.StatusNotFound)

	case errors.Is(err, usecase.ErrPaymentBusy):
		return pkg.NewDomainError("PAYMENT_BUSY", "A payment operation is already in progress", err, http.StatusConflict)
	case errors.Is(err, usecase.ErrQuoteBusy):
		return pkg.NewDomainError("QUOTE_BUSY", "Another operation on this quote is in progress", err, http.StatusConflict)
	case errors.Is(err, entities.ErrVersionConflict):
		return pkg.NewDomainError("CONCURRENT_UPDATE", "The resource was modified concurrently, retry", err, http.StatusConflict)
	case errors.Is(err, entities.ErrConflict):
		return pkg.NewDomainError("CONFLICT", "Conflicting request", err, http.StatusConflict)

	case errors.Is(err, entities.ErrValidation):
		return pkg.NewDomainError("VALIDATION_ERROR", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, entities.ErrPrecondition):
		return pkg.NewDomainError("PRECONDITION_FAILED", err.Error(), err, http.StatusBadRequest)

	case errors.Is(err, usecase.ErrPaymentDeclined):
		return pkg.NewDomainError("PAYMENT_DECLINED", "Payment declined", err, http.StatusPaymentRequired)
	case errors.Is(err, entities.ErrPayment):
		return pkg.NewDomainError("PAYMENT_PROCESSOR_ERROR", "Payment processor error", err, http.StatusBadGateway)

	case errors.Is(err, usecase.ErrPaymentProcessorNotConfigured):
		return pkg.NewDomainError("PAYMENT_PROCESSOR_NOT_CONFIGURED", "Payment processor not configured", err, http.StatusInternalServerError)
	case errors.Is(err, usecase.ErrEvidenceStorageNotConfigured):
		return pkg.NewDomainError("EVIDENCE_STORAGE_NOT_CONFIGURED", "Evidence storage not configured", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

// abortWithError writes the mapped error and records the cause for the request logger.
func abortWithError(c *gin.Context, scope string, err error) {
	appErr := mapError(err)
	_ = c.Error(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), scope+" failed", "code", appErr.Code, "err", err)
	} else {
		logger.Warn(c.Request.Context(), scope+" rejected", "code", appErr.Code, "err", err)
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func abortInvalidPayload(c *gin.Context, scope string, err error) {
	logger.Warn(c.Request.Context(), scope+" invalid payload", "err", err)
	c.AbortWithStatusJSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
}
