package usecase

import (
	"errors"

	"topreparateurs/internal/domain/entities"
)

var (
	ErrQuoteNotFound   = entities.NewError(entities.ErrNotFound, "quote not found")
	ErrPaymentNotFound = entities.NewError(entities.ErrNotFound, "payment not found")
	ErrDisputeNotFound = entities.NewError(entities.ErrNotFound, "dispute not found")

	ErrInvalidQuoteID          = entities.NewError(entities.ErrValidation, "invalid quote id")
	ErrInvalidPaymentID        = entities.NewError(entities.ErrValidation, "invalid payment id")
	ErrInvalidDisputeID        = entities.NewError(entities.ErrValidation, "invalid dispute id")
	ErrInvalidRepairerID       = entities.NewError(entities.ErrValidation, "invalid repairer id")
	ErrInvalidDevice           = entities.NewError(entities.ErrValidation, "device description is required")
	ErrInvalidProblem          = entities.NewError(entities.ErrValidation, "problem description is required")
	ErrInvalidRequestedPrice   = entities.NewError(entities.ErrValidation, "requested price cannot be negative")
	ErrInvalidPrice            = entities.NewError(entities.ErrValidation, "quoted price must be greater than zero")
	ErrInvalidOfferDescription = entities.NewError(entities.ErrValidation, "offer description is required")
	ErrInvalidAmount           = entities.NewError(entities.ErrValidation, "amount must be greater than zero")
	ErrAmountTooLarge          = entities.NewError(entities.ErrValidation, "amount exceeds the 1000000.00 limit")
	ErrInvalidPayer            = entities.NewError(entities.ErrValidation, "payer reference is required")
	ErrInvalidDisputeReason    = entities.NewError(entities.ErrValidation, "dispute reason is required")
	ErrInvalidOutcome          = entities.NewError(entities.ErrValidation, "invalid dispute outcome")
	ErrInvalidEvidence         = entities.NewError(entities.ErrValidation, "invalid evidence file")
	ErrInvalidListFilter       = entities.NewError(entities.ErrValidation, "client_id or repairer_id is required")

	ErrUnauthenticated = entities.NewError(entities.ErrAuthorization, "caller identity is required")
	ErrForbidden       = entities.NewError(entities.ErrAuthorization, "caller is not allowed to perform this action")

	ErrPaymentNotAuthorized   = entities.NewError(entities.ErrPrecondition, "payment is not authorized")
	ErrPaymentNotCaptured     = entities.NewError(entities.ErrPrecondition, "payment is not captured")
	ErrPaymentAlreadyCaptured = entities.NewError(entities.ErrPrecondition, "payment is already captured")
	ErrNoActivePayment        = entities.NewError(entities.ErrPrecondition, "quote has no authorized payment")
	ErrHoldNotHeld            = entities.NewError(entities.ErrPrecondition, "funds are no longer held")
	ErrDisputeNotActive       = entities.NewError(entities.ErrPrecondition, "dispute is not active")
	ErrQuoteDisputed          = entities.NewError(entities.ErrPrecondition, "quote is under dispute")

	ErrPaymentBusy = entities.NewError(entities.ErrConflict, "payment operation already in progress")
	ErrQuoteBusy   = entities.NewError(entities.ErrConflict, "quote operation already in progress")

	ErrPaymentDeclined         = entities.NewError(entities.ErrPayment, "payment declined")
	ErrPaymentProcessorFailure = entities.NewError(entities.ErrPayment, "payment processor failure")

	ErrPaymentProcessorNotConfigured = errors.New("payment processor not configured")
	ErrEvidenceStorageNotConfigured  = errors.New("evidence storage not configured")
)
