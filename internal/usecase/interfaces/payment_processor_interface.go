package interfaces

import (
	"context"
	"encoding/json"

	"topreparateurs/internal/domain/entities"
)

// AuthorizationRequest asks the processor to hold funds without moving them.
type AuthorizationRequest struct {
	PaymentID        string
	QuoteID          string
	AmountCents      int64
	CommissionCents  int64
	Currency         string
	PayerRef         string
	PayeeRef         string
	PaymentMethodRef string
	Description      string
}

// ReleaseRequest transfers captured funds, net of commission, to the payee.
type ReleaseRequest struct {
	PaymentID         string
	ProviderPaymentID string
	PayeeRef          string
	AmountCents       int64
	Currency          string
}

// ProcessorResult is a processor response mapped onto the local payment status.
type ProcessorResult struct {
	ProviderPaymentID string
	ProviderStatus    string
	Status            entities.PaymentStatus
	ClientSecret      string
	TransferID        string
	FailureReason     string
	Raw               json.RawMessage
}

// IPaymentProcessor abstracts external payment providers (Stripe, Mercado Pago).
//
// Implementations return *ProcessorError on failure. Declined marks refusals
// of the payer's payment method, as opposed to processor or network failures.
type IPaymentProcessor interface {
	Name() string
	Authorize(ctx context.Context, req AuthorizationRequest) (ProcessorResult, error)
	Capture(ctx context.Context, providerPaymentID string, amountCents int64) (ProcessorResult, error)
	Release(ctx context.Context, req ReleaseRequest) (ProcessorResult, error)
	Void(ctx context.Context, providerPaymentID string) (ProcessorResult, error)
	Refund(ctx context.Context, providerPaymentID string, amountCents int64) (ProcessorResult, error)
}

// ProcessorError carries processor failure details.
type ProcessorError struct {
	Provider string
	Code     string
	Message  string
	Declined bool
	Err      error
}

func (e *ProcessorError) Error() string {
	msg := e.Provider + ": " + e.Message
	if e.Code != "" {
		msg += " (" + e.Code + ")"
	}
	return msg
}

func (e *ProcessorError) Unwrap() []error {
	if e.Err != nil {
		return []error{entities.ErrPayment, e.Err}
	}
	return []error{entities.ErrPayment}
}

// ProcessorEvent is an asynchronous settlement notification (webhook).
type ProcessorEvent struct {
	Provider          string
	EventID           string
	ProviderPaymentID string
	Status            entities.PaymentStatus
	FailureReason     string
	Raw               json.RawMessage
}
