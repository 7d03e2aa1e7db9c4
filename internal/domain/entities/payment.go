package entities

import (
	"encoding/json"
	"time"
)

// PaymentStatus is the local view of a processor payment.
//
// Status only moves forward along pending -> authorized -> captured -> succeeded.
// failed and voided close a payment before capture, refunded closes it after.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusAuthorized PaymentStatus = "authorized"
	PaymentStatusCaptured   PaymentStatus = "captured"
	PaymentStatusSucceeded  PaymentStatus = "succeeded"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusVoided     PaymentStatus = "voided"
	PaymentStatusRefunded   PaymentStatus = "refunded"
)

var paymentAdvances = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:    {PaymentStatusAuthorized, PaymentStatusFailed, PaymentStatusVoided},
	PaymentStatusAuthorized: {PaymentStatusCaptured, PaymentStatusFailed, PaymentStatusVoided},
	PaymentStatusCaptured:   {PaymentStatusSucceeded, PaymentStatusRefunded},
	PaymentStatusSucceeded:  {PaymentStatusRefunded},
}

// CanAdvancePayment reports whether from -> to is a forward move.
func CanAdvancePayment(from, to PaymentStatus) bool {
	for _, s := range paymentAdvances[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s PaymentStatus) Settled() bool {
	return s == PaymentStatusCaptured || s == PaymentStatusSucceeded
}

func (s PaymentStatus) Closed() bool {
	return s == PaymentStatusFailed || s == PaymentStatusVoided || s == PaymentStatusRefunded
}

// Payment is one authorization/capture/release cycle tied to a single quote.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (quote_id-index): quote_id
//   - GSI2 (provider_payment_id-index): provider_payment_id
//
// AmountCents and CommissionCents are fixed when the payment is created.
// ProviderPayloadRaw keeps the last processor response for traceability.
type Payment struct {
	ID                string        `json:"id"`
	QuoteID           string        `json:"quote_id"`
	Provider          string        `json:"provider"`
	ProviderPaymentID string        `json:"provider_payment_id,omitempty"`
	ClientSecret      string        `json:"-"`
	AmountCents       int64         `json:"amount_cents"`
	CommissionCents   int64         `json:"commission_cents"`
	Currency          string        `json:"currency"`
	PayerRef          string        `json:"payer_ref"`
	PayeeRef          string        `json:"payee_ref,omitempty"`
	Status            PaymentStatus `json:"status"`
	Hold              bool          `json:"hold"`
	TransferID        string        `json:"transfer_id,omitempty"`
	FailureReason     string        `json:"failure_reason,omitempty"`
	Version           int64         `json:"version"`

	// Operation names the processor call in flight ("capture", "release", ...).
	// It is a lease: other callers back off until it is cleared or expires.
	Operation          string     `json:"operation,omitempty"`
	OperationStartedAt *time.Time `json:"operation_started_at,omitempty"`

	ProviderPayloadRaw json.RawMessage `json:"provider_payload_raw,omitempty"`

	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	AuthorizedAt *time.Time `json:"authorized_at,omitempty"`
	CapturedAt   *time.Time `json:"captured_at,omitempty"`
	ReleasedAt   *time.Time `json:"released_at,omitempty"`
	VoidedAt     *time.Time `json:"voided_at,omitempty"`
	RefundedAt   *time.Time `json:"refunded_at,omitempty"`
}

// Busy reports whether another caller holds the operation lease at now.
func (p Payment) Busy(now time.Time, lease time.Duration) bool {
	return p.Operation != "" && p.OperationStartedAt != nil && now.Sub(*p.OperationStartedAt) < lease
}

// PayoutCents is what the repairer receives on release.
func (p Payment) PayoutCents() int64 {
	return p.AmountCents - p.CommissionCents
}

func (p *Payment) Stamp(status PaymentStatus, at time.Time) {
	t := at
	switch status {
	case PaymentStatusAuthorized:
		p.AuthorizedAt = &t
	case PaymentStatusCaptured:
		p.CapturedAt = &t
	case PaymentStatusSucceeded:
		p.ReleasedAt = &t
	case PaymentStatusVoided:
		p.VoidedAt = &t
	case PaymentStatusRefunded:
		p.RefundedAt = &t
	}
	p.Status = status
	p.Hold = status == PaymentStatusAuthorized || status == PaymentStatusCaptured
	p.UpdatedAt = at
}
