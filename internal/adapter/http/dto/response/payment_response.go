package response

import (
	"time"

	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase"
)

type PaymentResponse struct {
	ID                string     `json:"id"`
	QuoteID           string     `json:"quote_id"`
	Provider          string     `json:"provider"`
	ProviderPaymentID string     `json:"provider_payment_id,omitempty"`
	AmountCents       int64      `json:"amount_cents"`
	CommissionCents   int64      `json:"commission_cents"`
	PayoutCents       int64      `json:"payout_cents"`
	Currency          string     `json:"currency"`
	Status            string     `json:"status"`
	Hold              bool       `json:"hold"`
	TransferID        string     `json:"transfer_id,omitempty"`
	FailureReason     string     `json:"failure_reason,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	AuthorizedAt      *time.Time `json:"authorized_at,omitempty"`
	CapturedAt        *time.Time `json:"captured_at,omitempty"`
	ReleasedAt        *time.Time `json:"released_at,omitempty"`
	VoidedAt          *time.Time `json:"voided_at,omitempty"`
	RefundedAt        *time.Time `json:"refunded_at,omitempty"`
}

// FromPayment never exposes the client secret or the raw processor payload.
func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                p.ID,
		QuoteID:           p.QuoteID,
		Provider:          p.Provider,
		ProviderPaymentID: p.ProviderPaymentID,
		AmountCents:       p.AmountCents,
		CommissionCents:   p.CommissionCents,
		PayoutCents:       p.PayoutCents(),
		Currency:          p.Currency,
		Status:            string(p.Status),
		Hold:              p.Hold,
		TransferID:        p.TransferID,
		FailureReason:     p.FailureReason,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
		AuthorizedAt:      p.AuthorizedAt,
		CapturedAt:        p.CapturedAt,
		ReleasedAt:        p.ReleasedAt,
		VoidedAt:          p.VoidedAt,
		RefundedAt:        p.RefundedAt,
	}
}

func FromPayments(ps []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromPayment(p))
	}
	return out
}

type SweepResponse struct {
	Examined int      `json:"examined"`
	Released int      `json:"released"`
	Skipped  int      `json:"skipped"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}

func FromSweepResult(r usecase.SweepResult) SweepResponse {
	return SweepResponse(r)
}
