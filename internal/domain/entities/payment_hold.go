package entities

import "time"

type HoldStatus string

const (
	HoldStatusHeld     HoldStatus = "held"
	HoldStatusReleased HoldStatus = "released"
	HoldStatusRefunded HoldStatus = "refunded"
)

const HoldReasonServiceCompletion = "service_completion"

// PaymentHold tracks captured funds kept by the platform until release.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (payment_id-index): payment_id
//   - GSI2 (status-release_at-index): status + release_at, used by the sweep
type PaymentHold struct {
	ID          string     `json:"id"`
	PaymentID   string     `json:"payment_id"`
	QuoteID     string     `json:"quote_id"`
	AmountCents int64      `json:"amount_cents"`
	Reason      string     `json:"reason"`
	Status      HoldStatus `json:"status"`
	ReleaseAt   time.Time  `json:"release_at"`
	ReleasedAt  *time.Time `json:"released_at,omitempty"`
	Version     int64      `json:"version"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (h PaymentHold) Due(now time.Time) bool {
	return h.Status == HoldStatusHeld && !h.ReleaseAt.After(now)
}
