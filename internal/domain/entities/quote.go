package entities

import "time"

// QuoteStatus represents the lifecycle of a repair quote.
//
// Domain notes:
//   - pending: submitted by the client, waiting for the repairer's offer
//   - quoted: repairer attached a price and description
//   - accepted: client confirmed and the payment is authorized (funds held)
//   - in_progress: repairer started the work
//   - completed, cancelled: terminal
//   - disputed: terminal until an admin resolution is recorded
type QuoteStatus string

const (
	QuoteStatusPending    QuoteStatus = "pending"
	QuoteStatusQuoted     QuoteStatus = "quoted"
	QuoteStatusAccepted   QuoteStatus = "accepted"
	QuoteStatusInProgress QuoteStatus = "in_progress"
	QuoteStatusCompleted  QuoteStatus = "completed"
	QuoteStatusDisputed   QuoteStatus = "disputed"
	QuoteStatusCancelled  QuoteStatus = "cancelled"
)

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusPending, QuoteStatusQuoted, QuoteStatusAccepted, QuoteStatusInProgress,
		QuoteStatusCompleted, QuoteStatusDisputed, QuoteStatusCancelled:
		return true
	}
	return false
}

func (s QuoteStatus) Terminal() bool {
	return s == QuoteStatusCompleted || s == QuoteStatusCancelled
}

// Quote is one repair request/offer cycle.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (client_id-index): client_id
//   - GSI2 (repairer_id-index): repairer_id
//
// Monetary representation:
//   - prices are stored in minor units (cents)
//   - QuotedPriceCents is fixed once the quote is accepted
type Quote struct {
	ID                  string      `json:"id"`
	ClientID            string      `json:"client_id"`
	RepairerID          string      `json:"repairer_id"`
	DeviceDescription   string      `json:"device_description"`
	ProblemDescription  string      `json:"problem_description"`
	RequestedPriceCents int64       `json:"requested_price_cents"`
	QuotedPriceCents    int64       `json:"quoted_price_cents"`
	OfferDescription    string      `json:"offer_description"`
	Currency            string      `json:"currency"`
	PayeeRef            string      `json:"payee_ref,omitempty"`
	Status              QuoteStatus `json:"status"`
	Version             int64       `json:"version"`

	// Operation is the workflow step holding the quote's claim lease.
	Operation          string     `json:"operation,omitempty"`
	OperationStartedAt *time.Time `json:"operation_started_at,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	QuotedAt    *time.Time `json:"quoted_at,omitempty"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	DisputedAt  *time.Time `json:"disputed_at,omitempty"`
}

// Busy reports whether a workflow step holds the quote's claim lease at now.
func (q Quote) Busy(now time.Time, lease time.Duration) bool {
	return q.Operation != "" && q.OperationStartedAt != nil && now.Sub(*q.OperationStartedAt) < lease
}

// IsParty reports whether the actor is the quote's client or repairer.
func (q Quote) IsParty(a Actor) bool {
	return (a.Role == RoleClient && a.ID == q.ClientID) || (a.Role == RoleRepairer && a.ID == q.RepairerID)
}

// Stamp records the transition time of the given destination status.
func (q *Quote) Stamp(status QuoteStatus, at time.Time) {
	t := at
	switch status {
	case QuoteStatusQuoted:
		q.QuotedAt = &t
	case QuoteStatusAccepted:
		q.AcceptedAt = &t
	case QuoteStatusInProgress:
		q.StartedAt = &t
	case QuoteStatusCompleted:
		q.CompletedAt = &t
	case QuoteStatusCancelled:
		q.CancelledAt = &t
	case QuoteStatusDisputed:
		q.DisputedAt = &t
	}
	q.Status = status
	q.UpdatedAt = at
}
