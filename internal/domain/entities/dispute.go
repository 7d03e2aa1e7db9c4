package entities

import "time"

type DisputeStatus string

const (
	DisputeStatusActive          DisputeStatus = "active"
	DisputeStatusResolvedRelease DisputeStatus = "resolved_release"
	DisputeStatusResolvedRefund  DisputeStatus = "resolved_refund"
)

// DisputeOutcome is the decision applied when a dispute is closed.
type DisputeOutcome string

const (
	DisputeOutcomeRelease DisputeOutcome = "release"
	DisputeOutcomeRefund  DisputeOutcome = "refund"
)

func (o DisputeOutcome) Valid() bool {
	return o == DisputeOutcomeRelease || o == DisputeOutcomeRefund
}

// Dispute suspends the automatic capture/release path of a quote.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (quote_id-index): quote_id
type Dispute struct {
	ID                  string        `json:"id"`
	QuoteID             string        `json:"quote_id"`
	PaymentID           string        `json:"payment_id,omitempty"`
	RaisedBy            string        `json:"raised_by"`
	RaisedByRole        Role          `json:"raised_by_role"`
	Reason              string        `json:"reason"`
	Status              DisputeStatus `json:"status"`
	PreviousQuoteStatus QuoteStatus   `json:"previous_quote_status"`
	ResolutionNote      string        `json:"resolution_note,omitempty"`
	ResolvedBy          string        `json:"resolved_by,omitempty"`
	EvidenceKeys        []string      `json:"evidence_keys,omitempty"`
	Version             int64         `json:"version"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
	ResolvedAt          *time.Time    `json:"resolved_at,omitempty"`
}

func (d Dispute) Active() bool {
	return d.Status == DisputeStatusActive
}
