package entities

import "time"

// Timeline event types.
const (
	EventQuoteCreated      = "quote_created"
	EventOfferSubmitted    = "offer_submitted"
	EventPaymentAuthorized = "payment_authorized"
	EventPaymentPending    = "payment_pending"
	EventPaymentFailed     = "payment_failed"
	EventQuoteAccepted     = "quote_accepted"
	EventWorkStarted       = "work_started"
	EventCaptureFailed     = "capture_failed"
	EventPaymentCaptured   = "payment_captured"
	EventFundsReleased     = "funds_released"
	EventReleaseFailed     = "release_failed"
	EventQuoteCompleted    = "quote_completed"
	EventQuoteCancelled    = "quote_cancelled"
	EventAuthorizationVoid = "authorization_voided"
	EventDisputeRaised     = "dispute_raised"
	EventDisputeResolved   = "dispute_resolved"
	EventEvidenceAttached  = "evidence_attached"
	EventPaymentRefunded   = "payment_refunded"
)

// TimelineEvent is an append-only audit record of a change on a quote.
//
// Storage model (DynamoDB):
//   - PK: quote_id
//   - SK: sort_key (created_at + id), written once
type TimelineEvent struct {
	ID          string         `json:"id"`
	QuoteID     string         `json:"quote_id"`
	EventType   string         `json:"event_type"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
	ActorID     string         `json:"actor_id"`
	ActorRole   Role           `json:"actor_role"`
	CreatedAt   time.Time      `json:"created_at"`
}
