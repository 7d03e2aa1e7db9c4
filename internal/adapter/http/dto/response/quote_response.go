package response

import (
	"time"

	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase"
)

type QuoteResponse struct {
	ID                  string     `json:"id"`
	ClientID            string     `json:"client_id"`
	RepairerID          string     `json:"repairer_id"`
	DeviceDescription   string     `json:"device_description"`
	ProblemDescription  string     `json:"problem_description"`
	RequestedPrice      float64    `json:"requested_price"`
	RequestedPriceCents int64      `json:"requested_price_cents"`
	QuotedPrice         float64    `json:"quoted_price,omitempty"`
	QuotedPriceCents    int64      `json:"quoted_price_cents,omitempty"`
	OfferDescription    string     `json:"offer_description,omitempty"`
	Currency            string     `json:"currency"`
	Status              string     `json:"status"`
	Version             int64      `json:"version"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	QuotedAt            *time.Time `json:"quoted_at,omitempty"`
	AcceptedAt          *time.Time `json:"accepted_at,omitempty"`
	StartedAt           *time.Time `json:"started_at,omitempty"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
	CancelledAt         *time.Time `json:"cancelled_at,omitempty"`
	DisputedAt          *time.Time `json:"disputed_at,omitempty"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	return QuoteResponse{
		ID:                  q.ID,
		ClientID:            q.ClientID,
		RepairerID:          q.RepairerID,
		DeviceDescription:   q.DeviceDescription,
		ProblemDescription:  q.ProblemDescription,
		RequestedPrice:      entities.FromCents(q.RequestedPriceCents),
		RequestedPriceCents: q.RequestedPriceCents,
		QuotedPrice:         entities.FromCents(q.QuotedPriceCents),
		QuotedPriceCents:    q.QuotedPriceCents,
		OfferDescription:    q.OfferDescription,
		Currency:            q.Currency,
		Status:              string(q.Status),
		Version:             q.Version,
		CreatedAt:           q.CreatedAt,
		UpdatedAt:           q.UpdatedAt,
		QuotedAt:            q.QuotedAt,
		AcceptedAt:          q.AcceptedAt,
		StartedAt:           q.StartedAt,
		CompletedAt:         q.CompletedAt,
		CancelledAt:         q.CancelledAt,
		DisputedAt:          q.DisputedAt,
	}
}

func FromQuotes(qs []entities.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, FromQuote(q))
	}
	return out
}

// AcceptResponse is what the client needs to confirm the held payment.
// Amount is in cents, as the processor's client SDK expects.
type AcceptResponse struct {
	ID           string        `json:"id"`
	ClientSecret string        `json:"client_secret,omitempty"`
	Amount       int64         `json:"amount"`
	Currency     string        `json:"currency"`
	Status       string        `json:"status"`
	Quote        QuoteResponse `json:"quote"`
}

func FromAcceptResult(r usecase.AcceptResult) AcceptResponse {
	return AcceptResponse{
		ID:           r.Payment.ID,
		ClientSecret: r.Payment.ClientSecret,
		Amount:       r.Payment.AmountCents,
		Currency:     r.Payment.Currency,
		Status:       string(r.Payment.Status),
		Quote:        FromQuote(r.Quote),
	}
}

type CompletionResponse struct {
	Quote    QuoteResponse   `json:"quote"`
	Payment  PaymentResponse `json:"payment"`
	Released bool            `json:"released"`
}

func FromCompletionResult(r usecase.CompletionResult) CompletionResponse {
	return CompletionResponse{
		Quote:    FromQuote(r.Quote),
		Payment:  FromPayment(r.Payment),
		Released: r.Released,
	}
}

type TimelineEventResponse struct {
	ID          string         `json:"id"`
	EventType   string         `json:"event_type"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
	ActorID     string         `json:"actor_id"`
	ActorRole   string         `json:"actor_role"`
	CreatedAt   time.Time      `json:"created_at"`
}

func FromTimeline(events []entities.TimelineEvent) []TimelineEventResponse {
	out := make([]TimelineEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, TimelineEventResponse{
			ID:          e.ID,
			EventType:   e.EventType,
			Title:       e.Title,
			Description: e.Description,
			Data:        e.Data,
			ActorID:     e.ActorID,
			ActorRole:   string(e.ActorRole),
			CreatedAt:   e.CreatedAt,
		})
	}
	return out
}
