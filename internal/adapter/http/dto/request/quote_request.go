package request

import (
	"strings"

	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase"
)

// CreateQuoteRequest is sent by a client asking a repairer for a quote.
// Prices are in major units (80.00); they are stored in cents.
type CreateQuoteRequest struct {
	RepairerID         string  `json:"repairer_id" binding:"required"`
	DeviceDescription  string  `json:"device_description" binding:"required"`
	ProblemDescription string  `json:"problem_description" binding:"required"`
	RequestedPrice     float64 `json:"requested_price" binding:"lte=1000000"`
}

func (r CreateQuoteRequest) ToInput() usecase.CreateQuoteInput {
	return usecase.CreateQuoteInput{
		RepairerID:          strings.TrimSpace(r.RepairerID),
		DeviceDescription:   r.DeviceDescription,
		ProblemDescription:  r.ProblemDescription,
		RequestedPriceCents: entities.ToCents(r.RequestedPrice),
	}
}

// SubmitOfferRequest is the repairer's priced answer to a quote.
type SubmitOfferRequest struct {
	Price       float64 `json:"price" binding:"lte=1000000"`
	Description string  `json:"description"`
	PayeeRef    string  `json:"payee_ref"`
}

func (r SubmitOfferRequest) ToInput() usecase.OfferInput {
	return usecase.OfferInput{
		PriceCents:  entities.ToCents(r.Price),
		Description: r.Description,
		PayeeRef:    strings.TrimSpace(r.PayeeRef),
	}
}

// AcceptQuoteRequest carries the payment method the client confirms with.
// An empty body is accepted; the processor then returns a client secret to confirm later.
type AcceptQuoteRequest struct {
	PaymentMethodRef string `json:"payment_method_ref"`
}

func (r AcceptQuoteRequest) ToInput() usecase.AcceptInput {
	return usecase.AcceptInput{PaymentMethodRef: strings.TrimSpace(r.PaymentMethodRef)}
}

type CancelQuoteRequest struct {
	Reason string `json:"reason"`
}

// ListQuotesQuery is bound from the query string of GET /quotes.
type ListQuotesQuery struct {
	ClientID   string `form:"client_id"`
	RepairerID string `form:"repairer_id"`
	Status     string `form:"status"`
}

func (q ListQuotesQuery) ToFilter() usecase.ListFilter {
	return usecase.ListFilter{
		ClientID:   strings.TrimSpace(q.ClientID),
		RepairerID: strings.TrimSpace(q.RepairerID),
		Status:     entities.QuoteStatus(strings.ToLower(strings.TrimSpace(q.Status))),
	}
}
