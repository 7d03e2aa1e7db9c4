package response

import (
	"time"

	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase"
)

type DisputeResponse struct {
	ID                  string     `json:"id"`
	QuoteID             string     `json:"quote_id"`
	PaymentID           string     `json:"payment_id,omitempty"`
	RaisedBy            string     `json:"raised_by"`
	RaisedByRole        string     `json:"raised_by_role"`
	Reason              string     `json:"reason"`
	Status              string     `json:"status"`
	PreviousQuoteStatus string     `json:"previous_quote_status"`
	ResolutionNote      string     `json:"resolution_note,omitempty"`
	ResolvedBy          string     `json:"resolved_by,omitempty"`
	EvidenceCount       int        `json:"evidence_count"`
	EvidenceURLs        []string   `json:"evidence_urls,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	ResolvedAt          *time.Time `json:"resolved_at,omitempty"`
}

func FromDispute(d entities.Dispute) DisputeResponse {
	return DisputeResponse{
		ID:                  d.ID,
		QuoteID:             d.QuoteID,
		PaymentID:           d.PaymentID,
		RaisedBy:            d.RaisedBy,
		RaisedByRole:        string(d.RaisedByRole),
		Reason:              d.Reason,
		Status:              string(d.Status),
		PreviousQuoteStatus: string(d.PreviousQuoteStatus),
		ResolutionNote:      d.ResolutionNote,
		ResolvedBy:          d.ResolvedBy,
		EvidenceCount:       len(d.EvidenceKeys),
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
		ResolvedAt:          d.ResolvedAt,
	}
}

func FromDisputeView(v usecase.DisputeView) DisputeResponse {
	res := FromDispute(v.Dispute)
	res.EvidenceURLs = v.EvidenceURLs
	return res
}

type ResolutionResponse struct {
	Dispute DisputeResponse `json:"dispute"`
	Quote   QuoteResponse   `json:"quote"`
	Payment PaymentResponse `json:"payment"`
}

func FromResolutionResult(r usecase.ResolutionResult) ResolutionResponse {
	return ResolutionResponse{
		Dispute: FromDispute(r.Dispute),
		Quote:   FromQuote(r.Quote),
		Payment: FromPayment(r.Payment),
	}
}
