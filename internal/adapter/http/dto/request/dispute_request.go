package request

import (
	"strings"

	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase"
)

type RaiseDisputeRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ResolveDisputeRequest is an admin decision: outcome is "release" or "refund".
type ResolveDisputeRequest struct {
	Outcome string `json:"outcome" binding:"required"`
	Note    string `json:"note"`
}

func (r ResolveDisputeRequest) ToInput() usecase.ResolveInput {
	return usecase.ResolveInput{
		Outcome: entities.DisputeOutcome(strings.ToLower(strings.TrimSpace(r.Outcome))),
		Note:    r.Note,
	}
}

// SweepRequest optionally bounds the number of holds examined by one sweep.
type SweepRequest struct {
	Limit int `json:"limit" binding:"gte=0"`
}
