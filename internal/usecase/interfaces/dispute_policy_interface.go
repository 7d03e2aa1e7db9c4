package interfaces

import (
	"context"
	"topreparateurs/internal/domain/entities"
)

// DisputeResolutionInput is everything a policy may look at.
type DisputeResolutionInput struct {
	Dispute   entities.Dispute
	Quote     entities.Quote
	Payment   entities.Payment
	Requested entities.DisputeOutcome
	Resolver  entities.Actor
	Note      string
}

// IDisputeResolutionPolicy decides whether a dispute ends in release or refund.
type IDisputeResolutionPolicy interface {
	Decide(ctx context.Context, in DisputeResolutionInput) (entities.DisputeOutcome, error)
}
