package interfaces

import (
	"context"
	"topreparateurs/internal/domain/entities"
)

type IDisputeRepository interface {
	Create(ctx context.Context, d entities.Dispute) (entities.Dispute, error)
	GetByID(ctx context.Context, id string) (entities.Dispute, error)
	ListByQuoteID(ctx context.Context, quoteID string) ([]entities.Dispute, error)
	Update(ctx context.Context, d entities.Dispute, expectedVersion int64) (entities.Dispute, error)
}
