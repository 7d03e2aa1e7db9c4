package interfaces

import (
	"context"
	"topreparateurs/internal/domain/entities"
)

// IQuoteRepository abstracts persistence for Quote.
//
// Missing records are reported as a zero Quote and a nil error.
// Update is a compare-and-swap on Version: it stores q with Version+1 when the
// stored version equals expectedVersion, and fails with entities.ErrVersionConflict otherwise.

type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	Update(ctx context.Context, q entities.Quote, expectedVersion int64) (entities.Quote, error)
	ListByClientID(ctx context.Context, clientID string) ([]entities.Quote, error)
	ListByRepairerID(ctx context.Context, repairerID string) ([]entities.Quote, error)
}
