package interfaces

import (
	"context"
	"topreparateurs/internal/domain/entities"
)

// IPaymentRepository abstracts persistence for Payment. Same conventions as IQuoteRepository.

type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	GetByProviderPaymentID(ctx context.Context, providerPaymentID string) (entities.Payment, error)
	ListByQuoteID(ctx context.Context, quoteID string) ([]entities.Payment, error)
	Update(ctx context.Context, p entities.Payment, expectedVersion int64) (entities.Payment, error)
}
