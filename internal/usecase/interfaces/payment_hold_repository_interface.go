package interfaces

import (
	"context"
	"time"

	"topreparateurs/internal/domain/entities"
)

// IPaymentHoldRepository abstracts persistence for PaymentHold.

type IPaymentHoldRepository interface {
	Create(ctx context.Context, h entities.PaymentHold) (entities.PaymentHold, error)
	GetByID(ctx context.Context, id string) (entities.PaymentHold, error)
	GetByPaymentID(ctx context.Context, paymentID string) (entities.PaymentHold, error)
	Update(ctx context.Context, h entities.PaymentHold, expectedVersion int64) (entities.PaymentHold, error)
	// ListDue returns held holds whose release_at is not after before, oldest first.
	ListDue(ctx context.Context, before time.Time, limit int) ([]entities.PaymentHold, error)
}
