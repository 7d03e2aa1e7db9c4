package memory

import (
	"context"

	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase/interfaces"
)

type PaymentRepository struct {
	t *table[entities.Payment]
}

var _ interfaces.IPaymentRepository = (*PaymentRepository)(nil)

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{t: newTable[entities.Payment]()}
}

func (r *PaymentRepository) Create(_ context.Context, p entities.Payment) (entities.Payment, error) {
	p.Version = 1
	if err := r.t.create(p.ID, p); err != nil {
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentRepository) GetByID(_ context.Context, id string) (entities.Payment, error) {
	p, _ := r.t.get(id)
	return p, nil
}

func (r *PaymentRepository) GetByProviderPaymentID(_ context.Context, providerPaymentID string) (entities.Payment, error) {
	items := r.t.filter(func(p entities.Payment) bool {
		return providerPaymentID != "" && p.ProviderPaymentID == providerPaymentID
	})
	if len(items) == 0 {
		return entities.Payment{}, nil
	}
	return items[0], nil
}

func (r *PaymentRepository) ListByQuoteID(_ context.Context, quoteID string) ([]entities.Payment, error) {
	return r.t.filter(func(p entities.Payment) bool { return p.QuoteID == quoteID }), nil
}

func (r *PaymentRepository) Update(_ context.Context, p entities.Payment, expectedVersion int64) (entities.Payment, error) {
	p.Version = expectedVersion + 1
	if err := r.t.swap(p.ID, expectedVersion, func(v entities.Payment) int64 { return v.Version }, p); err != nil {
		return entities.Payment{}, err
	}
	return p, nil
}
