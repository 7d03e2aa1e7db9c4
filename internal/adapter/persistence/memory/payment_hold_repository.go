package memory

import (
	"context"
	"sort"
	"time"

	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase/interfaces"
)

type PaymentHoldRepository struct {
	t *table[entities.PaymentHold]
}

var _ interfaces.IPaymentHoldRepository = (*PaymentHoldRepository)(nil)

func NewPaymentHoldRepository() *PaymentHoldRepository {
	return &PaymentHoldRepository{t: newTable[entities.PaymentHold]()}
}

func (r *PaymentHoldRepository) Create(_ context.Context, h entities.PaymentHold) (entities.PaymentHold, error) {
	h.Version = 1
	if err := r.t.create(h.ID, h); err != nil {
		return entities.PaymentHold{}, err
	}
	return h, nil
}

func (r *PaymentHoldRepository) GetByID(_ context.Context, id string) (entities.PaymentHold, error) {
	h, _ := r.t.get(id)
	return h, nil
}

func (r *PaymentHoldRepository) GetByPaymentID(_ context.Context, paymentID string) (entities.PaymentHold, error) {
	items := r.t.filter(func(h entities.PaymentHold) bool { return h.PaymentID == paymentID })
	if len(items) == 0 {
		return entities.PaymentHold{}, nil
	}
	return items[0], nil
}

func (r *PaymentHoldRepository) Update(_ context.Context, h entities.PaymentHold, expectedVersion int64) (entities.PaymentHold, error) {
	h.Version = expectedVersion + 1
	if err := r.t.swap(h.ID, expectedVersion, func(v entities.PaymentHold) int64 { return v.Version }, h); err != nil {
		return entities.PaymentHold{}, err
	}
	return h, nil
}

func (r *PaymentHoldRepository) ListDue(_ context.Context, before time.Time, limit int) ([]entities.PaymentHold, error) {
	items := r.t.filter(func(h entities.PaymentHold) bool { return h.Due(before) })
	sort.SliceStable(items, func(i, j int) bool { return items[i].ReleaseAt.Before(items[j].ReleaseAt) })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
