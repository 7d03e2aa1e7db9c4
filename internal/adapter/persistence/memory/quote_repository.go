package memory

import (
	"context"

	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase/interfaces"
)

type QuoteRepository struct {
	t *table[entities.Quote]
}

var _ interfaces.IQuoteRepository = (*QuoteRepository)(nil)

func NewQuoteRepository() *QuoteRepository {
	return &QuoteRepository{t: newTable[entities.Quote]()}
}

func (r *QuoteRepository) Create(_ context.Context, q entities.Quote) (entities.Quote, error) {
	q.Version = 1
	if err := r.t.create(q.ID, q); err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteRepository) GetByID(_ context.Context, id string) (entities.Quote, error) {
	q, _ := r.t.get(id)
	return q, nil
}

func (r *QuoteRepository) Update(_ context.Context, q entities.Quote, expectedVersion int64) (entities.Quote, error) {
	q.Version = expectedVersion + 1
	if err := r.t.swap(q.ID, expectedVersion, func(v entities.Quote) int64 { return v.Version }, q); err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteRepository) ListByClientID(_ context.Context, clientID string) ([]entities.Quote, error) {
	return r.t.filter(func(q entities.Quote) bool { return q.ClientID == clientID }), nil
}

func (r *QuoteRepository) ListByRepairerID(_ context.Context, repairerID string) ([]entities.Quote, error) {
	return r.t.filter(func(q entities.Quote) bool { return q.RepairerID == repairerID }), nil
}
