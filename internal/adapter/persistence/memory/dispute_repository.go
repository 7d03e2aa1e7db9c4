package memory

import (
	"context"
	"slices"

	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase/interfaces"
)

type DisputeRepository struct {
	t *table[entities.Dispute]
}

var _ interfaces.IDisputeRepository = (*DisputeRepository)(nil)

func NewDisputeRepository() *DisputeRepository {
	return &DisputeRepository{t: newTable[entities.Dispute]()}
}

func (r *DisputeRepository) Create(_ context.Context, d entities.Dispute) (entities.Dispute, error) {
	d.Version = 1
	d.EvidenceKeys = slices.Clone(d.EvidenceKeys)
	if err := r.t.create(d.ID, d); err != nil {
		return entities.Dispute{}, err
	}
	d.EvidenceKeys = slices.Clone(d.EvidenceKeys)
	return d, nil
}

func (r *DisputeRepository) GetByID(_ context.Context, id string) (entities.Dispute, error) {
	d, _ := r.t.get(id)
	d.EvidenceKeys = slices.Clone(d.EvidenceKeys)
	return d, nil
}

func (r *DisputeRepository) ListByQuoteID(_ context.Context, quoteID string) ([]entities.Dispute, error) {
	items := r.t.filter(func(d entities.Dispute) bool { return d.QuoteID == quoteID })
	for i := range items {
		items[i].EvidenceKeys = slices.Clone(items[i].EvidenceKeys)
	}
	return items, nil
}

func (r *DisputeRepository) Update(_ context.Context, d entities.Dispute, expectedVersion int64) (entities.Dispute, error) {
	d.Version = expectedVersion + 1
	d.EvidenceKeys = slices.Clone(d.EvidenceKeys)
	if err := r.t.swap(d.ID, expectedVersion, func(v entities.Dispute) int64 { return v.Version }, d); err != nil {
		return entities.Dispute{}, err
	}
	d.EvidenceKeys = slices.Clone(d.EvidenceKeys)
	return d, nil
}
