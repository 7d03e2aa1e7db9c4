package memory

import (
	"context"
	"sort"

	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase/interfaces"
)

type TimelineRepository struct {
	t *table[entities.TimelineEvent]
}

var _ interfaces.ITimelineRepository = (*TimelineRepository)(nil)

func NewTimelineRepository() *TimelineRepository {
	return &TimelineRepository{t: newTable[entities.TimelineEvent]()}
}

func (r *TimelineRepository) Append(_ context.Context, e entities.TimelineEvent) error {
	return r.t.create(e.ID, e)
}

func (r *TimelineRepository) ListByQuoteID(_ context.Context, quoteID string) ([]entities.TimelineEvent, error) {
	items := r.t.filter(func(e entities.TimelineEvent) bool { return e.QuoteID == quoteID })
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}
