package interfaces

import (
	"context"
	"topreparateurs/internal/domain/entities"
)

// ITimelineRepository is append-only: events are never updated or deleted.

type ITimelineRepository interface {
	Append(ctx context.Context, e entities.TimelineEvent) error
	ListByQuoteID(ctx context.Context, quoteID string) ([]entities.TimelineEvent, error)
}
