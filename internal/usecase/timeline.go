package usecase

import (
	"context"
	"strings"
	"time"

	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase/interfaces"
	"topreparateurs/pkg/logger"

	"github.com/google/uuid"
)

// TimelineRecorder appends audit events for a quote.
//
// Recording happens after the state change it describes has been persisted and
// never rolls it back: a failed append is logged and dropped.
type TimelineRecorder struct {
	repo interfaces.ITimelineRepository
	now  func() time.Time
}

func NewTimelineRecorder(repo interfaces.ITimelineRepository) *TimelineRecorder {
	return &TimelineRecorder{repo: repo, now: utcNow}
}

func (r *TimelineRecorder) Record(ctx context.Context, quoteID string, actor entities.Actor, eventType, title, description string, data map[string]any) {
	if r == nil || r.repo == nil {
		return
	}
	e := entities.TimelineEvent{
		ID:          uuid.NewString(),
		QuoteID:     quoteID,
		EventType:   eventType,
		Title:       title,
		Description: description,
		Data:        data,
		ActorID:     actor.ID,
		ActorRole:   actor.Role,
		CreatedAt:   r.now(),
	}
	if err := r.repo.Append(ctx, e); err != nil {
		logger.Error(ctx, "[timeline][usecase] append failed", "quote_id", quoteID, "event_type", eventType, "err", err)
	}
}

func (r *TimelineRecorder) List(ctx context.Context, quoteID string) ([]entities.TimelineEvent, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return nil, ErrInvalidQuoteID
	}
	if r == nil || r.repo == nil {
		return []entities.TimelineEvent{}, nil
	}
	return r.repo.ListByQuoteID(ctx, quoteID)
}

func utcNow() time.Time {
	return time.Now().UTC()
}
