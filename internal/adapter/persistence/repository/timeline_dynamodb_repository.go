package repository

import (
	"context"

	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultTimelineTableName = "repair_timeline_events"

type timelineItem struct {
	QuoteID     string         `dynamodbav:"quote_id"`
	SortKey     string         `dynamodbav:"sort_key"`
	ID          string         `dynamodbav:"id"`
	EventType   string         `dynamodbav:"event_type"`
	Title       string         `dynamodbav:"title"`
	Description string         `dynamodbav:"description,omitempty"`
	Data        map[string]any `dynamodbav:"data,omitempty"`
	ActorID     string         `dynamodbav:"actor_id"`
	ActorRole   string         `dynamodbav:"actor_role"`
	CreatedAt   string         `dynamodbav:"created_at"`
}

// TimelineDynamoRepository stores timeline events append-only.
//
// Table requirements:
//   - PK: quote_id (string)
//   - SK: sort_key (string), created_at + "#" + id
type TimelineDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.ITimelineRepository = (*TimelineDynamoRepository)(nil)

func NewTimelineDynamoRepository(ddb DynamoAPI, tableName string) *TimelineDynamoRepository {
	return &TimelineDynamoRepository{ddb: ddb, tableName: tableOr(tableName, defaultTimelineTableName)}
}

func (r *TimelineDynamoRepository) Append(ctx context.Context, e entities.TimelineEvent) error {
	it := timelineItem{
		QuoteID:     e.QuoteID,
		SortKey:     formatTime(e.CreatedAt) + "#" + e.ID,
		ID:          e.ID,
		EventType:   e.EventType,
		Title:       e.Title,
		Description: e.Description,
		Data:        e.Data,
		ActorID:     e.ActorID,
		ActorRole:   string(e.ActorRole),
		CreatedAt:   formatTime(e.CreatedAt),
	}
	return putNew(ctx, r.ddb, r.tableName, "sort_key", it)
}

// ListByQuoteID returns the events of a quote in chronological order.
func (r *TimelineDynamoRepository) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.TimelineEvent, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("#quote_id = :quote_id"),
		ExpressionAttributeNames: map[string]string{
			"#quote_id": "quote_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":quote_id": &types.AttributeValueMemberS{Value: quoteID},
		},
		ScanIndexForward: aws.Bool(true),
		ConsistentRead:   aws.Bool(true),
	}
	items, err := queryAll[timelineItem](ctx, r.ddb, in, 0)
	if err != nil {
		return nil, err
	}
	out := make([]entities.TimelineEvent, 0, len(items))
	for _, it := range items {
		out = append(out, entities.TimelineEvent{
			ID:          it.ID,
			QuoteID:     it.QuoteID,
			EventType:   it.EventType,
			Title:       it.Title,
			Description: it.Description,
			Data:        it.Data,
			ActorID:     it.ActorID,
			ActorRole:   entities.Role(it.ActorRole),
			CreatedAt:   parseTime(it.CreatedAt),
		})
	}
	return out, nil
}
