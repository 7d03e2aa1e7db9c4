package repository

import (
	"context"
	"time"

	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultHoldsTableName = "payment_holds"

type paymentHoldItem struct {
	ID          string `dynamodbav:"id"`
	PaymentID   string `dynamodbav:"payment_id"`
	QuoteID     string `dynamodbav:"quote_id"`
	AmountCents int64  `dynamodbav:"amount_cents"`
	Reason      string `dynamodbav:"reason"`
	Status      string `dynamodbav:"status"`
	ReleaseAt   string `dynamodbav:"release_at"`
	ReleasedAt  string `dynamodbav:"released_at,omitempty"`
	Version     int64  `dynamodbav:"version"`
	CreatedAt   string `dynamodbav:"created_at"`
	UpdatedAt   string `dynamodbav:"updated_at"`
}

// PaymentHoldDynamoRepository persists PaymentHold entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: payment_id-index (PK: payment_id)
//   - GSI: status-release_at-index (PK: status, SK: release_at)
type PaymentHoldDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IPaymentHoldRepository = (*PaymentHoldDynamoRepository)(nil)

func NewPaymentHoldDynamoRepository(ddb DynamoAPI, tableName string) *PaymentHoldDynamoRepository {
	return &PaymentHoldDynamoRepository{ddb: ddb, tableName: tableOr(tableName, defaultHoldsTableName)}
}

func (r *PaymentHoldDynamoRepository) Create(ctx context.Context, h entities.PaymentHold) (entities.PaymentHold, error) {
	h.Version = 1
	if err := putNew(ctx, r.ddb, r.tableName, "id", toPaymentHoldItem(h)); err != nil {
		return entities.PaymentHold{}, err
	}
	return h, nil
}

func (r *PaymentHoldDynamoRepository) GetByID(ctx context.Context, id string) (entities.PaymentHold, error) {
	var it paymentHoldItem
	found, err := getByID(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.PaymentHold{}, err
	}
	return fromPaymentHoldItem(it), nil
}

// GetByPaymentID reads the payment_id GSI, which is eventually consistent.
func (r *PaymentHoldDynamoRepository) GetByPaymentID(ctx context.Context, paymentID string) (entities.PaymentHold, error) {
	items, err := queryAll[paymentHoldItem](ctx, r.ddb, queryByIndex(r.tableName, HoldsPaymentIDIndex, "payment_id", paymentID), 1)
	if err != nil || len(items) == 0 {
		return entities.PaymentHold{}, err
	}
	var it paymentHoldItem
	found, err := getByID(ctx, r.ddb, r.tableName, items[0].ID, &it)
	if err != nil || !found {
		return entities.PaymentHold{}, err
	}
	return fromPaymentHoldItem(it), nil
}

func (r *PaymentHoldDynamoRepository) Update(ctx context.Context, h entities.PaymentHold, expectedVersion int64) (entities.PaymentHold, error) {
	h.Version = expectedVersion + 1
	if err := putVersioned(ctx, r.ddb, r.tableName, toPaymentHoldItem(h), expectedVersion); err != nil {
		return entities.PaymentHold{}, err
	}
	return h, nil
}

func (r *PaymentHoldDynamoRepository) ListDue(ctx context.Context, before time.Time, limit int) ([]entities.PaymentHold, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(HoldsStatusReleaseAtIndex),
		KeyConditionExpression: aws.String("#status = :held AND #release_at <= :before"),
		ExpressionAttributeNames: map[string]string{
			"#status":     "status",
			"#release_at": "release_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":held":   &types.AttributeValueMemberS{Value: string(entities.HoldStatusHeld)},
			":before": &types.AttributeValueMemberS{Value: formatTime(before)},
		},
		ScanIndexForward: aws.Bool(true),
	}
	if limit > 0 {
		in.Limit = aws.Int32(int32(limit))
	}
	items, err := queryAll[paymentHoldItem](ctx, r.ddb, in, limit)
	if err != nil {
		return nil, err
	}
	out := make([]entities.PaymentHold, 0, len(items))
	for _, it := range items {
		out = append(out, fromPaymentHoldItem(it))
	}
	return out, nil
}

func toPaymentHoldItem(h entities.PaymentHold) paymentHoldItem {
	return paymentHoldItem{
		ID:          h.ID,
		PaymentID:   h.PaymentID,
		QuoteID:     h.QuoteID,
		AmountCents: h.AmountCents,
		Reason:      h.Reason,
		Status:      string(h.Status),
		ReleaseAt:   formatTime(h.ReleaseAt),
		ReleasedAt:  formatTimePtr(h.ReleasedAt),
		Version:     h.Version,
		CreatedAt:   formatTime(h.CreatedAt),
		UpdatedAt:   formatTime(h.UpdatedAt),
	}
}

func fromPaymentHoldItem(it paymentHoldItem) entities.PaymentHold {
	return entities.PaymentHold{
		ID:          it.ID,
		PaymentID:   it.PaymentID,
		QuoteID:     it.QuoteID,
		AmountCents: it.AmountCents,
		Reason:      it.Reason,
		Status:      entities.HoldStatus(it.Status),
		ReleaseAt:   parseTime(it.ReleaseAt),
		ReleasedAt:  parseTimePtr(it.ReleasedAt),
		Version:     it.Version,
		CreatedAt:   parseTime(it.CreatedAt),
		UpdatedAt:   parseTime(it.UpdatedAt),
	}
}
