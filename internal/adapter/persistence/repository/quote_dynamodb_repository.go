package repository

import (
	"context"

	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase/interfaces"
)

const defaultQuotesTableName = "quotes"

type quoteItem struct {
	ID                  string `dynamodbav:"id"`
	ClientID            string `dynamodbav:"client_id"`
	RepairerID          string `dynamodbav:"repairer_id"`
	DeviceDescription   string `dynamodbav:"device_description"`
	ProblemDescription  string `dynamodbav:"problem_description"`
	RequestedPriceCents int64  `dynamodbav:"requested_price_cents"`
	QuotedPriceCents    int64  `dynamodbav:"quoted_price_cents"`
	OfferDescription    string `dynamodbav:"offer_description,omitempty"`
	Currency            string `dynamodbav:"currency"`
	PayeeRef            string `dynamodbav:"payee_ref,omitempty"`
	Status              string `dynamodbav:"status"`
	Version             int64  `dynamodbav:"version"`
	Operation           string `dynamodbav:"operation,omitempty"`
	OperationStartedAt  string `dynamodbav:"operation_started_at,omitempty"`
	CreatedAt           string `dynamodbav:"created_at"`
	UpdatedAt           string `dynamodbav:"updated_at"`
	QuotedAt            string `dynamodbav:"quoted_at,omitempty"`
	AcceptedAt          string `dynamodbav:"accepted_at,omitempty"`
	StartedAt           string `dynamodbav:"started_at,omitempty"`
	CompletedAt         string `dynamodbav:"completed_at,omitempty"`
	CancelledAt         string `dynamodbav:"cancelled_at,omitempty"`
	DisputedAt          string `dynamodbav:"disputed_at,omitempty"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: client_id-index (PK: client_id)
//   - GSI: repairer_id-index (PK: repairer_id)
type QuoteDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb DynamoAPI, tableName string) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{ddb: ddb, tableName: tableOr(tableName, defaultQuotesTableName)}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	q.Version = 1
	if err := putNew(ctx, r.ddb, r.tableName, "id", toQuoteItem(q)); err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	var it quoteItem
	found, err := getByID(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) Update(ctx context.Context, q entities.Quote, expectedVersion int64) (entities.Quote, error) {
	q.Version = expectedVersion + 1
	if err := putVersioned(ctx, r.ddb, r.tableName, toQuoteItem(q), expectedVersion); err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) ListByClientID(ctx context.Context, clientID string) ([]entities.Quote, error) {
	return r.list(ctx, QuotesClientIDIndex, "client_id", clientID)
}

func (r *QuoteDynamoRepository) ListByRepairerID(ctx context.Context, repairerID string) ([]entities.Quote, error) {
	return r.list(ctx, QuotesRepairerIDIndex, "repairer_id", repairerID)
}

func (r *QuoteDynamoRepository) list(ctx context.Context, index, attr, value string) ([]entities.Quote, error) {
	items, err := queryAll[quoteItem](ctx, r.ddb, queryByIndex(r.tableName, index, attr, value), 0)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Quote, 0, len(items))
	for _, it := range items {
		out = append(out, fromQuoteItem(it))
	}
	return out, nil
}

func toQuoteItem(q entities.Quote) quoteItem {
	return quoteItem{
		ID:                  q.ID,
		ClientID:            q.ClientID,
		RepairerID:          q.RepairerID,
		DeviceDescription:   q.DeviceDescription,
		ProblemDescription:  q.ProblemDescription,
		RequestedPriceCents: q.RequestedPriceCents,
		QuotedPriceCents:    q.QuotedPriceCents,
		OfferDescription:    q.OfferDescription,
		Currency:            q.Currency,
		PayeeRef:            q.PayeeRef,
		Status:              string(q.Status),
		Version:             q.Version,
		Operation:           q.Operation,
		OperationStartedAt:  formatTimePtr(q.OperationStartedAt),
		CreatedAt:           formatTime(q.CreatedAt),
		UpdatedAt:           formatTime(q.UpdatedAt),
		QuotedAt:            formatTimePtr(q.QuotedAt),
		AcceptedAt:          formatTimePtr(q.AcceptedAt),
		StartedAt:           formatTimePtr(q.StartedAt),
		CompletedAt:         formatTimePtr(q.CompletedAt),
		CancelledAt:         formatTimePtr(q.CancelledAt),
		DisputedAt:          formatTimePtr(q.DisputedAt),
	}
}

func fromQuoteItem(it quoteItem) entities.Quote {
	return entities.Quote{
		ID:                  it.ID,
		ClientID:            it.ClientID,
		RepairerID:          it.RepairerID,
		DeviceDescription:   it.DeviceDescription,
		ProblemDescription:  it.ProblemDescription,
		RequestedPriceCents: it.RequestedPriceCents,
		QuotedPriceCents:    it.QuotedPriceCents,
		OfferDescription:    it.OfferDescription,
		Currency:            it.Currency,
		PayeeRef:            it.PayeeRef,
		Status:              entities.QuoteStatus(it.Status),
		Version:             it.Version,
		Operation:           it.Operation,
		OperationStartedAt:  parseTimePtr(it.OperationStartedAt),
		CreatedAt:           parseTime(it.CreatedAt),
		UpdatedAt:           parseTime(it.UpdatedAt),
		QuotedAt:            parseTimePtr(it.QuotedAt),
		AcceptedAt:          parseTimePtr(it.AcceptedAt),
		StartedAt:           parseTimePtr(it.StartedAt),
		CompletedAt:         parseTimePtr(it.CompletedAt),
		CancelledAt:         parseTimePtr(it.CancelledAt),
		DisputedAt:          parseTimePtr(it.DisputedAt),
	}
}
