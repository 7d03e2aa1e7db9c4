package repository

import (
	"context"
	"sort"

	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase/interfaces"
)

const defaultDisputesTableName = "disputes"

type disputeItem struct {
	ID                  string   `dynamodbav:"id"`
	QuoteID             string   `dynamodbav:"quote_id"`
	PaymentID           string   `dynamodbav:"payment_id,omitempty"`
	RaisedBy            string   `dynamodbav:"raised_by"`
	RaisedByRole        string   `dynamodbav:"raised_by_role"`
	Reason              string   `dynamodbav:"reason"`
	Status              string   `dynamodbav:"status"`
	PreviousQuoteStatus string   `dynamodbav:"previous_quote_status"`
	ResolutionNote      string   `dynamodbav:"resolution_note,omitempty"`
	ResolvedBy          string   `dynamodbav:"resolved_by,omitempty"`
	EvidenceKeys        []string `dynamodbav:"evidence_keys,omitempty"`
	Version             int64    `dynamodbav:"version"`
	CreatedAt           string   `dynamodbav:"created_at"`
	UpdatedAt           string   `dynamodbav:"updated_at"`
	ResolvedAt          string   `dynamodbav:"resolved_at,omitempty"`
}

// DisputeDynamoRepository persists Dispute entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: quote_id-index (PK: quote_id)
type DisputeDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IDisputeRepository = (*DisputeDynamoRepository)(nil)

func NewDisputeDynamoRepository(ddb DynamoAPI, tableName string) *DisputeDynamoRepository {
	return &DisputeDynamoRepository{ddb: ddb, tableName: tableOr(tableName, defaultDisputesTableName)}
}

func (r *DisputeDynamoRepository) Create(ctx context.Context, d entities.Dispute) (entities.Dispute, error) {
	d.Version = 1
	if err := putNew(ctx, r.ddb, r.tableName, "id", toDisputeItem(d)); err != nil {
		return entities.Dispute{}, err
	}
	return d, nil
}

func (r *DisputeDynamoRepository) GetByID(ctx context.Context, id string) (entities.Dispute, error) {
	var it disputeItem
	found, err := getByID(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.Dispute{}, err
	}
	return fromDisputeItem(it), nil
}

// ListByQuoteID returns the disputes of a quote, oldest first.
func (r *DisputeDynamoRepository) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.Dispute, error) {
	items, err := queryAll[disputeItem](ctx, r.ddb, queryByIndex(r.tableName, DisputesQuoteIDIndex, "quote_id", quoteID), 0)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Dispute, 0, len(items))
	for _, it := range items {
		out = append(out, fromDisputeItem(it))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *DisputeDynamoRepository) Update(ctx context.Context, d entities.Dispute, expectedVersion int64) (entities.Dispute, error) {
	d.Version = expectedVersion + 1
	if err := putVersioned(ctx, r.ddb, r.tableName, toDisputeItem(d), expectedVersion); err != nil {
		return entities.Dispute{}, err
	}
	return d, nil
}

func toDisputeItem(d entities.Dispute) disputeItem {
	return disputeItem{
		ID:                  d.ID,
		QuoteID:             d.QuoteID,
		PaymentID:           d.PaymentID,
		RaisedBy:            d.RaisedBy,
		RaisedByRole:        string(d.RaisedByRole),
		Reason:              d.Reason,
		Status:              string(d.Status),
		PreviousQuoteStatus: string(d.PreviousQuoteStatus),
		ResolutionNote:      d.ResolutionNote,
		ResolvedBy:          d.ResolvedBy,
		EvidenceKeys:        d.EvidenceKeys,
		Version:             d.Version,
		CreatedAt:           formatTime(d.CreatedAt),
		UpdatedAt:           formatTime(d.UpdatedAt),
		ResolvedAt:          formatTimePtr(d.ResolvedAt),
	}
}

func fromDisputeItem(it disputeItem) entities.Dispute {
	return entities.Dispute{
		ID:                  it.ID,
		QuoteID:             it.QuoteID,
		PaymentID:           it.PaymentID,
		RaisedBy:            it.RaisedBy,
		RaisedByRole:        entities.Role(it.RaisedByRole),
		Reason:              it.Reason,
		Status:              entities.DisputeStatus(it.Status),
		PreviousQuoteStatus: entities.QuoteStatus(it.PreviousQuoteStatus),
		ResolutionNote:      it.ResolutionNote,
		ResolvedBy:          it.ResolvedBy,
		EvidenceKeys:        it.EvidenceKeys,
		Version:             it.Version,
		CreatedAt:           parseTime(it.CreatedAt),
		UpdatedAt:           parseTime(it.UpdatedAt),
		ResolvedAt:          parseTimePtr(it.ResolvedAt),
	}
}
