package repository

import (
	"context"

	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase/interfaces"
)

const defaultPaymentsTableName = "payments"

type paymentItem struct {
	ID                 string `dynamodbav:"id"`
	QuoteID            string `dynamodbav:"quote_id"`
	Provider           string `dynamodbav:"provider"`
	ProviderPaymentID  string `dynamodbav:"provider_payment_id,omitempty"`
	ClientSecret       string `dynamodbav:"client_secret,omitempty"`
	AmountCents        int64  `dynamodbav:"amount_cents"`
	CommissionCents    int64  `dynamodbav:"commission_cents"`
	Currency           string `dynamodbav:"currency"`
	PayerRef           string `dynamodbav:"payer_ref"`
	PayeeRef           string `dynamodbav:"payee_ref,omitempty"`
	Status             string `dynamodbav:"status"`
	Hold               bool   `dynamodbav:"hold"`
	TransferID         string `dynamodbav:"transfer_id,omitempty"`
	FailureReason      string `dynamodbav:"failure_reason,omitempty"`
	Version            int64  `dynamodbav:"version"`
	Operation          string `dynamodbav:"operation,omitempty"`
	OperationStartedAt string `dynamodbav:"operation_started_at,omitempty"`
	ProviderPayloadRaw string `dynamodbav:"provider_payload_raw,omitempty"`
	CreatedAt          string `dynamodbav:"created_at"`
	UpdatedAt          string `dynamodbav:"updated_at"`
	AuthorizedAt       string `dynamodbav:"authorized_at,omitempty"`
	CapturedAt         string `dynamodbav:"captured_at,omitempty"`
	ReleasedAt         string `dynamodbav:"released_at,omitempty"`
	VoidedAt           string `dynamodbav:"voided_at,omitempty"`
	RefundedAt         string `dynamodbav:"refunded_at,omitempty"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: quote_id-index (PK: quote_id)
//   - GSI: provider_payment_id-index (PK: provider_payment_id), sparse
type PaymentDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb DynamoAPI, tableName string) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{ddb: ddb, tableName: tableOr(tableName, defaultPaymentsTableName)}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	p.Version = 1
	if err := putNew(ctx, r.ddb, r.tableName, "id", toPaymentItem(p)); err != nil {
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	var it paymentItem
	found, err := getByID(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

// GetByProviderPaymentID reads through the GSI, which is eventually consistent;
// the record is re-read by id so the returned version is current.
func (r *PaymentDynamoRepository) GetByProviderPaymentID(ctx context.Context, providerPaymentID string) (entities.Payment, error) {
	items, err := queryAll[paymentItem](ctx, r.ddb, queryByIndex(r.tableName, PaymentsProviderIDIndex, "provider_payment_id", providerPaymentID), 1)
	if err != nil || len(items) == 0 {
		return entities.Payment{}, err
	}
	return r.GetByID(ctx, items[0].ID)
}

func (r *PaymentDynamoRepository) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.Payment, error) {
	items, err := queryAll[paymentItem](ctx, r.ddb, queryByIndex(r.tableName, PaymentsQuoteIDIndex, "quote_id", quoteID), 0)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Payment, 0, len(items))
	for _, it := range items {
		out = append(out, fromPaymentItem(it))
	}
	return out, nil
}

func (r *PaymentDynamoRepository) Update(ctx context.Context, p entities.Payment, expectedVersion int64) (entities.Payment, error) {
	p.Version = expectedVersion + 1
	if err := putVersioned(ctx, r.ddb, r.tableName, toPaymentItem(p), expectedVersion); err != nil {
		return entities.Payment{}, err
	}
	return p, nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:                 p.ID,
		QuoteID:            p.QuoteID,
		Provider:           p.Provider,
		ProviderPaymentID:  p.ProviderPaymentID,
		ClientSecret:       p.ClientSecret,
		AmountCents:        p.AmountCents,
		CommissionCents:    p.CommissionCents,
		Currency:           p.Currency,
		PayerRef:           p.PayerRef,
		PayeeRef:           p.PayeeRef,
		Status:             string(p.Status),
		Hold:               p.Hold,
		TransferID:         p.TransferID,
		FailureReason:      p.FailureReason,
		Version:            p.Version,
		Operation:          p.Operation,
		OperationStartedAt: formatTimePtr(p.OperationStartedAt),
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
		CreatedAt:          formatTime(p.CreatedAt),
		UpdatedAt:          formatTime(p.UpdatedAt),
		AuthorizedAt:       formatTimePtr(p.AuthorizedAt),
		CapturedAt:         formatTimePtr(p.CapturedAt),
		ReleasedAt:         formatTimePtr(p.ReleasedAt),
		VoidedAt:           formatTimePtr(p.VoidedAt),
		RefundedAt:         formatTimePtr(p.RefundedAt),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	p := entities.Payment{
		ID:                 it.ID,
		QuoteID:            it.QuoteID,
		Provider:           it.Provider,
		ProviderPaymentID:  it.ProviderPaymentID,
		ClientSecret:       it.ClientSecret,
		AmountCents:        it.AmountCents,
		CommissionCents:    it.CommissionCents,
		Currency:           it.Currency,
		PayerRef:           it.PayerRef,
		PayeeRef:           it.PayeeRef,
		Status:             entities.PaymentStatus(it.Status),
		Hold:               it.Hold,
		TransferID:         it.TransferID,
		FailureReason:      it.FailureReason,
		Version:            it.Version,
		Operation:          it.Operation,
		OperationStartedAt: parseTimePtr(it.OperationStartedAt),
		CreatedAt:          parseTime(it.CreatedAt),
		UpdatedAt:          parseTime(it.UpdatedAt),
		AuthorizedAt:       parseTimePtr(it.AuthorizedAt),
		CapturedAt:         parseTimePtr(it.CapturedAt),
		ReleasedAt:         parseTimePtr(it.ReleasedAt),
		VoidedAt:           parseTimePtr(it.VoidedAt),
		RefundedAt:         parseTimePtr(it.RefundedAt),
	}
	if it.ProviderPayloadRaw != "" {
		p.ProviderPayloadRaw = []byte(it.ProviderPayloadRaw)
	}
	return p
}
