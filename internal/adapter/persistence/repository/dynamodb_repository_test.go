package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"topreparateurs/internal/domain/entities"

	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 123456789, time.UTC)

func TestTimeLayoutSortsLexicographically(t *testing.T) {
	a := formatTime(t0)
	b := formatTime(t0.Add(time.Nanosecond))
	c := formatTime(t0.Add(10 * time.Hour))
	require.Less(t, a, b)
	require.Less(t, b, c)
	require.Len(t, a, len(c))
	require.True(t, parseTime(a).Equal(t0))
	require.True(t, parseTime("2026-03-01T10:00:00Z").Equal(t0.Truncate(time.Second)))
	require.Nil(t, parseTimePtr(""))
	require.Equal(t, "", formatTime(time.Time{}))
}

func TestQuoteDynamoRepository_VersionedUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewQuoteDynamoRepository(newFakeDynamo(), "")

	q, err := repo.Create(ctx, entities.Quote{
		ID: "q-1", ClientID: "c-1", RepairerID: "r-1", Status: entities.QuoteStatusPending,
		RequestedPriceCents: 5000, Currency: "eur", CreatedAt: t0, UpdatedAt: t0,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), q.Version)

	_, err = repo.Create(ctx, q)
	require.ErrorIs(t, err, entities.ErrConflict)

	q.Status = entities.QuoteStatusQuoted
	q.Stamp(entities.QuoteStatusQuoted, t0.Add(time.Minute))
	updated, err := repo.Update(ctx, q, 1)
	require.NoError(t, err)
	require.Equal(t, int64(2), updated.Version)

	_, err = repo.Update(ctx, q, 1)
	require.ErrorIs(t, err, entities.ErrVersionConflict)
	require.ErrorIs(t, err, entities.ErrConflict)

	got, err := repo.GetByID(ctx, "q-1")
	require.NoError(t, err)
	require.Equal(t, entities.QuoteStatusQuoted, got.Status)
	require.Equal(t, int64(2), got.Version)
	require.NotNil(t, got.QuotedAt)
	require.True(t, got.QuotedAt.Equal(t0.Add(time.Minute)))
	require.Nil(t, got.AcceptedAt)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	require.Equal(t, "", missing.ID)

	claimedAt := t0.Add(2 * time.Minute)
	got.Operation = "validate"
	got.OperationStartedAt = &claimedAt
	_, err = repo.Update(ctx, got, got.Version)
	require.NoError(t, err)
	got, err = repo.GetByID(ctx, "q-1")
	require.NoError(t, err)
	require.Equal(t, "validate", got.Operation)
	require.True(t, got.Busy(claimedAt.Add(time.Second), time.Minute))

	_, err = repo.Update(ctx, entities.Quote{ID: "nope"}, 1)
	require.True(t, errors.Is(err, entities.ErrVersionConflict))
}

func TestQuoteDynamoRepository_ListByParty(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamo()
	fake.pageSize = 1
	repo := NewQuoteDynamoRepository(fake, "quotes")

	for i, id := range []string{"q-1", "q-2", "q-3"} {
		repairer := "r-1"
		if id == "q-3" {
			repairer = "r-2"
		}
		_, err := repo.Create(ctx, entities.Quote{ID: id, ClientID: "c-1", RepairerID: repairer, CreatedAt: t0.Add(time.Duration(i) * time.Hour)})
		require.NoError(t, err)
	}

	byClient, err := repo.ListByClientID(ctx, "c-1")
	require.NoError(t, err)
	require.Len(t, byClient, 3)
	require.Greater(t, fake.queries, 1)

	byRepairer, err := repo.ListByRepairerID(ctx, "r-2")
	require.NoError(t, err)
	require.Len(t, byRepairer, 1)
	require.Equal(t, "q-3", byRepairer[0].ID)
}

func TestPaymentDynamoRepository_RoundTripAndLookups(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentDynamoRepository(newFakeDynamo(), "")
	started := t0.Add(time.Second)

	p, err := repo.Create(ctx, entities.Payment{
		ID: "pay-1", QuoteID: "q-1", Provider: "stripe", ProviderPaymentID: "pi_1", ClientSecret: "pi_1_secret",
		AmountCents: 8000, CommissionCents: 80, Currency: "eur", PayerRef: "c-1", PayeeRef: "acct_1",
		Status: entities.PaymentStatusAuthorized, Hold: true, Operation: "capture", OperationStartedAt: &started,
		ProviderPayloadRaw: json.RawMessage(`{"id":"pi_1"}`), CreatedAt: t0, UpdatedAt: t0, AuthorizedAt: &t0,
	})
	require.NoError(t, err)
	_, err = repo.Create(ctx, entities.Payment{ID: "pay-2", QuoteID: "q-1", Status: entities.PaymentStatusFailed, CreatedAt: t0})
	require.NoError(t, err)

	got, err := repo.GetByProviderPaymentID(ctx, "pi_1")
	require.NoError(t, err)
	require.Equal(t, p.ID, got.ID)
	require.Equal(t, "pi_1_secret", got.ClientSecret)
	require.Equal(t, "capture", got.Operation)
	require.True(t, got.OperationStartedAt.Equal(started))
	require.JSONEq(t, `{"id":"pi_1"}`, string(got.ProviderPayloadRaw))
	require.True(t, got.Busy(started.Add(time.Second), time.Minute))

	none, err := repo.GetByProviderPaymentID(ctx, "pi_unknown")
	require.NoError(t, err)
	require.Equal(t, "", none.ID)

	list, err := repo.ListByQuoteID(ctx, "q-1")
	require.NoError(t, err)
	require.Len(t, list, 2)

	got.Operation = ""
	got.OperationStartedAt = nil
	got.Stamp(entities.PaymentStatusCaptured, t0.Add(time.Hour))
	_, err = repo.Update(ctx, got, got.Version)
	require.NoError(t, err)
	reread, err := repo.GetByID(ctx, "pay-1")
	require.NoError(t, err)
	require.Equal(t, entities.PaymentStatusCaptured, reread.Status)
	require.Nil(t, reread.OperationStartedAt)
	require.NotNil(t, reread.CapturedAt)
}

func TestPaymentHoldDynamoRepository_ListDue(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamo()
	fake.pageSize = 2
	repo := NewPaymentHoldDynamoRepository(fake, "")

	seed := []entities.PaymentHold{
		{ID: "h-late", PaymentID: "pay-3", ReleaseAt: t0.Add(48 * time.Hour), Status: entities.HoldStatusHeld},
		{ID: "h-old", PaymentID: "pay-1", ReleaseAt: t0.Add(-48 * time.Hour), Status: entities.HoldStatusHeld},
		{ID: "h-due", PaymentID: "pay-2", ReleaseAt: t0.Add(-time.Hour), Status: entities.HoldStatusHeld},
		{ID: "h-done", PaymentID: "pay-4", ReleaseAt: t0.Add(-72 * time.Hour), Status: entities.HoldStatusReleased},
		{ID: "h-edge", PaymentID: "pay-5", ReleaseAt: t0, Status: entities.HoldStatusHeld},
	}
	for _, h := range seed {
		_, err := repo.Create(ctx, h)
		require.NoError(t, err)
	}

	due, err := repo.ListDue(ctx, t0, 0)
	require.NoError(t, err)
	ids := make([]string, 0, len(due))
	for _, h := range due {
		ids = append(ids, h.ID)
	}
	require.Equal(t, []string{"h-old", "h-due", "h-edge"}, ids)

	limited, err := repo.ListDue(ctx, t0, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	require.Equal(t, "h-old", limited[0].ID)

	h, err := repo.GetByPaymentID(ctx, "pay-2")
	require.NoError(t, err)
	require.Equal(t, "h-due", h.ID)

	released := t0
	h.Status = entities.HoldStatusReleased
	h.ReleasedAt = &released
	_, err = repo.Update(ctx, h, h.Version)
	require.NoError(t, err)

	due, err = repo.ListDue(ctx, t0, 0)
	require.NoError(t, err)
	require.Len(t, due, 2)

	byKey, err := repo.GetByID(ctx, "h-due")
	require.NoError(t, err)
	require.Equal(t, entities.HoldStatusReleased, byKey.Status)
	_, err = repo.Create(ctx, entities.PaymentHold{ID: "h-due", PaymentID: "pay-2"})
	require.ErrorIs(t, err, entities.ErrConflict)
}

func TestTimelineDynamoRepository_AppendOnlyChronological(t *testing.T) {
	ctx := context.Background()
	repo := NewTimelineDynamoRepository(newFakeDynamo(), "")

	events := []entities.TimelineEvent{
		{ID: "e-2", QuoteID: "q-1", EventType: entities.EventOfferSubmitted, CreatedAt: t0.Add(time.Minute)},
		{ID: "e-1", QuoteID: "q-1", EventType: entities.EventQuoteCreated, CreatedAt: t0, Data: map[string]any{"price_cents": 5000}},
		{ID: "e-3", QuoteID: "q-2", EventType: entities.EventQuoteCreated, CreatedAt: t0},
	}
	for _, e := range events {
		require.NoError(t, repo.Append(ctx, e))
	}
	require.ErrorIs(t, repo.Append(ctx, events[0]), entities.ErrConflict)

	got, err := repo.ListByQuoteID(ctx, "q-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "e-1", got[0].ID)
	require.Equal(t, "e-2", got[1].ID)
	require.EqualValues(t, 5000, got[0].Data["price_cents"])
}

func TestDisputeDynamoRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewDisputeDynamoRepository(newFakeDynamo(), "")

	d, err := repo.Create(ctx, entities.Dispute{
		ID: "d-1", QuoteID: "q-1", RaisedBy: "c-1", RaisedByRole: entities.RoleClient, Reason: "screen still broken",
		Status: entities.DisputeStatusActive, PreviousQuoteStatus: entities.QuoteStatusInProgress, CreatedAt: t0,
	})
	require.NoError(t, err)

	d.EvidenceKeys = append(d.EvidenceKeys, "disputes/d-1/a.jpg")
	d, err = repo.Update(ctx, d, d.Version)
	require.NoError(t, err)
	require.Equal(t, int64(2), d.Version)

	list, err := repo.ListByQuoteID(ctx, "q-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, []string{"disputes/d-1/a.jpg"}, list[0].EvidenceKeys)
	require.Equal(t, entities.QuoteStatusInProgress, list[0].PreviousQuoteStatus)
	require.True(t, list[0].Active())
}
