package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"topreparateurs/internal/adapter/persistence/memory"
	"topreparateurs/internal/domain/entities"
	infrapayments "topreparateurs/internal/infrastructure/payments"
	"topreparateurs/internal/usecase/interfaces"

	"github.com/stretchr/testify/require"
)

var (
	testClient   = entities.Actor{ID: "client-1", Role: entities.RoleClient}
	testRepairer = entities.Actor{ID: "repairer-1", Role: entities.RoleRepairer}
	testAdmin    = entities.Actor{ID: "admin-1", Role: entities.RoleAdmin}
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Millisecond)
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type workflow struct {
	clock       *fakeClock
	processor   *infrapayments.MockProcessor
	quoteRepo   *memory.QuoteRepository
	paymentRepo *memory.PaymentRepository
	holdRepo    *memory.PaymentHoldRepository
	timeline    *TimelineRecorder
	payments    *PaymentUseCase
	quotes      *QuoteUseCase
	disputes    *DisputeUseCase
	holds       *HoldUseCase
}

func newWorkflow(t *testing.T) *workflow {
	t.Helper()
	w := &workflow{
		clock:       &fakeClock{t: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)},
		processor:   infrapayments.NewMockProcessor(),
		quoteRepo:   memory.NewQuoteRepository(),
		paymentRepo: memory.NewPaymentRepository(),
		holdRepo:    memory.NewPaymentHoldRepository(),
	}
	w.timeline = NewTimelineRecorder(memory.NewTimelineRepository())
	w.timeline.now = w.clock.Now
	w.payments = NewPaymentUseCase(w.paymentRepo, w.holdRepo, w.processor, PaymentConfig{Currency: "eur", CommissionBps: 100, HoldDuration: 14 * 24 * time.Hour})
	w.payments.now = w.clock.Now
	w.quotes = NewQuoteUseCase(w.quoteRepo, w.payments, w.timeline, "eur")
	w.quotes.now = w.clock.Now
	w.disputes = NewDisputeUseCase(memory.NewDisputeRepository(), w.quoteRepo, w.payments, nil, nil, w.timeline)
	w.disputes.now = w.clock.Now
	w.holds = NewHoldUseCase(w.holdRepo, w.quoteRepo, w.payments, w.timeline)
	return w
}

func (w *workflow) quoted(t *testing.T) entities.Quote {
	t.Helper()
	ctx := context.Background()
	q, err := w.quotes.CreateQuote(ctx, testClient, CreateQuoteInput{
		RepairerID:         testRepairer.ID,
		DeviceDescription:  "iPhone 12",
		ProblemDescription: "cracked screen",
	})
	require.NoError(t, err)
	require.Equal(t, entities.QuoteStatusPending, q.Status)

	q, err = w.quotes.SubmitOffer(ctx, testRepairer, q.ID, OfferInput{PriceCents: 8000, Description: "screen replacement", PayeeRef: "acct_repairer"})
	require.NoError(t, err)
	require.Equal(t, entities.QuoteStatusQuoted, q.Status)
	return q
}

func (w *workflow) inProgress(t *testing.T) entities.Quote {
	t.Helper()
	ctx := context.Background()
	q := w.quoted(t)
	res, err := w.quotes.AcceptQuote(ctx, testClient, q.ID, AcceptInput{PaymentMethodRef: "pm_card_visa"})
	require.NoError(t, err)
	require.Equal(t, entities.QuoteStatusAccepted, res.Quote.Status)
	q, err = w.quotes.StartWork(ctx, testRepairer, q.ID)
	require.NoError(t, err)
	require.Equal(t, entities.QuoteStatusInProgress, q.Status)
	return q
}

func (w *workflow) paymentOf(t *testing.T, quoteID string) entities.Payment {
	t.Helper()
	items, err := w.paymentRepo.ListByQuoteID(context.Background(), quoteID)
	require.NoError(t, err)
	require.NotEmpty(t, items)
	return items[len(items)-1]
}

func (w *workflow) count(op string) int {
	n := 0
	for _, c := range w.processor.Calls() {
		if c == op {
			n++
		}
	}
	return n
}

func TestWorkflow_HappyPath(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t)
	q := w.inProgress(t)

	res, err := w.quotes.ValidateCompletion(ctx, testClient, q.ID)
	require.NoError(t, err)
	require.True(t, res.Released)
	require.Equal(t, entities.QuoteStatusCompleted, res.Quote.Status)
	require.NotNil(t, res.Quote.CompletedAt)

	p := w.paymentOf(t, q.ID)
	require.Equal(t, entities.PaymentStatusSucceeded, p.Status)
	require.Equal(t, int64(8000), p.AmountCents)
	require.Equal(t, int64(80), p.CommissionCents)
	require.Equal(t, int64(7920), p.PayoutCents())
	require.Equal(t, "acct_repairer", p.PayeeRef)
	require.NotEmpty(t, p.TransferID)
	require.Empty(t, p.Operation)

	h, err := w.holdRepo.GetByPaymentID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, entities.HoldStatusReleased, h.Status)

	require.Equal(t, []string{"authorize", "capture", "release"}, w.processor.Calls())

	events, err := w.quotes.Timeline(ctx, testClient, q.ID)
	require.NoError(t, err)
	var types []string
	for _, e := range events {
		types = append(types, e.EventType)
	}
	require.Equal(t, []string{
		entities.EventQuoteCreated,
		entities.EventOfferSubmitted,
		entities.EventPaymentAuthorized,
		entities.EventQuoteAccepted,
		entities.EventWorkStarted,
		entities.EventPaymentCaptured,
		entities.EventFundsReleased,
		entities.EventQuoteCompleted,
	}, types)

	// a completed quote never moves again
	_, err = w.quotes.ValidateCompletion(ctx, testClient, q.ID)
	require.ErrorIs(t, err, entities.ErrPrecondition)
	_, err = w.quotes.Cancel(ctx, testClient, q.ID, "changed my mind")
	require.ErrorIs(t, err, entities.ErrPrecondition)
}

func TestWorkflow_DeclinedAuthorizationKeepsQuoted(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t)
	q := w.quoted(t)

	_, err := w.quotes.AcceptQuote(ctx, testClient, q.ID, AcceptInput{PaymentMethodRef: infrapayments.MockMethodDeclined})
	require.ErrorIs(t, err, ErrPaymentDeclined)
	require.ErrorIs(t, err, entities.ErrPayment)

	got, err := w.quotes.GetByID(ctx, testClient, q.ID)
	require.NoError(t, err)
	require.Equal(t, entities.QuoteStatusQuoted, got.Status)

	failed := w.paymentOf(t, q.ID)
	require.Equal(t, entities.PaymentStatusFailed, failed.Status)
	require.NotEmpty(t, failed.FailureReason)

	// the client retries with another card
	res, err := w.quotes.AcceptQuote(ctx, testClient, q.ID, AcceptInput{PaymentMethodRef: "pm_card_visa"})
	require.NoError(t, err)
	require.Equal(t, entities.QuoteStatusAccepted, res.Quote.Status)
	require.NotEqual(t, failed.ID, res.Payment.ID)
	require.Equal(t, entities.PaymentStatusAuthorized, res.Payment.Status)
}

func TestWorkflow_CaptureFailureKeepsInProgress(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t)
	q := w.inProgress(t)

	w.processor.FailNext("capture", &interfaces.ProcessorError{Provider: "mock", Message: "processor unavailable"})
	_, err := w.quotes.ValidateCompletion(ctx, testClient, q.ID)
	require.ErrorIs(t, err, entities.ErrPayment)

	got, _ := w.quotes.GetByID(ctx, testClient, q.ID)
	require.Equal(t, entities.QuoteStatusInProgress, got.Status)
	p := w.paymentOf(t, q.ID)
	require.Equal(t, entities.PaymentStatusAuthorized, p.Status)
	require.Empty(t, p.Operation)
	require.Empty(t, got.Operation)

	res, err := w.quotes.ValidateCompletion(ctx, testClient, q.ID)
	require.NoError(t, err)
	require.Equal(t, entities.QuoteStatusCompleted, res.Quote.Status)
}

func TestWorkflow_ReleaseFailureCompletesAndSweepRetries(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t)
	q := w.inProgress(t)

	w.processor.FailNext("release", &interfaces.ProcessorError{Provider: "mock", Message: "transfer failed"})
	res, err := w.quotes.ValidateCompletion(ctx, testClient, q.ID)
	require.NoError(t, err)
	require.False(t, res.Released)
	require.Equal(t, entities.QuoteStatusCompleted, res.Quote.Status)
	require.Equal(t, entities.PaymentStatusCaptured, res.Payment.Status)

	p := w.paymentOf(t, q.ID)
	h, _ := w.holdRepo.GetByPaymentID(ctx, p.ID)
	require.Equal(t, entities.HoldStatusHeld, h.Status)
	require.Equal(t, p.CapturedAt.Add(14*24*time.Hour), h.ReleaseAt)

	sweep, err := w.holds.ReleaseDue(ctx, w.clock.Now(), 10)
	require.NoError(t, err)
	require.Equal(t, 0, sweep.Examined)

	w.clock.Advance(15 * 24 * time.Hour)
	sweep, err = w.holds.ReleaseDue(ctx, w.clock.Now(), 10)
	require.NoError(t, err)
	require.Equal(t, 1, sweep.Released)

	p = w.paymentOf(t, q.ID)
	require.Equal(t, entities.PaymentStatusSucceeded, p.Status)
	h, _ = w.holdRepo.GetByPaymentID(ctx, p.ID)
	require.Equal(t, entities.HoldStatusReleased, h.Status)
	require.Equal(t, 1, w.count("capture"))
}

func TestWorkflow_CancelVoidsPendingAuthorization(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t)
	q := w.quoted(t)

	res, err := w.quotes.AcceptQuote(ctx, testClient, q.ID, AcceptInput{PaymentMethodRef: infrapayments.MockMethodAsync})
	require.NoError(t, err)
	require.Equal(t, entities.QuoteStatusQuoted, res.Quote.Status)
	require.Equal(t, entities.PaymentStatusPending, res.Payment.Status)

	cancelled, err := w.quotes.Cancel(ctx, testRepairer, q.ID, "part unavailable")
	require.NoError(t, err)
	require.Equal(t, entities.QuoteStatusCancelled, cancelled.Status)

	p := w.paymentOf(t, q.ID)
	require.Equal(t, entities.PaymentStatusVoided, p.Status)
	require.Equal(t, 1, w.count("void"))
}

func TestWorkflow_CancelAfterAcceptRejected(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t)
	q := w.inProgress(t)

	_, err := w.quotes.Cancel(ctx, testClient, q.ID, "too slow")
	require.ErrorIs(t, err, entities.ErrPrecondition)
	require.Equal(t, 0, w.count("void"))
}

func TestWorkflow_AsyncAuthorizationReconciled(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t)
	q := w.quoted(t)

	res, err := w.quotes.AcceptQuote(ctx, testClient, q.ID, AcceptInput{PaymentMethodRef: infrapayments.MockMethodAsync})
	require.NoError(t, err)
	require.Equal(t, entities.PaymentStatusPending, res.Payment.Status)

	evt := interfaces.ProcessorEvent{
		Provider:          "mock",
		EventID:           "evt_1",
		ProviderPaymentID: res.Payment.ProviderPaymentID,
		Status:            entities.PaymentStatusAuthorized,
	}
	p, err := w.quotes.ReconcilePayment(ctx, evt)
	require.NoError(t, err)
	require.Equal(t, entities.PaymentStatusAuthorized, p.Status)

	got, _ := w.quotes.GetByID(ctx, testClient, q.ID)
	require.Equal(t, entities.QuoteStatusAccepted, got.Status)

	// replayed and stale events change nothing
	_, err = w.quotes.ReconcilePayment(ctx, evt)
	require.NoError(t, err)
	stale := evt
	stale.Status = entities.PaymentStatusPending
	p, err = w.quotes.ReconcilePayment(ctx, stale)
	require.NoError(t, err)
	require.Equal(t, entities.PaymentStatusAuthorized, p.Status)

	again, _ := w.quotes.GetByID(ctx, testClient, q.ID)
	require.Equal(t, got.Version, again.Version)
}

func TestWorkflow_EventDuringCrashedOperationRedelivered(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t)
	q := w.quoted(t)

	res, err := w.quotes.AcceptQuote(ctx, testClient, q.ID, AcceptInput{PaymentMethodRef: infrapayments.MockMethodAsync})
	require.NoError(t, err)

	// a caller took the lease and died before writing its result
	p := w.paymentOf(t, q.ID)
	started := w.clock.Now()
	p.Operation = "void"
	p.OperationStartedAt = &started
	_, err = w.paymentRepo.Update(ctx, p, p.Version)
	require.NoError(t, err)

	evt := interfaces.ProcessorEvent{
		Provider:          "mock",
		EventID:           "evt_1",
		ProviderPaymentID: res.Payment.ProviderPaymentID,
		Status:            entities.PaymentStatusAuthorized,
	}
	_, err = w.quotes.ReconcilePayment(ctx, evt)
	require.ErrorIs(t, err, ErrPaymentBusy)

	w.clock.Advance(3 * time.Minute)
	got, err := w.quotes.ReconcilePayment(ctx, evt)
	require.NoError(t, err)
	require.Equal(t, entities.PaymentStatusAuthorized, got.Status)
	require.Empty(t, got.Operation)
	accepted, _ := w.quotes.GetByID(ctx, testClient, q.ID)
	require.Equal(t, entities.QuoteStatusAccepted, accepted.Status)
}

func TestWorkflow_DisputeBlocksValidationAndSweep(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t)
	q := w.inProgress(t)

	d, err := w.disputes.Raise(ctx, testClient, q.ID, "repair not done as agreed")
	require.NoError(t, err)
	require.Equal(t, entities.DisputeStatusActive, d.Status)
	require.Equal(t, entities.QuoteStatusInProgress, d.PreviousQuoteStatus)
	require.NotEmpty(t, d.PaymentID)

	_, err = w.quotes.ValidateCompletion(ctx, testClient, q.ID)
	require.ErrorIs(t, err, entities.ErrPrecondition)
	require.Equal(t, 0, w.count("capture"))

	active, err := w.disputes.ActiveForQuote(ctx, q.ID)
	require.NoError(t, err)
	require.Equal(t, d.ID, active.ID)

	// a second dispute cannot be opened on a disputed quote
	_, err = w.disputes.Raise(ctx, testRepairer, q.ID, "client unreachable")
	require.ErrorIs(t, err, entities.ErrPrecondition)

	res, err := w.disputes.Resolve(ctx, testAdmin, d.ID, ResolveInput{Outcome: entities.DisputeOutcomeRelease, Note: "photos confirm repair"})
	require.NoError(t, err)
	require.Equal(t, entities.DisputeStatusResolvedRelease, res.Dispute.Status)
	require.Equal(t, entities.QuoteStatusCompleted, res.Quote.Status)
	require.Equal(t, entities.PaymentStatusSucceeded, res.Payment.Status)
	require.Equal(t, testAdmin.ID, res.Dispute.ResolvedBy)

	_, err = w.disputes.Resolve(ctx, testAdmin, d.ID, ResolveInput{Outcome: entities.DisputeOutcomeRefund})
	require.ErrorIs(t, err, ErrDisputeNotActive)
}

func TestWorkflow_DisputeRefundBeforeCaptureVoids(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t)
	q := w.inProgress(t)

	d, err := w.disputes.Raise(ctx, testRepairer, q.ID, "client did not bring the device")
	require.NoError(t, err)

	res, err := w.disputes.Resolve(ctx, testAdmin, d.ID, ResolveInput{Outcome: entities.DisputeOutcomeRefund})
	require.NoError(t, err)
	require.Equal(t, entities.QuoteStatusCancelled, res.Quote.Status)
	require.Equal(t, entities.PaymentStatusVoided, res.Payment.Status)
	require.Equal(t, 0, w.count("capture"))
	require.Equal(t, 0, w.count("refund"))
}

func TestWorkflow_DisputeRefundAfterCapture(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t)
	q := w.inProgress(t)

	d, err := w.disputes.Raise(ctx, testClient, q.ID, "device still broken")
	require.NoError(t, err)

	// release attempt captures, then the payout fails: funds stay held
	w.processor.FailNext("release", &interfaces.ProcessorError{Provider: "mock", Message: "transfer failed"})
	_, err = w.disputes.Resolve(ctx, testAdmin, d.ID, ResolveInput{Outcome: entities.DisputeOutcomeRelease})
	require.ErrorIs(t, err, entities.ErrPayment)

	p := w.paymentOf(t, q.ID)
	require.Equal(t, entities.PaymentStatusCaptured, p.Status)
	got, _ := w.quotes.GetByID(ctx, testAdmin, q.ID)
	require.Equal(t, entities.QuoteStatusDisputed, got.Status)

	// the hold sweep leaves disputed quotes alone
	w.clock.Advance(30 * 24 * time.Hour)
	sweep, err := w.holds.ReleaseDue(ctx, w.clock.Now(), 10)
	require.NoError(t, err)
	require.Equal(t, 1, sweep.Skipped)
	require.Equal(t, 0, sweep.Released)

	res, err := w.disputes.Resolve(ctx, testAdmin, d.ID, ResolveInput{Outcome: entities.DisputeOutcomeRefund, Note: "second opinion"})
	require.NoError(t, err)
	require.Equal(t, entities.PaymentStatusRefunded, res.Payment.Status)
	require.Equal(t, entities.QuoteStatusCancelled, res.Quote.Status)

	h, _ := w.holdRepo.GetByPaymentID(ctx, p.ID)
	require.Equal(t, entities.HoldStatusRefunded, h.Status)
	require.Equal(t, 1, w.count("capture"))
	require.Equal(t, 1, w.count("refund"))
}

func TestWorkflow_ConcurrentValidationCapturesOnce(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t)
	q := w.inProgress(t)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := w.quotes.ValidateCompletion(ctx, testClient, q.ID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			if !errors.Is(err, entities.ErrConflict) && !errors.Is(err, entities.ErrPrecondition) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	require.LessOrEqual(t, successes, 1)
	require.Equal(t, 1, w.count("capture"))
	if successes == 0 {
		// every racer lost a version check; a plain retry finishes the job
		_, err := w.quotes.ValidateCompletion(ctx, testClient, q.ID)
		require.NoError(t, err)
	}
	got, _ := w.quotes.GetByID(ctx, testClient, q.ID)
	require.Equal(t, entities.QuoteStatusCompleted, got.Status)
	require.Equal(t, 1, w.count("capture"))
	require.Equal(t, 1, w.count("release"))
}

// hookedProcessor runs beforeCapture ahead of the wrapped processor's capture.
type hookedProcessor struct {
	interfaces.IPaymentProcessor
	beforeCapture func()
}

func (p *hookedProcessor) Capture(ctx context.Context, providerPaymentID string, amountCents int64) (interfaces.ProcessorResult, error) {
	if p.beforeCapture != nil {
		p.beforeCapture()
	}
	return p.IPaymentProcessor.Capture(ctx, providerPaymentID, amountCents)
}

func TestWorkflow_DisputeDuringValidationRejected(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t)
	q := w.inProgress(t)

	var raiseErr error
	w.payments.processor = &hookedProcessor{
		IPaymentProcessor: w.processor,
		beforeCapture: func() {
			_, raiseErr = w.disputes.Raise(ctx, testRepairer, q.ID, "client unreachable")
		},
	}

	res, err := w.quotes.ValidateCompletion(ctx, testClient, q.ID)
	require.NoError(t, err)
	require.True(t, res.Released)
	require.ErrorIs(t, raiseErr, ErrQuoteBusy)
	require.ErrorIs(t, raiseErr, entities.ErrConflict)

	got, _ := w.quotes.GetByID(ctx, testClient, q.ID)
	require.Equal(t, entities.QuoteStatusCompleted, got.Status)
	require.Empty(t, got.Operation)
	active, err := w.disputes.ActiveForQuote(ctx, q.ID)
	require.NoError(t, err)
	require.Empty(t, active.ID)
	require.Equal(t, 1, w.count("release"))
}

func TestWorkflow_CaptureFailureReleasesQuoteClaim(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t)
	q := w.inProgress(t)

	w.processor.FailNext("capture", &interfaces.ProcessorError{Provider: "mock", Message: "processor unavailable"})
	_, err := w.quotes.ValidateCompletion(ctx, testClient, q.ID)
	require.ErrorIs(t, err, entities.ErrPayment)

	got, _ := w.quotes.GetByID(ctx, testClient, q.ID)
	require.Empty(t, got.Operation)
	d, err := w.disputes.Raise(ctx, testClient, q.ID, "repair stalled")
	require.NoError(t, err)
	require.Equal(t, entities.DisputeStatusActive, d.Status)
}

func TestWorkflow_StaleHoldSweepPaysOnce(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t)
	q := w.inProgress(t)

	res, err := w.quotes.ValidateCompletion(ctx, testClient, q.ID)
	require.NoError(t, err)
	require.True(t, res.Released)

	// a hold close that failed after the payout leaves the hold open
	h, err := w.holdRepo.GetByID(ctx, holdIDFor(res.Payment.ID))
	require.NoError(t, err)
	require.Equal(t, entities.HoldStatusReleased, h.Status)
	h.Status = entities.HoldStatusHeld
	h.ReleasedAt = nil
	_, err = w.holdRepo.Update(ctx, h, h.Version)
	require.NoError(t, err)

	w.clock.Advance(15 * 24 * time.Hour)
	for i := 0; i < 3; i++ {
		_, err := w.holds.ReleaseDue(ctx, w.clock.Now(), 10)
		require.NoError(t, err)
	}

	h, _ = w.holdRepo.GetByID(ctx, h.ID)
	require.Equal(t, entities.HoldStatusReleased, h.Status)
	require.Equal(t, 1, w.count("release"))

	events, err := w.quotes.Timeline(ctx, testClient, q.ID)
	require.NoError(t, err)
	released := 0
	for _, e := range events {
		if e.EventType == entities.EventFundsReleased {
			released++
		}
	}
	require.Equal(t, 1, released)
}

func TestWorkflow_OwnershipEnforced(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(t)
	q := w.quoted(t)
	stranger := entities.Actor{ID: "client-2", Role: entities.RoleClient}

	_, err := w.quotes.AcceptQuote(ctx, stranger, q.ID, AcceptInput{PaymentMethodRef: "pm_card_visa"})
	require.ErrorIs(t, err, ErrForbidden)
	_, err = w.quotes.AcceptQuote(ctx, testRepairer, q.ID, AcceptInput{})
	require.ErrorIs(t, err, entities.ErrAuthorization)
	_, err = w.quotes.GetByID(ctx, stranger, q.ID)
	require.ErrorIs(t, err, ErrForbidden)
	_, err = w.quotes.GetByID(ctx, entities.Actor{}, q.ID)
	require.ErrorIs(t, err, ErrUnauthenticated)
	require.Empty(t, w.processor.Calls())

	list, err := w.quotes.List(ctx, stranger, ListFilter{})
	require.NoError(t, err)
	require.Empty(t, list)

	list, err = w.quotes.List(ctx, testAdmin, ListFilter{RepairerID: testRepairer.ID, Status: entities.QuoteStatusQuoted})
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = w.quotes.List(ctx, testAdmin, ListFilter{})
	require.ErrorIs(t, err, ErrInvalidListFilter)
}
