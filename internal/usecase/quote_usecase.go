package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase/interfaces"
	"topreparateurs/pkg/logger"

	"github.com/google/uuid"
)

type CreateQuoteInput struct {
	RepairerID          string
	DeviceDescription   string
	ProblemDescription  string
	RequestedPriceCents int64
}

type OfferInput struct {
	PriceCents  int64
	Description string
	PayeeRef    string
}

type AcceptInput struct {
	PaymentMethodRef string
}

// ListFilter narrows quote listings. Clients and repairers always see their
// own quotes; admins must name a client or a repairer.
type ListFilter struct {
	ClientID   string
	RepairerID string
	Status     entities.QuoteStatus
}

// AcceptResult is the quote after acceptance plus the payment that backs it.
// When the processor confirms asynchronously the quote is still quoted and the
// payment pending.
type AcceptResult struct {
	Quote   entities.Quote
	Payment entities.Payment
}

// CompletionResult reports the outcome of a client validation. Released is
// false when the funds were captured but the payout has to be retried.
type CompletionResult struct {
	Quote    entities.Quote
	Payment  entities.Payment
	Released bool
}

// IQuoteUseCase is the quote state machine. Every operation resolves the
// transition with entities.NextQuoteStatus and persists it with a version check.
type IQuoteUseCase interface {
	CreateQuote(ctx context.Context, actor entities.Actor, in CreateQuoteInput) (entities.Quote, error)
	SubmitOffer(ctx context.Context, actor entities.Actor, quoteID string, in OfferInput) (entities.Quote, error)
	AcceptQuote(ctx context.Context, actor entities.Actor, quoteID string, in AcceptInput) (AcceptResult, error)
	StartWork(ctx context.Context, actor entities.Actor, quoteID string) (entities.Quote, error)
	ValidateCompletion(ctx context.Context, actor entities.Actor, quoteID string) (CompletionResult, error)
	Cancel(ctx context.Context, actor entities.Actor, quoteID, reason string) (entities.Quote, error)
	GetByID(ctx context.Context, actor entities.Actor, quoteID string) (entities.Quote, error)
	List(ctx context.Context, actor entities.Actor, filter ListFilter) ([]entities.Quote, error)
	Timeline(ctx context.Context, actor entities.Actor, quoteID string) ([]entities.TimelineEvent, error)
	Payments(ctx context.Context, actor entities.Actor, quoteID string) ([]entities.Payment, error)
	ReconcilePayment(ctx context.Context, evt interfaces.ProcessorEvent) (entities.Payment, error)
}

type QuoteUseCase struct {
	repo     interfaces.IQuoteRepository
	payments IPaymentUseCase
	timeline *TimelineRecorder
	currency string
	now      func() time.Time
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(repo interfaces.IQuoteRepository, payments IPaymentUseCase, timeline *TimelineRecorder, currency string) *QuoteUseCase {
	currency = strings.ToLower(strings.TrimSpace(currency))
	if currency == "" {
		currency = entities.DefaultCurrency
	}
	return &QuoteUseCase{repo: repo, payments: payments, timeline: timeline, currency: currency, now: utcNow}
}

func (u *QuoteUseCase) CreateQuote(ctx context.Context, actor entities.Actor, in CreateQuoteInput) (entities.Quote, error) {
	if err := requireRole(actor, entities.RoleClient); err != nil {
		return entities.Quote{}, err
	}
	in.RepairerID = strings.TrimSpace(in.RepairerID)
	in.DeviceDescription = strings.TrimSpace(in.DeviceDescription)
	in.ProblemDescription = strings.TrimSpace(in.ProblemDescription)
	if in.RepairerID == "" {
		return entities.Quote{}, ErrInvalidRepairerID
	}
	if in.DeviceDescription == "" {
		return entities.Quote{}, ErrInvalidDevice
	}
	if in.ProblemDescription == "" {
		return entities.Quote{}, ErrInvalidProblem
	}
	if in.RequestedPriceCents < 0 {
		return entities.Quote{}, ErrInvalidRequestedPrice
	}
	if in.RequestedPriceCents > entities.MaxAmountCents {
		return entities.Quote{}, ErrAmountTooLarge
	}

	now := u.now()
	q := entities.Quote{
		ID:                  uuid.NewString(),
		ClientID:            actor.ID,
		RepairerID:          in.RepairerID,
		DeviceDescription:   in.DeviceDescription,
		ProblemDescription:  in.ProblemDescription,
		RequestedPriceCents: in.RequestedPriceCents,
		Currency:            u.currency,
		Status:              entities.QuoteStatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	created, err := u.repo.Create(ctx, q)
	if err != nil {
		logger.Error(ctx, "[quote][usecase] create failed", "client_id", actor.ID, "err", err)
		return entities.Quote{}, err
	}
	logger.Info(ctx, "[quote][usecase] created", "quote_id", created.ID, "repairer_id", created.RepairerID)
	u.timeline.Record(ctx, created.ID, actor, entities.EventQuoteCreated, "Quote requested", created.DeviceDescription, map[string]any{
		"requested_price_cents": created.RequestedPriceCents,
	})
	return created, nil
}

func (u *QuoteUseCase) SubmitOffer(ctx context.Context, actor entities.Actor, quoteID string, in OfferInput) (entities.Quote, error) {
	in.Description = strings.TrimSpace(in.Description)
	in.PayeeRef = strings.TrimSpace(in.PayeeRef)
	if in.PriceCents <= 0 {
		return entities.Quote{}, ErrInvalidPrice
	}
	if in.PriceCents > entities.MaxAmountCents {
		return entities.Quote{}, ErrAmountTooLarge
	}
	if in.Description == "" {
		return entities.Quote{}, ErrInvalidOfferDescription
	}
	q, err := u.load(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	if err := requireRepairer(actor, q); err != nil {
		return entities.Quote{}, err
	}
	t, err := entities.NextQuoteStatus(q.Status, entities.QuoteEventSubmitOffer)
	if err != nil {
		return entities.Quote{}, err
	}

	q.QuotedPriceCents = in.PriceCents
	q.OfferDescription = in.Description
	if in.PayeeRef != "" {
		q.PayeeRef = in.PayeeRef
	}
	q.Stamp(t.To, u.now())
	saved, err := u.repo.Update(ctx, q, q.Version)
	if err != nil {
		return entities.Quote{}, err
	}
	logger.Info(ctx, "[quote][usecase] offer submitted", "quote_id", saved.ID, "price_cents", saved.QuotedPriceCents)
	u.timeline.Record(ctx, saved.ID, actor, entities.EventOfferSubmitted, "Offer submitted", saved.OfferDescription, map[string]any{
		"quoted_price_cents": saved.QuotedPriceCents,
	})
	return saved, nil
}

// AcceptQuote authorizes the quoted price before the quote moves to accepted.
// A declined authorization leaves the quote untouched.
func (u *QuoteUseCase) AcceptQuote(ctx context.Context, actor entities.Actor, quoteID string, in AcceptInput) (AcceptResult, error) {
	q, err := u.load(ctx, quoteID)
	if err != nil {
		return AcceptResult{}, err
	}
	if err := requireClient(actor, q); err != nil {
		return AcceptResult{}, err
	}
	t, err := entities.NextQuoteStatus(q.Status, entities.QuoteEventAccept)
	if err != nil {
		return AcceptResult{}, err
	}

	if q, err = claimQuote(ctx, u.repo, q, "", u.now()); err != nil {
		return AcceptResult{}, err
	}
	payment, err := u.reusablePayment(ctx, q.ID)
	if err != nil {
		return AcceptResult{}, err
	}
	if payment.ID == "" {
		payee := q.PayeeRef
		if payee == "" {
			payee = q.RepairerID
		}
		payment, err = u.payments.Authorize(ctx, AuthorizeInput{
			QuoteID:          q.ID,
			AmountCents:      q.QuotedPriceCents,
			PayerRef:         q.ClientID,
			PayeeRef:         payee,
			PaymentMethodRef: in.PaymentMethodRef,
			Description:      fmt.Sprintf("Repair quote %s", q.ID),
		})
		if err != nil {
			logger.Warn(ctx, "[quote][usecase] authorization failed", "quote_id", q.ID, "err", err)
			u.timeline.Record(ctx, q.ID, actor, entities.EventPaymentFailed, "Payment authorization failed", err.Error(), nil)
			return AcceptResult{}, err
		}
	}

	if payment.Status == entities.PaymentStatusPending {
		logger.Info(ctx, "[quote][usecase] authorization pending", "quote_id", q.ID, "payment_id", payment.ID)
		u.timeline.Record(ctx, q.ID, actor, entities.EventPaymentPending, "Payment awaiting confirmation", "", map[string]any{
			"payment_id": payment.ID,
		})
		return AcceptResult{Quote: q, Payment: payment}, nil
	}

	q.Stamp(t.To, u.now())
	saved, err := u.repo.Update(ctx, q, q.Version)
	if err != nil {
		// the processor webhook may have accepted the quote first
		if cur, gErr := u.repo.GetByID(ctx, q.ID); gErr == nil && cur.Status == entities.QuoteStatusAccepted {
			return AcceptResult{Quote: cur, Payment: payment}, nil
		}
		logger.Warn(ctx, "[quote][usecase] accept persist failed, voiding authorization", "quote_id", q.ID,
			"payment_id", payment.ID, "err", err)
		if _, vErr := u.payments.Void(ctx, payment.ID); vErr != nil {
			logger.Error(ctx, "[quote][usecase] compensating void failed", "quote_id", q.ID, "payment_id", payment.ID, "err", vErr)
		}
		return AcceptResult{}, err
	}
	logger.Info(ctx, "[quote][usecase] accepted", "quote_id", saved.ID, "payment_id", payment.ID)
	u.timeline.Record(ctx, saved.ID, actor, entities.EventPaymentAuthorized, "Payment authorized", "", map[string]any{
		"payment_id":   payment.ID,
		"amount_cents": payment.AmountCents,
	})
	u.timeline.Record(ctx, saved.ID, actor, entities.EventQuoteAccepted, "Quote accepted", "", nil)
	return AcceptResult{Quote: saved, Payment: payment}, nil
}

func (u *QuoteUseCase) StartWork(ctx context.Context, actor entities.Actor, quoteID string) (entities.Quote, error) {
	q, err := u.load(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	if err := requireRepairer(actor, q); err != nil {
		return entities.Quote{}, err
	}
	t, err := entities.NextQuoteStatus(q.Status, entities.QuoteEventStartWork)
	if err != nil {
		return entities.Quote{}, err
	}
	q.Stamp(t.To, u.now())
	saved, err := u.repo.Update(ctx, q, q.Version)
	if err != nil {
		return entities.Quote{}, err
	}
	u.timeline.Record(ctx, saved.ID, actor, entities.EventWorkStarted, "Repair started", "", nil)
	return saved, nil
}

// ValidateCompletion captures the authorized funds, then releases them to the
// repairer. Capture failure keeps the quote in progress. Release failure still
// completes the quote: the funds stay captured and held until a retry. The
// quote's claim lease is held from capture to completion, so no dispute opens
// in between.
func (u *QuoteUseCase) ValidateCompletion(ctx context.Context, actor entities.Actor, quoteID string) (CompletionResult, error) {
	q, err := u.load(ctx, quoteID)
	if err != nil {
		return CompletionResult{}, err
	}
	if err := requireClient(actor, q); err != nil {
		return CompletionResult{}, err
	}
	t, err := entities.NextQuoteStatus(q.Status, entities.QuoteEventValidate)
	if err != nil {
		return CompletionResult{}, err
	}

	payment, err := u.payments.ActiveForQuote(ctx, q.ID)
	if err != nil {
		return CompletionResult{}, err
	}
	if payment.ID == "" || !(payment.Status == entities.PaymentStatusAuthorized || payment.Status.Settled()) {
		return CompletionResult{}, ErrNoActivePayment
	}

	if q, err = claimQuote(ctx, u.repo, q, opValidate, u.now()); err != nil {
		return CompletionResult{}, err
	}
	captured, err := u.payments.Capture(ctx, payment.ID)
	if err != nil {
		logger.Warn(ctx, "[quote][usecase] capture failed", "quote_id", q.ID, "payment_id", payment.ID, "err", err)
		releaseClaim(ctx, u.repo, q, u.now())
		u.timeline.Record(ctx, q.ID, actor, entities.EventCaptureFailed, "Payment capture failed", err.Error(), map[string]any{
			"payment_id": payment.ID,
		})
		return CompletionResult{}, err
	}
	u.timeline.Record(ctx, q.ID, actor, entities.EventPaymentCaptured, "Payment captured", "", map[string]any{
		"payment_id":   captured.ID,
		"amount_cents": captured.AmountCents,
	})

	result := CompletionResult{Payment: captured}
	released, relErr := u.payments.Release(ctx, captured.ID)
	if relErr != nil {
		logger.Error(ctx, "[quote][usecase] release failed, funds stay held", "quote_id", q.ID, "payment_id", captured.ID, "err", relErr)
		u.timeline.Record(ctx, q.ID, actor, entities.EventReleaseFailed, "Fund release failed", relErr.Error(), map[string]any{
			"payment_id": captured.ID,
		})
	} else {
		result.Payment = released
		result.Released = true
		u.timeline.Record(ctx, q.ID, actor, entities.EventFundsReleased, "Funds released to repairer", "", map[string]any{
			"payment_id":   released.ID,
			"payout_cents": released.PayoutCents(),
		})
	}

	q.Operation = ""
	q.OperationStartedAt = nil
	q.Stamp(t.To, u.now())
	saved, err := u.repo.Update(ctx, q, q.Version)
	if err != nil {
		logger.Error(ctx, "[quote][usecase] completion persist failed", "quote_id", q.ID, "payment_id", captured.ID, "err", err)
		return CompletionResult{}, err
	}
	result.Quote = saved
	logger.Info(ctx, "[quote][usecase] completed", "quote_id", saved.ID, "released", result.Released)
	u.timeline.Record(ctx, saved.ID, actor, entities.EventQuoteCompleted, "Repair validated", "", nil)
	return result, nil
}

// Cancel closes a quote before work starts and voids any live authorization.
func (u *QuoteUseCase) Cancel(ctx context.Context, actor entities.Actor, quoteID, reason string) (entities.Quote, error) {
	q, err := u.load(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	if !q.IsParty(actor) && actor.Role != entities.RoleAdmin {
		return entities.Quote{}, forbiddenOrUnauthenticated(actor)
	}
	t, err := entities.NextQuoteStatus(q.Status, entities.QuoteEventCancel)
	if err != nil {
		return entities.Quote{}, err
	}

	if q, err = claimQuote(ctx, u.repo, q, "", u.now()); err != nil {
		return entities.Quote{}, err
	}
	payments, err := u.payments.ListByQuoteID(ctx, q.ID)
	if err != nil {
		return entities.Quote{}, err
	}
	for _, p := range payments {
		if p.Status != entities.PaymentStatusPending && p.Status != entities.PaymentStatusAuthorized {
			continue
		}
		voided, err := u.payments.Void(ctx, p.ID)
		if err != nil {
			logger.Warn(ctx, "[quote][usecase] void on cancel failed", "quote_id", q.ID, "payment_id", p.ID, "err", err)
			return entities.Quote{}, err
		}
		u.timeline.Record(ctx, q.ID, actor, entities.EventAuthorizationVoid, "Payment authorization voided", "", map[string]any{
			"payment_id": voided.ID,
		})
	}

	q.Stamp(t.To, u.now())
	saved, err := u.repo.Update(ctx, q, q.Version)
	if err != nil {
		return entities.Quote{}, err
	}
	logger.Info(ctx, "[quote][usecase] cancelled", "quote_id", saved.ID, "by", actor.Role)
	u.timeline.Record(ctx, saved.ID, actor, entities.EventQuoteCancelled, "Quote cancelled", strings.TrimSpace(reason), nil)
	return saved, nil
}

func (u *QuoteUseCase) GetByID(ctx context.Context, actor entities.Actor, quoteID string) (entities.Quote, error) {
	q, err := u.load(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	if err := requireVisible(actor, q); err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (u *QuoteUseCase) List(ctx context.Context, actor entities.Actor, filter ListFilter) ([]entities.Quote, error) {
	filter.ClientID = strings.TrimSpace(filter.ClientID)
	filter.RepairerID = strings.TrimSpace(filter.RepairerID)

	var (
		items []entities.Quote
		err   error
	)
	switch {
	case actor.ID == "":
		return nil, ErrUnauthenticated
	case actor.Role == entities.RoleClient:
		items, err = u.repo.ListByClientID(ctx, actor.ID)
	case actor.Role == entities.RoleRepairer:
		items, err = u.repo.ListByRepairerID(ctx, actor.ID)
	case actor.IsPrivileged() && filter.ClientID != "":
		items, err = u.repo.ListByClientID(ctx, filter.ClientID)
	case actor.IsPrivileged() && filter.RepairerID != "":
		items, err = u.repo.ListByRepairerID(ctx, filter.RepairerID)
	case actor.IsPrivileged():
		return nil, ErrInvalidListFilter
	default:
		return nil, ErrForbidden
	}
	if err != nil {
		return nil, err
	}

	out := make([]entities.Quote, 0, len(items))
	for _, q := range items {
		if filter.Status != "" && q.Status != filter.Status {
			continue
		}
		out = append(out, q)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (u *QuoteUseCase) Timeline(ctx context.Context, actor entities.Actor, quoteID string) ([]entities.TimelineEvent, error) {
	q, err := u.GetByID(ctx, actor, quoteID)
	if err != nil {
		return nil, err
	}
	return u.timeline.List(ctx, q.ID)
}

func (u *QuoteUseCase) Payments(ctx context.Context, actor entities.Actor, quoteID string) ([]entities.Payment, error) {
	q, err := u.GetByID(ctx, actor, quoteID)
	if err != nil {
		return nil, err
	}
	return u.payments.ListByQuoteID(ctx, q.ID)
}

// ReconcilePayment applies a processor callback. A fresh authorization on a
// quote still waiting in quoted completes the acceptance.
func (u *QuoteUseCase) ReconcilePayment(ctx context.Context, evt interfaces.ProcessorEvent) (entities.Payment, error) {
	p, err := u.payments.ApplyProcessorEvent(ctx, evt)
	if err != nil {
		return entities.Payment{}, err
	}

	switch p.Status {
	case entities.PaymentStatusFailed:
		if evt.Status == entities.PaymentStatusFailed {
			u.timeline.Record(ctx, p.QuoteID, entities.SystemActor, entities.EventPaymentFailed, "Payment authorization failed",
				p.FailureReason, map[string]any{"payment_id": p.ID})
		}
		return p, nil
	case entities.PaymentStatusAuthorized:
	default:
		return p, nil
	}

	q, err := u.repo.GetByID(ctx, p.QuoteID)
	if err != nil {
		return entities.Payment{}, err
	}
	if q.ID == "" {
		return entities.Payment{}, ErrQuoteNotFound
	}
	if q.Status != entities.QuoteStatusQuoted {
		return p, nil
	}
	t, err := entities.NextQuoteStatus(q.Status, entities.QuoteEventAccept)
	if err != nil {
		return entities.Payment{}, err
	}
	q.Stamp(t.To, u.now())
	if _, err := u.repo.Update(ctx, q, q.Version); err != nil {
		if errors.Is(err, entities.ErrVersionConflict) {
			logger.Warn(ctx, "[quote][usecase] reconcile lost race", "quote_id", q.ID, "payment_id", p.ID)
		}
		return entities.Payment{}, err
	}
	logger.Info(ctx, "[quote][usecase] accepted after processor confirmation", "quote_id", q.ID, "payment_id", p.ID)
	u.timeline.Record(ctx, q.ID, entities.SystemActor, entities.EventPaymentAuthorized, "Payment authorized", "", map[string]any{
		"payment_id":   p.ID,
		"amount_cents": p.AmountCents,
	})
	u.timeline.Record(ctx, q.ID, entities.SystemActor, entities.EventQuoteAccepted, "Quote accepted", "", nil)
	return p, nil
}

// reusablePayment returns a live payment from an earlier acceptance attempt,
// so a retry does not hold the client's funds twice.
func (u *QuoteUseCase) reusablePayment(ctx context.Context, quoteID string) (entities.Payment, error) {
	p, err := u.payments.ActiveForQuote(ctx, quoteID)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.Status == entities.PaymentStatusPending || p.Status == entities.PaymentStatusAuthorized {
		return p, nil
	}
	return entities.Payment{}, nil
}

// claimQuote bumps the quote version without changing its status. Callers
// racing on the same transition fail here, before any payment side effect.
// A non-empty op also takes the claim lease, which keeps other transitions
// off the quote until the caller's final write clears it.
func claimQuote(ctx context.Context, repo interfaces.IQuoteRepository, q entities.Quote, op string, now time.Time) (entities.Quote, error) {
	if q.Busy(now, operationLease) {
		return entities.Quote{}, fmt.Errorf("%w: %s", ErrQuoteBusy, q.Operation)
	}
	q.UpdatedAt = now
	if op != "" {
		q.Operation = op
		q.OperationStartedAt = &now
	}
	claimed, err := repo.Update(ctx, q, q.Version)
	if err != nil {
		logger.Warn(ctx, "[quote][usecase] claim lost", "quote_id", q.ID, "status", q.Status, "err", err)
		return entities.Quote{}, err
	}
	return claimed, nil
}

// releaseClaim drops the claim lease after a failed step. Errors are logged
// only: the lease expires on its own.
func releaseClaim(ctx context.Context, repo interfaces.IQuoteRepository, q entities.Quote, now time.Time) {
	q.Operation = ""
	q.OperationStartedAt = nil
	q.UpdatedAt = now
	if _, err := repo.Update(ctx, q, q.Version); err != nil {
		logger.Warn(ctx, "[quote][usecase] claim release failed", "quote_id", q.ID, "err", err)
	}
}

// opValidate is the claim lease held from capture to completion.
const opValidate = "validate"

func (u *QuoteUseCase) load(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

func requireRole(actor entities.Actor, role entities.Role) error {
	if actor.ID == "" {
		return ErrUnauthenticated
	}
	if actor.Role != role {
		return ErrForbidden
	}
	return nil
}

func requireClient(actor entities.Actor, q entities.Quote) error {
	if err := requireRole(actor, entities.RoleClient); err != nil {
		return err
	}
	if actor.ID != q.ClientID {
		return ErrForbidden
	}
	return nil
}

func requireRepairer(actor entities.Actor, q entities.Quote) error {
	if err := requireRole(actor, entities.RoleRepairer); err != nil {
		return err
	}
	if actor.ID != q.RepairerID {
		return ErrForbidden
	}
	return nil
}

func requireVisible(actor entities.Actor, q entities.Quote) error {
	if q.IsParty(actor) || actor.IsPrivileged() {
		return nil
	}
	return forbiddenOrUnauthenticated(actor)
}

func forbiddenOrUnauthenticated(actor entities.Actor) error {
	if actor.ID == "" {
		return ErrUnauthenticated
	}
	return ErrForbidden
}
