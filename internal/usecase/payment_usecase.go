package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase/interfaces"
	"topreparateurs/pkg/logger"

	"github.com/google/uuid"
)

const (
	DefaultCommissionBps = 100
	DefaultHoldDuration  = 14 * 24 * time.Hour

	// operationLease bounds how long a crashed caller can block a payment.
	operationLease = 2 * time.Minute
)

// PaymentConfig carries the platform settings applied to every payment.
type PaymentConfig struct {
	Currency      string
	CommissionBps int64
	HoldDuration  time.Duration
}

func (c PaymentConfig) withDefaults() PaymentConfig {
	if strings.TrimSpace(c.Currency) == "" {
		c.Currency = entities.DefaultCurrency
	}
	c.Currency = strings.ToLower(strings.TrimSpace(c.Currency))
	if c.CommissionBps < 0 {
		c.CommissionBps = DefaultCommissionBps
	}
	if c.HoldDuration <= 0 {
		c.HoldDuration = DefaultHoldDuration
	}
	return c
}

// AuthorizeInput describes the funds to hold for a quote.
type AuthorizeInput struct {
	QuoteID          string
	AmountCents      int64
	PayerRef         string
	PayeeRef         string
	PaymentMethodRef string
	Description      string
}

// IPaymentUseCase is the payment adapter: it drives the processor and keeps the
// local Payment and PaymentHold records in step with confirmed responses.
//
// Behavior:
//   - Authorize creates the local payment, then asks the processor to hold funds.
//   - Capture is idempotent on captured/succeeded payments and opens the hold.
//   - Release pays the payee (amount minus commission) and closes the hold.
//   - Void and Refund close a payment before and after capture respectively.
//   - Local status is never advanced ahead of a processor confirmation.
type IPaymentUseCase interface {
	Authorize(ctx context.Context, in AuthorizeInput) (entities.Payment, error)
	Capture(ctx context.Context, paymentID string) (entities.Payment, error)
	Release(ctx context.Context, paymentID string) (entities.Payment, error)
	Void(ctx context.Context, paymentID string) (entities.Payment, error)
	Refund(ctx context.Context, paymentID string) (entities.Payment, error)
	ApplyProcessorEvent(ctx context.Context, evt interfaces.ProcessorEvent) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByQuoteID(ctx context.Context, quoteID string) ([]entities.Payment, error)
	ActiveForQuote(ctx context.Context, quoteID string) (entities.Payment, error)
}

type PaymentUseCase struct {
	repo      interfaces.IPaymentRepository
	holds     interfaces.IPaymentHoldRepository
	processor interfaces.IPaymentProcessor
	cfg       PaymentConfig
	now       func() time.Time
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IPaymentRepository, holds interfaces.IPaymentHoldRepository, processor interfaces.IPaymentProcessor, cfg PaymentConfig) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, holds: holds, processor: processor, cfg: cfg.withDefaults(), now: utcNow}
}

func (u *PaymentUseCase) Authorize(ctx context.Context, in AuthorizeInput) (entities.Payment, error) {
	in.QuoteID = strings.TrimSpace(in.QuoteID)
	in.PayerRef = strings.TrimSpace(in.PayerRef)
	in.PayeeRef = strings.TrimSpace(in.PayeeRef)
	in.PaymentMethodRef = strings.TrimSpace(in.PaymentMethodRef)
	if in.QuoteID == "" {
		return entities.Payment{}, ErrInvalidQuoteID
	}
	if in.AmountCents <= 0 {
		return entities.Payment{}, ErrInvalidAmount
	}
	if in.AmountCents > entities.MaxAmountCents {
		return entities.Payment{}, ErrAmountTooLarge
	}
	if in.PayerRef == "" {
		return entities.Payment{}, ErrInvalidPayer
	}
	if u.processor == nil {
		return entities.Payment{}, ErrPaymentProcessorNotConfigured
	}

	now := u.now()
	p := entities.Payment{
		ID:              uuid.NewString(),
		QuoteID:         in.QuoteID,
		Provider:        u.processor.Name(),
		AmountCents:     in.AmountCents,
		CommissionCents: entities.Commission(in.AmountCents, u.cfg.CommissionBps),
		Currency:        u.cfg.Currency,
		PayerRef:        in.PayerRef,
		PayeeRef:        in.PayeeRef,
		Status:          entities.PaymentStatusPending,
		Operation:       "authorize",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	p.OperationStartedAt = &now
	created, err := u.repo.Create(ctx, p)
	if err != nil {
		logger.Error(ctx, "[payment][usecase] create failed", "quote_id", in.QuoteID, "err", err)
		return entities.Payment{}, err
	}
	logger.Info(ctx, "[payment][usecase] authorize start", "payment_id", created.ID, "quote_id", created.QuoteID,
		"amount_cents", created.AmountCents, "commission_cents", created.CommissionCents, "provider", created.Provider)

	res, err := u.processor.Authorize(ctx, interfaces.AuthorizationRequest{
		PaymentID:        created.ID,
		QuoteID:          created.QuoteID,
		AmountCents:      created.AmountCents,
		CommissionCents:  created.CommissionCents,
		Currency:         created.Currency,
		PayerRef:         created.PayerRef,
		PayeeRef:         created.PayeeRef,
		PaymentMethodRef: in.PaymentMethodRef,
		Description:      in.Description,
	})
	if err != nil {
		logger.Warn(ctx, "[payment][usecase] authorize failed", "payment_id", created.ID, "err", err)
		u.markFailed(ctx, created, err.Error())
		return entities.Payment{}, processorError(err)
	}

	applyResult(&created, res)
	switch res.Status {
	case entities.PaymentStatusAuthorized:
		created.Stamp(entities.PaymentStatusAuthorized, u.now())
	case entities.PaymentStatusPending:
		// processor confirms asynchronously (3-D Secure, webhook)
	default:
		reason := res.FailureReason
		if reason == "" {
			reason = "authorization refused with status " + res.ProviderStatus
		}
		u.markFailed(ctx, created, reason)
		return entities.Payment{}, fmt.Errorf("%w: %s", ErrPaymentDeclined, reason)
	}

	endOperation(&created)
	saved, err := u.repo.Update(ctx, created, created.Version)
	if err != nil {
		logger.Error(ctx, "[payment][usecase] authorize persist failed", "payment_id", created.ID, "err", err)
		return entities.Payment{}, err
	}
	logger.Info(ctx, "[payment][usecase] authorize done", "payment_id", saved.ID, "status", saved.Status,
		"provider_payment_id", saved.ProviderPaymentID)
	return saved, nil
}

func (u *PaymentUseCase) Capture(ctx context.Context, paymentID string) (entities.Payment, error) {
	p, err := u.load(ctx, paymentID)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.Status.Settled() {
		logger.Info(ctx, "[payment][usecase] capture skipped (already captured)", "payment_id", p.ID, "status", p.Status)
		if p.Status == entities.PaymentStatusCaptured {
			if _, err := u.ensureHold(ctx, p); err != nil {
				return entities.Payment{}, err
			}
		}
		return p, nil
	}
	if p.Status != entities.PaymentStatusAuthorized {
		return entities.Payment{}, fmt.Errorf("%w: status %s", ErrPaymentNotAuthorized, p.Status)
	}
	if u.processor == nil {
		return entities.Payment{}, ErrPaymentProcessorNotConfigured
	}
	if p, err = u.beginOperation(ctx, p, "capture"); err != nil {
		return entities.Payment{}, err
	}

	res, err := u.processor.Capture(ctx, p.ProviderPaymentID, p.AmountCents)
	if err != nil {
		logger.Warn(ctx, "[payment][usecase] capture failed", "payment_id", p.ID, "err", err)
		u.abortOperation(ctx, p)
		return entities.Payment{}, processorError(err)
	}
	if res.Status != entities.PaymentStatusCaptured && res.Status != entities.PaymentStatusSucceeded {
		u.abortOperation(ctx, p)
		return entities.Payment{}, fmt.Errorf("%w: capture answered with status %s", ErrPaymentProcessorFailure, res.ProviderStatus)
	}
	endOperation(&p)
	applyResult(&p, res)
	p.Stamp(entities.PaymentStatusCaptured, u.now())

	saved, err := u.repo.Update(ctx, p, p.Version)
	if err != nil {
		logger.Error(ctx, "[payment][usecase] capture persist failed", "payment_id", p.ID, "err", err)
		return entities.Payment{}, err
	}
	if _, err := u.ensureHold(ctx, saved); err != nil {
		return entities.Payment{}, err
	}
	logger.Info(ctx, "[payment][usecase] capture done", "payment_id", saved.ID, "quote_id", saved.QuoteID)
	return saved, nil
}

func (u *PaymentUseCase) Release(ctx context.Context, paymentID string) (entities.Payment, error) {
	p, err := u.load(ctx, paymentID)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.Status == entities.PaymentStatusSucceeded {
		// the payout went through; a hold left open by a failed close is settled here
		u.closeHold(ctx, p, entities.HoldStatusReleased, u.now())
		return p, nil
	}
	if p.Status != entities.PaymentStatusCaptured {
		return entities.Payment{}, fmt.Errorf("%w: status %s", ErrPaymentNotCaptured, p.Status)
	}
	hold, err := u.ensureHold(ctx, p)
	if err != nil {
		return entities.Payment{}, err
	}
	if hold.Status != entities.HoldStatusHeld {
		return entities.Payment{}, fmt.Errorf("%w: hold %s", ErrHoldNotHeld, hold.Status)
	}
	if u.processor == nil {
		return entities.Payment{}, ErrPaymentProcessorNotConfigured
	}
	if p, err = u.beginOperation(ctx, p, "release"); err != nil {
		return entities.Payment{}, err
	}

	res, err := u.processor.Release(ctx, interfaces.ReleaseRequest{
		PaymentID:         p.ID,
		ProviderPaymentID: p.ProviderPaymentID,
		PayeeRef:          p.PayeeRef,
		AmountCents:       p.PayoutCents(),
		Currency:          p.Currency,
	})
	if err != nil {
		logger.Warn(ctx, "[payment][usecase] release failed", "payment_id", p.ID, "err", err)
		u.abortOperation(ctx, p)
		return entities.Payment{}, processorError(err)
	}
	now := u.now()
	endOperation(&p)
	applyResult(&p, res)
	p.Stamp(entities.PaymentStatusSucceeded, now)
	saved, err := u.repo.Update(ctx, p, p.Version)
	if err != nil {
		logger.Error(ctx, "[payment][usecase] release persist failed", "payment_id", p.ID, "transfer_id", res.TransferID, "err", err)
		return entities.Payment{}, err
	}

	u.settleHold(ctx, hold, entities.HoldStatusReleased, now)
	logger.Info(ctx, "[payment][usecase] release done", "payment_id", saved.ID, "payout_cents", saved.PayoutCents(),
		"transfer_id", saved.TransferID)
	return saved, nil
}

func (u *PaymentUseCase) Void(ctx context.Context, paymentID string) (entities.Payment, error) {
	p, err := u.load(ctx, paymentID)
	if err != nil {
		return entities.Payment{}, err
	}
	switch p.Status {
	case entities.PaymentStatusVoided, entities.PaymentStatusFailed:
		return p, nil
	case entities.PaymentStatusPending, entities.PaymentStatusAuthorized:
	default:
		return entities.Payment{}, fmt.Errorf("%w: status %s", ErrPaymentAlreadyCaptured, p.Status)
	}

	if p.ProviderPaymentID != "" {
		if u.processor == nil {
			return entities.Payment{}, ErrPaymentProcessorNotConfigured
		}
		if p, err = u.beginOperation(ctx, p, "void"); err != nil {
			return entities.Payment{}, err
		}
		res, err := u.processor.Void(ctx, p.ProviderPaymentID)
		if err != nil {
			logger.Warn(ctx, "[payment][usecase] void failed", "payment_id", p.ID, "err", err)
			u.abortOperation(ctx, p)
			return entities.Payment{}, processorError(err)
		}
		applyResult(&p, res)
	} else if p.Busy(u.now(), operationLease) {
		return entities.Payment{}, fmt.Errorf("%w: %s", ErrPaymentBusy, p.Operation)
	}
	endOperation(&p)
	p.Stamp(entities.PaymentStatusVoided, u.now())
	saved, err := u.repo.Update(ctx, p, p.Version)
	if err != nil {
		return entities.Payment{}, err
	}
	logger.Info(ctx, "[payment][usecase] void done", "payment_id", saved.ID, "quote_id", saved.QuoteID)
	return saved, nil
}

func (u *PaymentUseCase) Refund(ctx context.Context, paymentID string) (entities.Payment, error) {
	p, err := u.load(ctx, paymentID)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.Status == entities.PaymentStatusRefunded {
		return p, nil
	}
	if !p.Status.Settled() {
		return entities.Payment{}, fmt.Errorf("%w: status %s", ErrPaymentNotCaptured, p.Status)
	}
	if u.processor == nil {
		return entities.Payment{}, ErrPaymentProcessorNotConfigured
	}
	if p, err = u.beginOperation(ctx, p, "refund"); err != nil {
		return entities.Payment{}, err
	}

	res, err := u.processor.Refund(ctx, p.ProviderPaymentID, p.AmountCents)
	if err != nil {
		logger.Warn(ctx, "[payment][usecase] refund failed", "payment_id", p.ID, "err", err)
		u.abortOperation(ctx, p)
		return entities.Payment{}, processorError(err)
	}
	now := u.now()
	endOperation(&p)
	applyResult(&p, res)
	p.Stamp(entities.PaymentStatusRefunded, now)
	saved, err := u.repo.Update(ctx, p, p.Version)
	if err != nil {
		return entities.Payment{}, err
	}

	u.closeHold(ctx, saved, entities.HoldStatusRefunded, now)
	logger.Info(ctx, "[payment][usecase] refund done", "payment_id", saved.ID, "quote_id", saved.QuoteID)
	return saved, nil
}

// ApplyProcessorEvent reconciles a webhook notification. Events that would move
// the payment backwards, or repeat its current status, leave it unchanged.
func (u *PaymentUseCase) ApplyProcessorEvent(ctx context.Context, evt interfaces.ProcessorEvent) (entities.Payment, error) {
	providerID := strings.TrimSpace(evt.ProviderPaymentID)
	if providerID == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}
	p, err := u.repo.GetByProviderPaymentID(ctx, providerID)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	if p.Busy(u.now(), operationLease) {
		// the processor redelivers on a conflict; the in-flight call may still crash
		logger.Info(ctx, "[payment][usecase] processor event deferred (operation in flight)", "payment_id", p.ID,
			"operation", p.Operation, "event_id", evt.EventID)
		return entities.Payment{}, fmt.Errorf("%w: %s", ErrPaymentBusy, p.Operation)
	}
	if p.Status == evt.Status || !entities.CanAdvancePayment(p.Status, evt.Status) {
		logger.Info(ctx, "[payment][usecase] processor event ignored", "payment_id", p.ID, "status", p.Status,
			"event_status", evt.Status, "event_id", evt.EventID)
		return p, nil
	}

	if len(evt.Raw) > 0 {
		p.ProviderPayloadRaw = evt.Raw
	}
	if evt.FailureReason != "" {
		p.FailureReason = evt.FailureReason
	}
	endOperation(&p) // any lease left here has expired
	p.Stamp(evt.Status, u.now())
	saved, err := u.repo.Update(ctx, p, p.Version)
	if err != nil {
		return entities.Payment{}, err
	}
	if saved.Status == entities.PaymentStatusCaptured {
		if _, err := u.ensureHold(ctx, saved); err != nil {
			return entities.Payment{}, err
		}
	}
	logger.Info(ctx, "[payment][usecase] processor event applied", "payment_id", saved.ID, "status", saved.Status,
		"event_id", evt.EventID)
	return saved, nil
}

func (u *PaymentUseCase) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	return u.load(ctx, id)
}

func (u *PaymentUseCase) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.Payment, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return nil, ErrInvalidQuoteID
	}
	return u.repo.ListByQuoteID(ctx, quoteID)
}

// ActiveForQuote returns the newest payment of the quote that is not closed,
// or a zero Payment when there is none.
func (u *PaymentUseCase) ActiveForQuote(ctx context.Context, quoteID string) (entities.Payment, error) {
	items, err := u.ListByQuoteID(ctx, quoteID)
	if err != nil {
		return entities.Payment{}, err
	}
	var active entities.Payment
	for _, p := range items {
		if p.Status.Closed() {
			continue
		}
		if active.ID == "" || p.CreatedAt.After(active.CreatedAt) {
			active = p
		}
	}
	return active, nil
}

func (u *PaymentUseCase) load(ctx context.Context, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

// holdIDFor derives the hold key from its payment, so concurrent creators
// collide on the primary key instead of writing two holds.
func holdIDFor(paymentID string) string {
	return "hold_" + paymentID
}

// findHold reads the hold by its derived key, falling back to the payment
// index for holds stored under random keys.
func (u *PaymentUseCase) findHold(ctx context.Context, paymentID string) (entities.PaymentHold, error) {
	h, err := u.holds.GetByID(ctx, holdIDFor(paymentID))
	if err != nil || h.ID != "" {
		return h, err
	}
	return u.holds.GetByPaymentID(ctx, paymentID)
}

// ensureHold returns the hold of a captured payment, creating it when missing.
func (u *PaymentUseCase) ensureHold(ctx context.Context, p entities.Payment) (entities.PaymentHold, error) {
	h, err := u.findHold(ctx, p.ID)
	if err != nil {
		return entities.PaymentHold{}, err
	}
	if h.ID != "" {
		return h, nil
	}
	capturedAt := u.now()
	if p.CapturedAt != nil {
		capturedAt = *p.CapturedAt
	}
	now := u.now()
	h = entities.PaymentHold{
		ID:          holdIDFor(p.ID),
		PaymentID:   p.ID,
		QuoteID:     p.QuoteID,
		AmountCents: p.AmountCents,
		Reason:      entities.HoldReasonServiceCompletion,
		Status:      entities.HoldStatusHeld,
		ReleaseAt:   capturedAt.Add(u.cfg.HoldDuration),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	created, err := u.holds.Create(ctx, h)
	if errors.Is(err, entities.ErrConflict) {
		// another caller created it first
		return u.holds.GetByID(ctx, h.ID)
	}
	if err != nil {
		logger.Error(ctx, "[payment][usecase] hold create failed", "payment_id", p.ID, "err", err)
		return entities.PaymentHold{}, err
	}
	logger.Info(ctx, "[payment][usecase] hold created", "payment_id", p.ID, "hold_id", created.ID,
		"release_at", created.ReleaseAt.Format(time.RFC3339))
	return created, nil
}

// closeHold moves a held hold to status. Failures are logged only: the next
// Release or sweep pass retries the close.
func (u *PaymentUseCase) closeHold(ctx context.Context, p entities.Payment, status entities.HoldStatus, now time.Time) {
	hold, err := u.findHold(ctx, p.ID)
	if err != nil {
		logger.Error(ctx, "[payment][usecase] hold lookup failed", "payment_id", p.ID, "err", err)
		return
	}
	u.settleHold(ctx, hold, status, now)
}

func (u *PaymentUseCase) settleHold(ctx context.Context, hold entities.PaymentHold, status entities.HoldStatus, now time.Time) {
	if hold.ID == "" || hold.Status != entities.HoldStatusHeld {
		return
	}
	hold.Status = status
	if status == entities.HoldStatusReleased {
		hold.ReleasedAt = &now
	}
	hold.UpdatedAt = now
	if _, err := u.holds.Update(ctx, hold, hold.Version); err != nil {
		logger.Error(ctx, "[payment][usecase] hold close failed", "payment_id", hold.PaymentID, "hold_id", hold.ID, "err", err)
	}
}

func (u *PaymentUseCase) markFailed(ctx context.Context, p entities.Payment, reason string) {
	endOperation(&p)
	p.FailureReason = reason
	p.Stamp(entities.PaymentStatusFailed, u.now())
	if _, err := u.repo.Update(ctx, p, p.Version); err != nil {
		logger.Error(ctx, "[payment][usecase] mark failed persist failed", "payment_id", p.ID, "err", err)
	}
}

// beginOperation takes the payment's operation lease with a version check, so
// a processor call runs for at most one caller at a time.
func (u *PaymentUseCase) beginOperation(ctx context.Context, p entities.Payment, op string) (entities.Payment, error) {
	now := u.now()
	if p.Busy(now, operationLease) {
		return entities.Payment{}, fmt.Errorf("%w: %s", ErrPaymentBusy, p.Operation)
	}
	p.Operation = op
	p.OperationStartedAt = &now
	p.UpdatedAt = now
	leased, err := u.repo.Update(ctx, p, p.Version)
	if err != nil {
		logger.Warn(ctx, "[payment][usecase] operation lease lost", "payment_id", p.ID, "operation", op, "err", err)
		return entities.Payment{}, err
	}
	return leased, nil
}

func (u *PaymentUseCase) abortOperation(ctx context.Context, p entities.Payment) {
	endOperation(&p)
	p.UpdatedAt = u.now()
	if _, err := u.repo.Update(ctx, p, p.Version); err != nil {
		logger.Error(ctx, "[payment][usecase] operation lease release failed", "payment_id", p.ID, "err", err)
	}
}

func endOperation(p *entities.Payment) {
	p.Operation = ""
	p.OperationStartedAt = nil
}

func applyResult(p *entities.Payment, res interfaces.ProcessorResult) {
	if res.ProviderPaymentID != "" {
		p.ProviderPaymentID = res.ProviderPaymentID
	}
	if res.ClientSecret != "" {
		p.ClientSecret = res.ClientSecret
	}
	if res.TransferID != "" {
		p.TransferID = res.TransferID
	}
	if len(res.Raw) > 0 {
		p.ProviderPayloadRaw = res.Raw
	}
}

// processorError classifies a processor failure under ErrPaymentDeclined or
// ErrPaymentProcessorFailure, keeping the original error in the chain.
func processorError(err error) error {
	var pe *interfaces.ProcessorError
	if errors.As(err, &pe) && pe.Declined {
		return fmt.Errorf("%w: %w", ErrPaymentDeclined, err)
	}
	return fmt.Errorf("%w: %w", ErrPaymentProcessorFailure, err)
}
