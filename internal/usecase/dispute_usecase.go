package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase/interfaces"
	"topreparateurs/pkg/logger"

	"github.com/google/uuid"
)

// MaxEvidenceBytes bounds a single evidence upload.
const MaxEvidenceBytes = 10 << 20

type ResolveInput struct {
	Outcome entities.DisputeOutcome
	Note    string
}

type ResolutionResult struct {
	Dispute entities.Dispute
	Quote   entities.Quote
	Payment entities.Payment
}

// EvidenceFile is an uploaded attachment.
type EvidenceFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// DisputeView is a dispute with short-lived download links for its evidence.
type DisputeView struct {
	Dispute      entities.Dispute
	EvidenceURLs []string
}

// IDisputeUseCase handles the dispute branch. While a dispute is active the
// quote sits in disputed and neither validation nor the hold sweep can move
// its funds.
type IDisputeUseCase interface {
	Raise(ctx context.Context, actor entities.Actor, quoteID, reason string) (entities.Dispute, error)
	Resolve(ctx context.Context, actor entities.Actor, disputeID string, in ResolveInput) (ResolutionResult, error)
	AttachEvidence(ctx context.Context, actor entities.Actor, disputeID string, file EvidenceFile) (entities.Dispute, error)
	GetByID(ctx context.Context, actor entities.Actor, disputeID string) (DisputeView, error)
	ActiveForQuote(ctx context.Context, quoteID string) (entities.Dispute, error)
}

type DisputeUseCase struct {
	repo     interfaces.IDisputeRepository
	quotes   interfaces.IQuoteRepository
	payments IPaymentUseCase
	policy   interfaces.IDisputeResolutionPolicy
	storage  interfaces.IEvidenceStorage
	timeline *TimelineRecorder
	now      func() time.Time
}

var _ IDisputeUseCase = (*DisputeUseCase)(nil)

// NewDisputeUseCase wires the dispute branch. A nil policy falls back to
// AdminDecisionPolicy; a nil storage disables evidence uploads.
func NewDisputeUseCase(repo interfaces.IDisputeRepository, quotes interfaces.IQuoteRepository, payments IPaymentUseCase,
	policy interfaces.IDisputeResolutionPolicy, storage interfaces.IEvidenceStorage, timeline *TimelineRecorder) *DisputeUseCase {
	if policy == nil {
		policy = AdminDecisionPolicy{}
	}
	return &DisputeUseCase{
		repo:     repo,
		quotes:   quotes,
		payments: payments,
		policy:   policy,
		storage:  storage,
		timeline: timeline,
		now:      utcNow,
	}
}

func (u *DisputeUseCase) Raise(ctx context.Context, actor entities.Actor, quoteID, reason string) (entities.Dispute, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return entities.Dispute{}, ErrInvalidDisputeReason
	}
	q, err := u.loadQuote(ctx, quoteID)
	if err != nil {
		return entities.Dispute{}, err
	}
	if !q.IsParty(actor) {
		return entities.Dispute{}, forbiddenOrUnauthenticated(actor)
	}
	t, err := entities.NextQuoteStatus(q.Status, entities.QuoteEventRaiseDispute)
	if err != nil {
		return entities.Dispute{}, err
	}
	now := u.now()
	if q.Busy(now, operationLease) {
		return entities.Dispute{}, fmt.Errorf("%w: %s", ErrQuoteBusy, q.Operation)
	}
	payment, err := u.payments.ActiveForQuote(ctx, q.ID)
	if err != nil {
		return entities.Dispute{}, err
	}
	if payment.Busy(now, operationLease) {
		return entities.Dispute{}, fmt.Errorf("%w: %s", ErrPaymentBusy, payment.Operation)
	}

	previous := q.Status
	q.Stamp(t.To, now)
	savedQuote, err := u.quotes.Update(ctx, q, q.Version)
	if err != nil {
		logger.Warn(ctx, "[dispute][usecase] quote transition failed", "quote_id", q.ID, "err", err)
		return entities.Dispute{}, err
	}

	d := entities.Dispute{
		ID:                  uuid.NewString(),
		QuoteID:             savedQuote.ID,
		PaymentID:           payment.ID,
		RaisedBy:            actor.ID,
		RaisedByRole:        actor.Role,
		Reason:              reason,
		Status:              entities.DisputeStatusActive,
		PreviousQuoteStatus: previous,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	created, err := u.repo.Create(ctx, d)
	if err != nil {
		logger.Error(ctx, "[dispute][usecase] create failed after quote moved to disputed", "quote_id", q.ID, "err", err)
		return entities.Dispute{}, err
	}
	logger.Info(ctx, "[dispute][usecase] raised", "dispute_id", created.ID, "quote_id", created.QuoteID, "by", actor.Role)
	u.timeline.Record(ctx, created.QuoteID, actor, entities.EventDisputeRaised, "Dispute raised", reason, map[string]any{
		"dispute_id":      created.ID,
		"previous_status": string(previous),
	})
	return created, nil
}

// Resolve applies the policy's outcome. Payment effects run before the quote
// and the dispute are closed: if they fail the dispute stays active and the
// call can be repeated.
func (u *DisputeUseCase) Resolve(ctx context.Context, actor entities.Actor, disputeID string, in ResolveInput) (ResolutionResult, error) {
	if !actor.IsPrivileged() {
		return ResolutionResult{}, forbiddenOrUnauthenticated(actor)
	}
	d, err := u.load(ctx, disputeID)
	if err != nil {
		return ResolutionResult{}, err
	}
	if !d.Active() {
		return ResolutionResult{}, ErrDisputeNotActive
	}
	q, err := u.loadQuote(ctx, d.QuoteID)
	if err != nil {
		return ResolutionResult{}, err
	}
	payment, err := u.disputedPayment(ctx, d)
	if err != nil {
		return ResolutionResult{}, err
	}

	note := strings.TrimSpace(in.Note)
	outcome, err := u.policy.Decide(ctx, interfaces.DisputeResolutionInput{
		Dispute:   d,
		Quote:     q,
		Payment:   payment,
		Requested: in.Outcome,
		Resolver:  actor,
		Note:      note,
	})
	if err != nil {
		return ResolutionResult{}, err
	}

	event := entities.QuoteEventResolveRelease
	status := entities.DisputeStatusResolvedRelease
	if outcome == entities.DisputeOutcomeRefund {
		event = entities.QuoteEventResolveRefund
		status = entities.DisputeStatusResolvedRefund
	}
	t, err := entities.NextQuoteStatus(q.Status, event)
	if err != nil {
		return ResolutionResult{}, err
	}

	if q, err = claimQuote(ctx, u.quotes, q, "", u.now()); err != nil {
		return ResolutionResult{}, err
	}
	if payment.ID != "" {
		if outcome == entities.DisputeOutcomeRelease {
			payment, err = u.releaseDisputed(ctx, actor, q, payment)
		} else {
			payment, err = u.refundDisputed(ctx, actor, q, payment)
		}
		if err != nil {
			logger.Warn(ctx, "[dispute][usecase] payment effect failed", "dispute_id", d.ID, "outcome", outcome, "err", err)
			return ResolutionResult{}, err
		}
	}

	now := u.now()
	q.Stamp(t.To, now)
	savedQuote, err := u.quotes.Update(ctx, q, q.Version)
	if err != nil {
		return ResolutionResult{}, err
	}
	d.Status = status
	d.ResolutionNote = note
	d.ResolvedBy = actor.ID
	d.ResolvedAt = &now
	d.UpdatedAt = now
	saved, err := u.repo.Update(ctx, d, d.Version)
	if err != nil {
		logger.Error(ctx, "[dispute][usecase] resolution persist failed", "dispute_id", d.ID, "err", err)
		return ResolutionResult{}, err
	}
	logger.Info(ctx, "[dispute][usecase] resolved", "dispute_id", saved.ID, "quote_id", saved.QuoteID, "outcome", outcome)
	u.timeline.Record(ctx, saved.QuoteID, actor, entities.EventDisputeResolved, "Dispute resolved", note, map[string]any{
		"dispute_id": saved.ID,
		"outcome":    string(outcome),
	})
	if savedQuote.Status == entities.QuoteStatusCompleted {
		u.timeline.Record(ctx, saved.QuoteID, actor, entities.EventQuoteCompleted, "Quote completed after dispute", "", nil)
	} else {
		u.timeline.Record(ctx, saved.QuoteID, actor, entities.EventQuoteCancelled, "Quote cancelled after dispute", "", nil)
	}
	return ResolutionResult{Dispute: saved, Quote: savedQuote, Payment: payment}, nil
}

func (u *DisputeUseCase) AttachEvidence(ctx context.Context, actor entities.Actor, disputeID string, file EvidenceFile) (entities.Dispute, error) {
	if u.storage == nil {
		return entities.Dispute{}, ErrEvidenceStorageNotConfigured
	}
	name := sanitizeFileName(file.Name)
	if name == "" || file.Body == nil || file.Size <= 0 || file.Size > MaxEvidenceBytes {
		return entities.Dispute{}, ErrInvalidEvidence
	}
	d, err := u.load(ctx, disputeID)
	if err != nil {
		return entities.Dispute{}, err
	}
	q, err := u.loadQuote(ctx, d.QuoteID)
	if err != nil {
		return entities.Dispute{}, err
	}
	if err := requireVisible(actor, q); err != nil {
		return entities.Dispute{}, err
	}
	if !d.Active() {
		return entities.Dispute{}, ErrDisputeNotActive
	}

	key := path.Join("disputes", d.ID, uuid.NewString()+"-"+name)
	contentType := strings.TrimSpace(file.ContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := u.storage.Upload(ctx, key, file.Body, file.Size, contentType); err != nil {
		logger.Error(ctx, "[dispute][usecase] evidence upload failed", "dispute_id", d.ID, "key", key, "err", err)
		return entities.Dispute{}, err
	}

	d.EvidenceKeys = append(d.EvidenceKeys, key)
	d.UpdatedAt = u.now()
	saved, err := u.repo.Update(ctx, d, d.Version)
	if err != nil {
		return entities.Dispute{}, err
	}
	u.timeline.Record(ctx, saved.QuoteID, actor, entities.EventEvidenceAttached, "Evidence attached", name, map[string]any{
		"dispute_id": saved.ID,
		"key":        key,
		"size":       file.Size,
	})
	return saved, nil
}

func (u *DisputeUseCase) GetByID(ctx context.Context, actor entities.Actor, disputeID string) (DisputeView, error) {
	d, err := u.load(ctx, disputeID)
	if err != nil {
		return DisputeView{}, err
	}
	q, err := u.loadQuote(ctx, d.QuoteID)
	if err != nil {
		return DisputeView{}, err
	}
	if err := requireVisible(actor, q); err != nil {
		return DisputeView{}, err
	}
	view := DisputeView{Dispute: d, EvidenceURLs: []string{}}
	if u.storage == nil {
		return view, nil
	}
	for _, key := range d.EvidenceKeys {
		url, err := u.storage.PresignedURL(ctx, key)
		if err != nil {
			logger.Warn(ctx, "[dispute][usecase] presign failed", "dispute_id", d.ID, "key", key, "err", err)
			continue
		}
		view.EvidenceURLs = append(view.EvidenceURLs, url)
	}
	return view, nil
}

// ActiveForQuote returns the quote's active dispute or a zero Dispute.
func (u *DisputeUseCase) ActiveForQuote(ctx context.Context, quoteID string) (entities.Dispute, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.Dispute{}, ErrInvalidQuoteID
	}
	items, err := u.repo.ListByQuoteID(ctx, quoteID)
	if err != nil {
		return entities.Dispute{}, err
	}
	for _, d := range items {
		if d.Active() {
			return d, nil
		}
	}
	return entities.Dispute{}, nil
}

func (u *DisputeUseCase) releaseDisputed(ctx context.Context, actor entities.Actor, q entities.Quote, p entities.Payment) (entities.Payment, error) {
	if p.Status == entities.PaymentStatusAuthorized {
		captured, err := u.payments.Capture(ctx, p.ID)
		if err != nil {
			u.timeline.Record(ctx, q.ID, actor, entities.EventCaptureFailed, "Payment capture failed", err.Error(), map[string]any{"payment_id": p.ID})
			return entities.Payment{}, err
		}
		u.timeline.Record(ctx, q.ID, actor, entities.EventPaymentCaptured, "Payment captured", "", map[string]any{"payment_id": p.ID})
		p = captured
	}
	if p.Status != entities.PaymentStatusCaptured {
		return p, nil
	}
	released, err := u.payments.Release(ctx, p.ID)
	if err != nil {
		u.timeline.Record(ctx, q.ID, actor, entities.EventReleaseFailed, "Fund release failed", err.Error(), map[string]any{"payment_id": p.ID})
		return entities.Payment{}, err
	}
	u.timeline.Record(ctx, q.ID, actor, entities.EventFundsReleased, "Funds released to repairer", "", map[string]any{
		"payment_id":   released.ID,
		"payout_cents": released.PayoutCents(),
	})
	return released, nil
}

func (u *DisputeUseCase) refundDisputed(ctx context.Context, actor entities.Actor, q entities.Quote, p entities.Payment) (entities.Payment, error) {
	switch {
	case p.Status == entities.PaymentStatusPending || p.Status == entities.PaymentStatusAuthorized:
		voided, err := u.payments.Void(ctx, p.ID)
		if err != nil {
			return entities.Payment{}, err
		}
		u.timeline.Record(ctx, q.ID, actor, entities.EventAuthorizationVoid, "Payment authorization voided", "", map[string]any{"payment_id": p.ID})
		return voided, nil
	case p.Status.Settled():
		refunded, err := u.payments.Refund(ctx, p.ID)
		if err != nil {
			return entities.Payment{}, err
		}
		u.timeline.Record(ctx, q.ID, actor, entities.EventPaymentRefunded, "Payment refunded", "", map[string]any{
			"payment_id":   p.ID,
			"amount_cents": refunded.AmountCents,
		})
		return refunded, nil
	}
	return p, nil
}

func (u *DisputeUseCase) disputedPayment(ctx context.Context, d entities.Dispute) (entities.Payment, error) {
	if d.PaymentID != "" {
		return u.payments.GetByID(ctx, d.PaymentID)
	}
	return u.payments.ActiveForQuote(ctx, d.QuoteID)
}

func (u *DisputeUseCase) load(ctx context.Context, id string) (entities.Dispute, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Dispute{}, ErrInvalidDisputeID
	}
	d, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Dispute{}, err
	}
	if d.ID == "" {
		return entities.Dispute{}, ErrDisputeNotFound
	}
	return d, nil
}

func (u *DisputeUseCase) loadQuote(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	q, err := u.quotes.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

// AdminDecisionPolicy applies the outcome requested by an admin as is.
type AdminDecisionPolicy struct{}

var _ interfaces.IDisputeResolutionPolicy = AdminDecisionPolicy{}

func (AdminDecisionPolicy) Decide(_ context.Context, in interfaces.DisputeResolutionInput) (entities.DisputeOutcome, error) {
	if !in.Resolver.IsPrivileged() {
		return "", ErrForbidden
	}
	if !in.Requested.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidOutcome, in.Requested)
	}
	return in.Requested, nil
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if strings.Trim(name, "./") == "" {
		return ""
	}
	name = unsafeFileChars.ReplaceAllString(name, "_")
	if len(name) > 100 {
		name = name[len(name)-100:]
	}
	return strings.Trim(name, "_")
}
