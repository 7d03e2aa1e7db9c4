package usecase

import (
	"context"
	"time"

	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase/interfaces"
	"topreparateurs/pkg/logger"
)

const DefaultSweepLimit = 100

// SweepResult summarizes one pass over due holds.
type SweepResult struct {
	Examined int      `json:"examined"`
	Released int      `json:"released"`
	Skipped  int      `json:"skipped"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}

// IHoldUseCase releases captured funds whose hold period is over. Quotes under
// an active dispute are skipped.
type IHoldUseCase interface {
	ReleaseDue(ctx context.Context, now time.Time, limit int) (SweepResult, error)
	// ReleasePayment retries one payout by hand. Disputed funds only move
	// through dispute resolution.
	ReleasePayment(ctx context.Context, paymentID string) (entities.Payment, error)
}

type HoldUseCase struct {
	holds    interfaces.IPaymentHoldRepository
	quotes   interfaces.IQuoteRepository
	payments IPaymentUseCase
	timeline *TimelineRecorder
}

var _ IHoldUseCase = (*HoldUseCase)(nil)

func NewHoldUseCase(holds interfaces.IPaymentHoldRepository, quotes interfaces.IQuoteRepository, payments IPaymentUseCase, timeline *TimelineRecorder) *HoldUseCase {
	return &HoldUseCase{holds: holds, quotes: quotes, payments: payments, timeline: timeline}
}

func (u *HoldUseCase) ReleaseDue(ctx context.Context, now time.Time, limit int) (SweepResult, error) {
	if limit <= 0 {
		limit = DefaultSweepLimit
	}
	due, err := u.holds.ListDue(ctx, now, limit)
	if err != nil {
		logger.Error(ctx, "[hold][usecase] list due failed", "err", err)
		return SweepResult{}, err
	}

	var res SweepResult
	for _, h := range due {
		res.Examined++
		if !h.Due(now) {
			res.Skipped++
			continue
		}
		q, err := u.quotes.GetByID(ctx, h.QuoteID)
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, h.PaymentID+": "+err.Error())
			continue
		}
		if q.Status == entities.QuoteStatusDisputed {
			logger.Info(ctx, "[hold][usecase] skipped (dispute active)", "hold_id", h.ID, "quote_id", h.QuoteID)
			res.Skipped++
			continue
		}
		before, err := u.payments.GetByID(ctx, h.PaymentID)
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, h.PaymentID+": "+err.Error())
			continue
		}
		p, err := u.payments.Release(ctx, h.PaymentID)
		if err != nil {
			logger.Warn(ctx, "[hold][usecase] release failed", "hold_id", h.ID, "payment_id", h.PaymentID, "err", err)
			res.Failed++
			res.Errors = append(res.Errors, h.PaymentID+": "+err.Error())
			continue
		}
		if before.Status == entities.PaymentStatusSucceeded {
			// paid out earlier; Release only closed the stale hold
			logger.Info(ctx, "[hold][usecase] stale hold closed", "hold_id", h.ID, "payment_id", h.PaymentID)
			res.Skipped++
			continue
		}
		res.Released++
		u.timeline.Record(ctx, h.QuoteID, entities.SystemActor, entities.EventFundsReleased, "Funds released after hold period", "", map[string]any{
			"payment_id":   p.ID,
			"payout_cents": p.PayoutCents(),
		})
	}
	logger.Info(ctx, "[hold][usecase] sweep done", "examined", res.Examined, "released", res.Released,
		"skipped", res.Skipped, "failed", res.Failed)
	return res, nil
}

func (u *HoldUseCase) ReleasePayment(ctx context.Context, paymentID string) (entities.Payment, error) {
	p, err := u.payments.GetByID(ctx, paymentID)
	if err != nil {
		return entities.Payment{}, err
	}
	q, err := u.quotes.GetByID(ctx, p.QuoteID)
	if err != nil {
		return entities.Payment{}, err
	}
	if q.Status == entities.QuoteStatusDisputed {
		logger.Warn(ctx, "[hold][usecase] manual release refused (dispute active)", "payment_id", p.ID, "quote_id", p.QuoteID)
		return entities.Payment{}, ErrQuoteDisputed
	}
	released, err := u.payments.Release(ctx, p.ID)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.Status != entities.PaymentStatusSucceeded {
		u.timeline.Record(ctx, p.QuoteID, entities.SystemActor, entities.EventFundsReleased, "Funds released by operator", "", map[string]any{
			"payment_id":   released.ID,
			"payout_cents": released.PayoutCents(),
		})
	}
	return released, nil
}

// HoldSweeper calls ReleaseDue on a fixed interval until its context ends.
type HoldSweeper struct {
	holds    IHoldUseCase
	interval time.Duration
	limit    int
	now      func() time.Time
}

func NewHoldSweeper(holds IHoldUseCase, interval time.Duration, limit int) *HoldSweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HoldSweeper{holds: holds, interval: interval, limit: limit, now: utcNow}
}

func (s *HoldSweeper) Run(ctx context.Context) {
	logger.Info(ctx, "[hold][sweeper] started", "interval", s.interval.String())
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "[hold][sweeper] stopped")
			return
		case <-ticker.C:
			if _, err := s.holds.ReleaseDue(ctx, s.now(), s.limit); err != nil {
				logger.Error(ctx, "[hold][sweeper] pass failed", "err", err)
			}
		}
	}
}
