package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase/interfaces"
	mock_interfaces "topreparateurs/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

func bumpPayment(_ context.Context, p entities.Payment, expected int64) (entities.Payment, error) {
	p.Version = expected + 1
	return p, nil
}

func newTestPaymentUseCase(repo interfaces.IPaymentRepository, holds interfaces.IPaymentHoldRepository, processor interfaces.IPaymentProcessor) *PaymentUseCase {
	uc := NewPaymentUseCase(repo, holds, processor, PaymentConfig{Currency: "EUR", CommissionBps: 100})
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func TestPaymentConfig_WithDefaults(t *testing.T) {
	cfg := PaymentConfig{Currency: " EUR ", CommissionBps: -1}.withDefaults()
	if cfg.Currency != "eur" {
		t.Fatalf("expected eur, got %q", cfg.Currency)
	}
	if cfg.CommissionBps != DefaultCommissionBps {
		t.Fatalf("expected default commission, got %d", cfg.CommissionBps)
	}
	if cfg.HoldDuration != DefaultHoldDuration {
		t.Fatalf("expected default hold duration, got %s", cfg.HoldDuration)
	}
}

func TestPaymentUseCase_Authorize_Validations(t *testing.T) {
	t.Run("empty quote id", func(t *testing.T) {
		uc := newTestPaymentUseCase(nil, nil, nil)
		_, err := uc.Authorize(context.Background(), AuthorizeInput{QuoteID: " ", AmountCents: 100, PayerRef: "c"})
		if !errors.Is(err, ErrInvalidQuoteID) {
			t.Fatalf("expected ErrInvalidQuoteID, got %v", err)
		}
	})

	t.Run("non positive amount", func(t *testing.T) {
		uc := newTestPaymentUseCase(nil, nil, nil)
		_, err := uc.Authorize(context.Background(), AuthorizeInput{QuoteID: "q-1", AmountCents: 0, PayerRef: "c"})
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
		if !errors.Is(err, entities.ErrValidation) {
			t.Fatalf("expected validation kind, got %v", err)
		}
	})

	t.Run("amount over limit", func(t *testing.T) {
		uc := newTestPaymentUseCase(nil, nil, nil)
		_, err := uc.Authorize(context.Background(), AuthorizeInput{QuoteID: "q-1", AmountCents: entities.MaxAmountCents + 1, PayerRef: "c"})
		if !errors.Is(err, ErrAmountTooLarge) {
			t.Fatalf("expected ErrAmountTooLarge, got %v", err)
		}
	})

	t.Run("missing payer", func(t *testing.T) {
		uc := newTestPaymentUseCase(nil, nil, nil)
		_, err := uc.Authorize(context.Background(), AuthorizeInput{QuoteID: "q-1", AmountCents: 100})
		if !errors.Is(err, ErrInvalidPayer) {
			t.Fatalf("expected ErrInvalidPayer, got %v", err)
		}
	})

	t.Run("processor not configured", func(t *testing.T) {
		uc := newTestPaymentUseCase(nil, nil, nil)
		_, err := uc.Authorize(context.Background(), AuthorizeInput{QuoteID: "q-1", AmountCents: 100, PayerRef: "c"})
		if !errors.Is(err, ErrPaymentProcessorNotConfigured) {
			t.Fatalf("expected ErrPaymentProcessorNotConfigured, got %v", err)
		}
	})
}

func TestPaymentUseCase_Authorize(t *testing.T) {
	t.Run("success stores commission and provider id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		processor := mock_interfaces.NewMockIPaymentProcessor(ctrl)
		uc := newTestPaymentUseCase(repo, nil, processor)

		processor.EXPECT().Name().Return("mock")
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Payment) (entities.Payment, error) {
			if p.Status != entities.PaymentStatusPending || p.Operation != "authorize" {
				t.Fatalf("expected pending payment with authorize lease, got %s/%s", p.Status, p.Operation)
			}
			p.Version = 1
			return p, nil
		})
		processor.EXPECT().Authorize(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req interfaces.AuthorizationRequest) (interfaces.ProcessorResult, error) {
			if req.AmountCents != 8000 || req.CommissionCents != 80 || req.Currency != "eur" {
				t.Fatalf("unexpected request: %+v", req)
			}
			if req.PaymentMethodRef != "pm_card_visa" {
				t.Fatalf("expected trimmed method ref, got %q", req.PaymentMethodRef)
			}
			return interfaces.ProcessorResult{ProviderPaymentID: "pi_1", Status: entities.PaymentStatusAuthorized, ClientSecret: "sec"}, nil
		})
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), int64(1)).DoAndReturn(bumpPayment)

		got, err := uc.Authorize(context.Background(), AuthorizeInput{
			QuoteID: "q-1", AmountCents: 8000, PayerRef: "client-1", PayeeRef: "acct_1", PaymentMethodRef: " pm_card_visa ",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.PaymentStatusAuthorized || !got.Hold {
			t.Fatalf("expected authorized hold, got %s hold=%v", got.Status, got.Hold)
		}
		if got.ProviderPaymentID != "pi_1" || got.ClientSecret != "sec" {
			t.Fatalf("processor result not applied: %+v", got)
		}
		if got.Operation != "" || got.OperationStartedAt != nil {
			t.Fatalf("expected lease cleared, got %q", got.Operation)
		}
		if got.AuthorizedAt == nil {
			t.Fatalf("expected authorized_at")
		}
	})

	t.Run("declined marks payment failed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		processor := mock_interfaces.NewMockIPaymentProcessor(ctrl)
		uc := newTestPaymentUseCase(repo, nil, processor)

		processor.EXPECT().Name().Return("mock")
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Payment) (entities.Payment, error) {
			p.Version = 1
			return p, nil
		})
		processor.EXPECT().Authorize(gomock.Any(), gomock.Any()).Return(interfaces.ProcessorResult{},
			&interfaces.ProcessorError{Provider: "mock", Code: "card_declined", Message: "declined", Declined: true})
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), int64(1)).DoAndReturn(func(_ context.Context, p entities.Payment, expected int64) (entities.Payment, error) {
			if p.Status != entities.PaymentStatusFailed || p.FailureReason == "" {
				t.Fatalf("expected failed payment with reason, got %s %q", p.Status, p.FailureReason)
			}
			if p.Operation != "" {
				t.Fatalf("expected lease cleared")
			}
			return bumpPayment(context.Background(), p, expected)
		})

		_, err := uc.Authorize(context.Background(), AuthorizeInput{QuoteID: "q-1", AmountCents: 8000, PayerRef: "client-1"})
		if !errors.Is(err, ErrPaymentDeclined) {
			t.Fatalf("expected ErrPaymentDeclined, got %v", err)
		}
	})

	t.Run("processor failure is not a decline", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		processor := mock_interfaces.NewMockIPaymentProcessor(ctrl)
		uc := newTestPaymentUseCase(repo, nil, processor)

		processor.EXPECT().Name().Return("mock")
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Payment) (entities.Payment, error) {
			p.Version = 1
			return p, nil
		})
		processor.EXPECT().Authorize(gomock.Any(), gomock.Any()).Return(interfaces.ProcessorResult{}, errors.New("timeout"))
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), int64(1)).DoAndReturn(bumpPayment)

		_, err := uc.Authorize(context.Background(), AuthorizeInput{QuoteID: "q-1", AmountCents: 8000, PayerRef: "client-1"})
		if !errors.Is(err, ErrPaymentProcessorFailure) || errors.Is(err, ErrPaymentDeclined) {
			t.Fatalf("expected ErrPaymentProcessorFailure, got %v", err)
		}
	})
}

func TestPaymentUseCase_Capture(t *testing.T) {
	t.Run("already captured is idempotent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		holds := mock_interfaces.NewMockIPaymentHoldRepository(ctrl)
		processor := mock_interfaces.NewMockIPaymentProcessor(ctrl)
		uc := newTestPaymentUseCase(repo, holds, processor)

		p := entities.Payment{ID: "pay-1", Status: entities.PaymentStatusCaptured, Version: 3}
		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(p, nil)
		holds.EXPECT().GetByID(gomock.Any(), "hold_pay-1").Return(entities.PaymentHold{ID: "hold_pay-1", Status: entities.HoldStatusHeld}, nil)
		processor.EXPECT().Capture(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		got, err := uc.Capture(context.Background(), "pay-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Version != 3 {
			t.Fatalf("expected unchanged payment, got version %d", got.Version)
		}
	})

	t.Run("not authorized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := newTestPaymentUseCase(repo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.Payment{ID: "pay-1", Status: entities.PaymentStatusPending}, nil)

		_, err := uc.Capture(context.Background(), "pay-1")
		if !errors.Is(err, ErrPaymentNotAuthorized) || !errors.Is(err, entities.ErrPrecondition) {
			t.Fatalf("expected ErrPaymentNotAuthorized, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := newTestPaymentUseCase(repo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.Payment{}, nil)

		_, err := uc.Capture(context.Background(), "pay-1")
		if !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})

	t.Run("busy payment is not sent to the processor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		processor := mock_interfaces.NewMockIPaymentProcessor(ctrl)
		uc := newTestPaymentUseCase(repo, nil, processor)

		started := fixedNow.Add(-30 * time.Second)
		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.Payment{
			ID: "pay-1", Status: entities.PaymentStatusAuthorized, Operation: "capture", OperationStartedAt: &started,
		}, nil)
		processor.EXPECT().Capture(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := uc.Capture(context.Background(), "pay-1")
		if !errors.Is(err, ErrPaymentBusy) || !errors.Is(err, entities.ErrConflict) {
			t.Fatalf("expected ErrPaymentBusy, got %v", err)
		}
	})

	t.Run("expired lease is taken over", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		holds := mock_interfaces.NewMockIPaymentHoldRepository(ctrl)
		processor := mock_interfaces.NewMockIPaymentProcessor(ctrl)
		uc := newTestPaymentUseCase(repo, holds, processor)

		started := fixedNow.Add(-10 * time.Minute)
		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.Payment{
			ID: "pay-1", QuoteID: "q-1", ProviderPaymentID: "pi_1", AmountCents: 8000, Status: entities.PaymentStatusAuthorized,
			Operation: "capture", OperationStartedAt: &started, Version: 2,
		}, nil)
		gomock.InOrder(
			repo.EXPECT().Update(gomock.Any(), gomock.Any(), int64(2)).DoAndReturn(bumpPayment),
			processor.EXPECT().Capture(gomock.Any(), "pi_1", int64(8000)).Return(interfaces.ProcessorResult{Status: entities.PaymentStatusCaptured}, nil),
			repo.EXPECT().Update(gomock.Any(), gomock.Any(), int64(3)).DoAndReturn(bumpPayment),
		)
		holds.EXPECT().GetByID(gomock.Any(), "hold_pay-1").Return(entities.PaymentHold{}, nil)
		holds.EXPECT().GetByPaymentID(gomock.Any(), "pay-1").Return(entities.PaymentHold{}, nil)
		holds.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, h entities.PaymentHold) (entities.PaymentHold, error) {
			if !h.ReleaseAt.Equal(fixedNow.Add(DefaultHoldDuration)) {
				t.Fatalf("unexpected release_at %s", h.ReleaseAt)
			}
			if h.ID != "hold_pay-1" || h.Status != entities.HoldStatusHeld || h.AmountCents != 8000 {
				t.Fatalf("unexpected hold %+v", h)
			}
			return h, nil
		})

		got, err := uc.Capture(context.Background(), "pay-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.PaymentStatusCaptured || got.Operation != "" {
			t.Fatalf("expected captured without lease, got %s/%q", got.Status, got.Operation)
		}
	})

	t.Run("processor failure releases the lease", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		processor := mock_interfaces.NewMockIPaymentProcessor(ctrl)
		uc := newTestPaymentUseCase(repo, nil, processor)

		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.Payment{
			ID: "pay-1", ProviderPaymentID: "pi_1", AmountCents: 8000, Status: entities.PaymentStatusAuthorized, Version: 1,
		}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), int64(1)).DoAndReturn(bumpPayment)
		processor.EXPECT().Capture(gomock.Any(), "pi_1", int64(8000)).Return(interfaces.ProcessorResult{}, errors.New("503"))
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), int64(2)).DoAndReturn(func(_ context.Context, p entities.Payment, expected int64) (entities.Payment, error) {
			if p.Operation != "" || p.Status != entities.PaymentStatusAuthorized {
				t.Fatalf("expected authorized payment without lease, got %s/%q", p.Status, p.Operation)
			}
			return bumpPayment(context.Background(), p, expected)
		})

		_, err := uc.Capture(context.Background(), "pay-1")
		if !errors.Is(err, ErrPaymentProcessorFailure) {
			t.Fatalf("expected ErrPaymentProcessorFailure, got %v", err)
		}
	})

	t.Run("lost lease race", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		processor := mock_interfaces.NewMockIPaymentProcessor(ctrl)
		uc := newTestPaymentUseCase(repo, nil, processor)

		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.Payment{ID: "pay-1", Status: entities.PaymentStatusAuthorized, Version: 1}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), int64(1)).Return(entities.Payment{}, entities.ErrVersionConflict)
		processor.EXPECT().Capture(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := uc.Capture(context.Background(), "pay-1")
		if !errors.Is(err, entities.ErrVersionConflict) {
			t.Fatalf("expected ErrVersionConflict, got %v", err)
		}
	})
}

func TestPaymentUseCase_Release(t *testing.T) {
	t.Run("pays amount minus commission and closes hold", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		holds := mock_interfaces.NewMockIPaymentHoldRepository(ctrl)
		processor := mock_interfaces.NewMockIPaymentProcessor(ctrl)
		uc := newTestPaymentUseCase(repo, holds, processor)

		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.Payment{
			ID: "pay-1", ProviderPaymentID: "pi_1", PayeeRef: "acct_1", AmountCents: 8000, CommissionCents: 80,
			Currency: "eur", Status: entities.PaymentStatusCaptured, Version: 4,
		}, nil)
		holds.EXPECT().GetByID(gomock.Any(), "hold_pay-1").Return(entities.PaymentHold{ID: "hold_pay-1", Status: entities.HoldStatusHeld, Version: 1}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), int64(4)).DoAndReturn(bumpPayment)
		processor.EXPECT().Release(gomock.Any(), interfaces.ReleaseRequest{
			PaymentID: "pay-1", ProviderPaymentID: "pi_1", PayeeRef: "acct_1", AmountCents: 7920, Currency: "eur",
		}).Return(interfaces.ProcessorResult{Status: entities.PaymentStatusSucceeded, TransferID: "tr_1"}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), int64(5)).DoAndReturn(bumpPayment)
		holds.EXPECT().Update(gomock.Any(), gomock.Any(), int64(1)).DoAndReturn(func(_ context.Context, h entities.PaymentHold, _ int64) (entities.PaymentHold, error) {
			if h.Status != entities.HoldStatusReleased || h.ReleasedAt == nil {
				t.Fatalf("expected released hold, got %+v", h)
			}
			return h, nil
		})

		got, err := uc.Release(context.Background(), "pay-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.PaymentStatusSucceeded || got.TransferID != "tr_1" || got.Hold {
			t.Fatalf("unexpected payment %+v", got)
		}
	})

	t.Run("hold already refunded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		holds := mock_interfaces.NewMockIPaymentHoldRepository(ctrl)
		processor := mock_interfaces.NewMockIPaymentProcessor(ctrl)
		uc := newTestPaymentUseCase(repo, holds, processor)

		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.Payment{ID: "pay-1", Status: entities.PaymentStatusCaptured}, nil)
		holds.EXPECT().GetByID(gomock.Any(), "hold_pay-1").Return(entities.PaymentHold{ID: "hold_pay-1", Status: entities.HoldStatusRefunded}, nil)
		processor.EXPECT().Release(gomock.Any(), gomock.Any()).Times(0)

		_, err := uc.Release(context.Background(), "pay-1")
		if !errors.Is(err, ErrHoldNotHeld) {
			t.Fatalf("expected ErrHoldNotHeld, got %v", err)
		}
	})

	t.Run("paid payment closes a stale hold", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		holds := mock_interfaces.NewMockIPaymentHoldRepository(ctrl)
		processor := mock_interfaces.NewMockIPaymentProcessor(ctrl)
		uc := newTestPaymentUseCase(repo, holds, processor)

		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.Payment{ID: "pay-1", Status: entities.PaymentStatusSucceeded, Version: 6}, nil)
		holds.EXPECT().GetByID(gomock.Any(), "hold_pay-1").Return(entities.PaymentHold{}, nil)
		holds.EXPECT().GetByPaymentID(gomock.Any(), "pay-1").Return(entities.PaymentHold{ID: "h-legacy", Status: entities.HoldStatusHeld, Version: 2}, nil)
		holds.EXPECT().Update(gomock.Any(), gomock.Any(), int64(2)).DoAndReturn(func(_ context.Context, h entities.PaymentHold, _ int64) (entities.PaymentHold, error) {
			if h.ID != "h-legacy" || h.Status != entities.HoldStatusReleased || h.ReleasedAt == nil {
				t.Fatalf("expected released hold, got %+v", h)
			}
			return h, nil
		})
		processor.EXPECT().Release(gomock.Any(), gomock.Any()).Times(0)

		got, err := uc.Release(context.Background(), "pay-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Version != 6 {
			t.Fatalf("expected unchanged payment, got version %d", got.Version)
		}
	})

	t.Run("concurrent hold create reads the winner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		holds := mock_interfaces.NewMockIPaymentHoldRepository(ctrl)
		processor := mock_interfaces.NewMockIPaymentProcessor(ctrl)
		uc := newTestPaymentUseCase(repo, holds, processor)

		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.Payment{ID: "pay-1", Status: entities.PaymentStatusCaptured}, nil)
		gomock.InOrder(
			holds.EXPECT().GetByID(gomock.Any(), "hold_pay-1").Return(entities.PaymentHold{}, nil),
			holds.EXPECT().GetByPaymentID(gomock.Any(), "pay-1").Return(entities.PaymentHold{}, nil),
			holds.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.PaymentHold{}, entities.ErrConflict),
			holds.EXPECT().GetByID(gomock.Any(), "hold_pay-1").Return(entities.PaymentHold{ID: "hold_pay-1", Status: entities.HoldStatusReleased}, nil),
		)
		processor.EXPECT().Release(gomock.Any(), gomock.Any()).Times(0)

		_, err := uc.Release(context.Background(), "pay-1")
		if !errors.Is(err, ErrHoldNotHeld) {
			t.Fatalf("expected ErrHoldNotHeld, got %v", err)
		}
	})

	t.Run("authorized payment cannot be released", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := newTestPaymentUseCase(repo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.Payment{ID: "pay-1", Status: entities.PaymentStatusAuthorized}, nil)

		_, err := uc.Release(context.Background(), "pay-1")
		if !errors.Is(err, ErrPaymentNotCaptured) {
			t.Fatalf("expected ErrPaymentNotCaptured, got %v", err)
		}
	})
}

func TestPaymentUseCase_VoidAndRefund(t *testing.T) {
	t.Run("void after capture rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := newTestPaymentUseCase(repo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.Payment{ID: "pay-1", Status: entities.PaymentStatusCaptured}, nil)

		_, err := uc.Void(context.Background(), "pay-1")
		if !errors.Is(err, ErrPaymentAlreadyCaptured) {
			t.Fatalf("expected ErrPaymentAlreadyCaptured, got %v", err)
		}
	})

	t.Run("void without provider id skips processor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		processor := mock_interfaces.NewMockIPaymentProcessor(ctrl)
		uc := newTestPaymentUseCase(repo, nil, processor)

		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.Payment{ID: "pay-1", Status: entities.PaymentStatusPending, Version: 1}, nil)
		processor.EXPECT().Void(gomock.Any(), gomock.Any()).Times(0)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), int64(1)).DoAndReturn(bumpPayment)

		got, err := uc.Void(context.Background(), "pay-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.PaymentStatusVoided || got.VoidedAt == nil {
			t.Fatalf("expected voided, got %+v", got)
		}
	})

	t.Run("void of an in-flight authorization is busy", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := newTestPaymentUseCase(repo, nil, mock_interfaces.NewMockIPaymentProcessor(ctrl))

		started := fixedNow.Add(-time.Second)
		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.Payment{
			ID: "pay-1", Status: entities.PaymentStatusPending, Operation: "authorize", OperationStartedAt: &started,
		}, nil)

		_, err := uc.Void(context.Background(), "pay-1")
		if !errors.Is(err, ErrPaymentBusy) {
			t.Fatalf("expected ErrPaymentBusy, got %v", err)
		}
	})

	t.Run("refund before capture rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := newTestPaymentUseCase(repo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.Payment{ID: "pay-1", Status: entities.PaymentStatusAuthorized}, nil)

		_, err := uc.Refund(context.Background(), "pay-1")
		if !errors.Is(err, ErrPaymentNotCaptured) {
			t.Fatalf("expected ErrPaymentNotCaptured, got %v", err)
		}
	})

	t.Run("refund already refunded is idempotent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		processor := mock_interfaces.NewMockIPaymentProcessor(ctrl)
		uc := newTestPaymentUseCase(repo, nil, processor)

		repo.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.Payment{ID: "pay-1", Status: entities.PaymentStatusRefunded}, nil)
		processor.EXPECT().Refund(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		if _, err := uc.Refund(context.Background(), "pay-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestPaymentUseCase_ApplyProcessorEvent(t *testing.T) {
	t.Run("unknown provider id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := newTestPaymentUseCase(repo, nil, nil)

		repo.EXPECT().GetByProviderPaymentID(gomock.Any(), "pi_x").Return(entities.Payment{}, nil)

		_, err := uc.ApplyProcessorEvent(context.Background(), interfaces.ProcessorEvent{ProviderPaymentID: "pi_x", Status: entities.PaymentStatusAuthorized})
		if !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})

	t.Run("backwards event ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := newTestPaymentUseCase(repo, nil, nil)

		repo.EXPECT().GetByProviderPaymentID(gomock.Any(), "pi_1").Return(entities.Payment{ID: "pay-1", Status: entities.PaymentStatusCaptured}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		got, err := uc.ApplyProcessorEvent(context.Background(), interfaces.ProcessorEvent{ProviderPaymentID: "pi_1", Status: entities.PaymentStatusAuthorized})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.PaymentStatusCaptured {
			t.Fatalf("expected captured, got %s", got.Status)
		}
	})

	t.Run("event during an operation asks for redelivery", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := newTestPaymentUseCase(repo, nil, nil)

		started := fixedNow.Add(-time.Second)
		repo.EXPECT().GetByProviderPaymentID(gomock.Any(), "pi_1").Return(entities.Payment{
			ID: "pay-1", Status: entities.PaymentStatusAuthorized, Operation: "capture", OperationStartedAt: &started,
		}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := uc.ApplyProcessorEvent(context.Background(), interfaces.ProcessorEvent{ProviderPaymentID: "pi_1", Status: entities.PaymentStatusCaptured})
		if !errors.Is(err, ErrPaymentBusy) || !errors.Is(err, entities.ErrConflict) {
			t.Fatalf("expected ErrPaymentBusy so the event is redelivered, got %v", err)
		}
	})

	t.Run("failure event records reason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := newTestPaymentUseCase(repo, nil, nil)

		repo.EXPECT().GetByProviderPaymentID(gomock.Any(), "pi_1").Return(entities.Payment{ID: "pay-1", Status: entities.PaymentStatusPending, Version: 2}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), int64(2)).DoAndReturn(bumpPayment)

		got, err := uc.ApplyProcessorEvent(context.Background(), interfaces.ProcessorEvent{
			ProviderPaymentID: "pi_1", Status: entities.PaymentStatusFailed, FailureReason: "authentication_required",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.PaymentStatusFailed || got.FailureReason != "authentication_required" {
			t.Fatalf("unexpected payment %+v", got)
		}
	})
}

func TestPaymentUseCase_ActiveForQuote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
	uc := newTestPaymentUseCase(repo, nil, nil)

	repo.EXPECT().ListByQuoteID(gomock.Any(), "q-1").Return([]entities.Payment{
		{ID: "old", Status: entities.PaymentStatusFailed, CreatedAt: fixedNow.Add(-2 * time.Hour)},
		{ID: "live", Status: entities.PaymentStatusAuthorized, CreatedAt: fixedNow.Add(-time.Hour)},
		{ID: "voided", Status: entities.PaymentStatusVoided, CreatedAt: fixedNow},
	}, nil)

	got, err := uc.ActiveForQuote(context.Background(), "q-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "live" {
		t.Fatalf("expected live payment, got %q", got.ID)
	}
}
