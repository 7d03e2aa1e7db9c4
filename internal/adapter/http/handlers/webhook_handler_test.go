package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"topreparateurs/internal/adapter/http/handlers/mocks"
	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase"
	"topreparateurs/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

type stubParser struct {
	evt interfaces.ProcessorEvent
	ok  bool
	err error

	gotPayload   string
	gotSignature string
}

func (p *stubParser) Parse(payload []byte, signature string) (interfaces.ProcessorEvent, bool, error) {
	p.gotPayload, p.gotSignature = string(payload), signature
	return p.evt, p.ok, p.err
}

func postWebhook(r http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/stripe", strings.NewReader(`{"id":"evt_1"}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookHandler_Stripe(t *testing.T) {
	evt := interfaces.ProcessorEvent{Provider: "stripe", EventID: "evt_1", ProviderPaymentID: "pi_1", Status: entities.PaymentStatusAuthorized}

	t.Run("bad signature", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		parser := &stubParser{err: errors.New("invalid signature")}
		r := gin.New()
		r.POST("/v1/webhooks/stripe", NewWebhookHandler(parser, mocks.NewMockIQuoteUseCase(ctrl)).Stripe)

		w := postWebhook(r)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if parser.gotSignature != "t=1,v1=abc" || parser.gotPayload != `{"id":"evt_1"}` {
			t.Fatalf("parser got %q %q", parser.gotPayload, parser.gotSignature)
		}
	})

	t.Run("irrelevant event acknowledged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		r := gin.New()
		r.POST("/v1/webhooks/stripe", NewWebhookHandler(&stubParser{}, mocks.NewMockIQuoteUseCase(ctrl)).Stripe)

		if w := postWebhook(r); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("applied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quotes := mocks.NewMockIQuoteUseCase(ctrl)
		r := gin.New()
		r.POST("/v1/webhooks/stripe", NewWebhookHandler(&stubParser{evt: evt, ok: true}, quotes).Stripe)

		quotes.EXPECT().ReconcilePayment(gomock.Any(), evt).Return(entities.Payment{ID: "pay-1", Status: entities.PaymentStatusAuthorized}, nil)
		if w := postWebhook(r); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("unknown payment acknowledged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quotes := mocks.NewMockIQuoteUseCase(ctrl)
		r := gin.New()
		r.POST("/v1/webhooks/stripe", NewWebhookHandler(&stubParser{evt: evt, ok: true}, quotes).Stripe)

		quotes.EXPECT().ReconcilePayment(gomock.Any(), evt).Return(entities.Payment{}, usecase.ErrPaymentNotFound)
		if w := postWebhook(r); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("conflict asks for redelivery", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quotes := mocks.NewMockIQuoteUseCase(ctrl)
		r := gin.New()
		r.POST("/v1/webhooks/stripe", NewWebhookHandler(&stubParser{evt: evt, ok: true}, quotes).Stripe)

		quotes.EXPECT().ReconcilePayment(gomock.Any(), evt).Return(entities.Payment{}, entities.ErrVersionConflict)
		if w := postWebhook(r); w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("operation in flight asks for redelivery", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quotes := mocks.NewMockIQuoteUseCase(ctrl)
		r := gin.New()
		r.POST("/v1/webhooks/stripe", NewWebhookHandler(&stubParser{evt: evt, ok: true}, quotes).Stripe)

		quotes.EXPECT().ReconcilePayment(gomock.Any(), evt).Return(entities.Payment{}, usecase.ErrPaymentBusy)
		w := postWebhook(r)
		if w.Code != http.StatusConflict || decode(t, w)["code"] != "PAYMENT_BUSY" {
			t.Fatalf("expected 409 PAYMENT_BUSY, got %d %s", w.Code, w.Body.String())
		}
	})
}
