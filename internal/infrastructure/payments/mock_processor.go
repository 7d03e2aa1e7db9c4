package payments

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase/interfaces"
)

// Payment method references with a fixed behavior in the mock processor.
const (
	MockMethodDeclined = "pm_card_declined"
	MockMethodAsync    = "pm_card_async"
)

// MockProcessor is a deterministic in-process processor for local runs and
// tests. Provider ids are derived from the local payment id.
type MockProcessor struct {
	mu       sync.Mutex
	failNext map[string]error
	calls    []string
}

var _ interfaces.IPaymentProcessor = (*MockProcessor)(nil)

func NewMockProcessor() *MockProcessor {
	return &MockProcessor{failNext: map[string]error{}}
}

func (m *MockProcessor) Name() string { return ProviderMock }

// FailNext makes the next call of op ("authorize", "capture", "release",
// "void", "refund") return err.
func (m *MockProcessor) FailNext(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext[op] = err
}

// Calls lists the operations served so far, in order.
func (m *MockProcessor) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockProcessor) Authorize(_ context.Context, req interfaces.AuthorizationRequest) (interfaces.ProcessorResult, error) {
	if err := m.begin("authorize"); err != nil {
		return interfaces.ProcessorResult{}, err
	}
	id := "mock_" + req.PaymentID
	switch req.PaymentMethodRef {
	case MockMethodDeclined:
		return interfaces.ProcessorResult{}, &interfaces.ProcessorError{
			Provider: ProviderMock, Code: "card_declined", Message: "Your card was declined.", Declined: true,
		}
	case MockMethodAsync:
		return m.result(id, "requires_action", entities.PaymentStatusPending, map[string]any{"amount": req.AmountCents}), nil
	}
	res := m.result(id, "requires_capture", entities.PaymentStatusAuthorized, map[string]any{"amount": req.AmountCents})
	res.ClientSecret = id + "_secret"
	return res, nil
}

func (m *MockProcessor) Capture(_ context.Context, providerPaymentID string, amountCents int64) (interfaces.ProcessorResult, error) {
	if err := m.begin("capture"); err != nil {
		return interfaces.ProcessorResult{}, err
	}
	return m.result(providerPaymentID, "succeeded", entities.PaymentStatusCaptured, map[string]any{"amount_received": amountCents}), nil
}

func (m *MockProcessor) Release(_ context.Context, req interfaces.ReleaseRequest) (interfaces.ProcessorResult, error) {
	if err := m.begin("release"); err != nil {
		return interfaces.ProcessorResult{}, err
	}
	res := m.result(req.ProviderPaymentID, "paid", entities.PaymentStatusSucceeded, map[string]any{
		"amount":      req.AmountCents,
		"destination": req.PayeeRef,
	})
	res.TransferID = "mock_tr_" + req.PaymentID
	return res, nil
}

func (m *MockProcessor) Void(_ context.Context, providerPaymentID string) (interfaces.ProcessorResult, error) {
	if err := m.begin("void"); err != nil {
		return interfaces.ProcessorResult{}, err
	}
	return m.result(providerPaymentID, "canceled", entities.PaymentStatusVoided, nil), nil
}

func (m *MockProcessor) Refund(_ context.Context, providerPaymentID string, amountCents int64) (interfaces.ProcessorResult, error) {
	if err := m.begin("refund"); err != nil {
		return interfaces.ProcessorResult{}, err
	}
	return m.result(providerPaymentID, "refunded", entities.PaymentStatusRefunded, map[string]any{"amount_refunded": amountCents}), nil
}

func (m *MockProcessor) begin(op string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, op)
	if err, ok := m.failNext[op]; ok {
		delete(m.failNext, op)
		return err
	}
	return nil
}

func (m *MockProcessor) result(id, providerStatus string, status entities.PaymentStatus, extra map[string]any) interfaces.ProcessorResult {
	body := map[string]any{"id": id, "status": providerStatus, "created": time.Now().UTC().Format(time.RFC3339Nano)}
	for k, v := range extra {
		body[k] = v
	}
	raw, _ := json.Marshal(body)
	return interfaces.ProcessorResult{
		ProviderPaymentID: id,
		ProviderStatus:    providerStatus,
		Status:            status,
		Raw:               raw,
	}
}
