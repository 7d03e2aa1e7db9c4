package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/refund"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")

type mercadoPagoPayments interface {
	Create(ctx context.Context, request payment.Request) (*payment.Response, error)
	Capture(ctx context.Context, id int) (*payment.Response, error)
	Cancel(ctx context.Context, id int) (*payment.Response, error)
}

type mercadoPagoRefunds interface {
	Create(ctx context.Context, paymentID int) (*refund.Response, error)
}

// MercadoPagoProcessor authorizes with capture=false and captures on
// validation. The platform commission is taken as application_fee, so release
// only confirms the captured payment: Mercado Pago disburses the collector's
// share on its own schedule.
type MercadoPagoProcessor struct {
	payments   mercadoPagoPayments
	refunds    mercadoPagoRefunds
	payerEmail string
}

var _ interfaces.IPaymentProcessor = (*MercadoPagoProcessor)(nil)

func NewMercadoPagoProcessor(accessToken, payerEmail string) (*MercadoPagoProcessor, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		slog.Error("[payment][mercadopago] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}
	cfg, err := config.New(accessToken)
	if err != nil {
		slog.Error("[payment][mercadopago] failed creating sdk config", "err", err)
		return nil, err
	}
	if payerEmail == "" && strings.HasPrefix(accessToken, "TEST-") {
		payerEmail = "test_user_br@testuser.com"
	}
	slog.Info("[payment][mercadopago] client initialized")
	return &MercadoPagoProcessor{payments: payment.NewClient(cfg), refunds: refund.NewClient(cfg), payerEmail: payerEmail}, nil
}

func (g *MercadoPagoProcessor) Name() string { return ProviderMercadoPago }

// Authorize expects PaymentMethodRef as "<payment_method_id>:<card_token>".
func (g *MercadoPagoProcessor) Authorize(ctx context.Context, req interfaces.AuthorizationRequest) (interfaces.ProcessorResult, error) {
	methodID, token, _ := strings.Cut(strings.TrimSpace(req.PaymentMethodRef), ":")
	if methodID == "" {
		return interfaces.ProcessorResult{}, &interfaces.ProcessorError{
			Provider: ProviderMercadoPago, Code: "invalid_payment_method", Message: "payment method is required", Declined: true,
		}
	}

	body := map[string]any{
		"transaction_amount": entities.FromCents(req.AmountCents),
		"application_fee":    entities.FromCents(req.CommissionCents),
		"description":        req.Description,
		"payment_method_id":  methodID,
		"installments":       1,
		"capture":            false,
		"binary_mode":        true,
		"external_reference": req.PaymentID,
		"metadata": map[string]any{
			"quote_id":   req.QuoteID,
			"payment_id": req.PaymentID,
			"payee_ref":  req.PayeeRef,
		},
		"payer": g.payer(req.PayerRef),
	}
	if token != "" {
		body["token"] = token
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return interfaces.ProcessorResult{}, err
	}
	var mpReq payment.Request
	if err := json.Unmarshal(raw, &mpReq); err != nil {
		slog.Error("[payment][mercadopago] request build failed", "err", err)
		return interfaces.ProcessorResult{}, err
	}

	slog.Info("[payment][mercadopago] authorize start", "payment_id", req.PaymentID, "amount_cents", req.AmountCents)
	resp, err := g.payments.Create(ctx, mpReq)
	if err != nil {
		slog.Warn("[payment][mercadopago] sdk create failed", "payment_id", req.PaymentID, "err", err)
		return interfaces.ProcessorResult{}, mercadoPagoError(err)
	}
	res := mercadoPagoResult(resp)
	if res.Status == entities.PaymentStatusFailed {
		return interfaces.ProcessorResult{}, &interfaces.ProcessorError{
			Provider: ProviderMercadoPago, Code: resp.StatusDetail, Message: "payment " + resp.Status, Declined: true,
		}
	}
	return res, nil
}

func (g *MercadoPagoProcessor) Capture(ctx context.Context, providerPaymentID string, _ int64) (interfaces.ProcessorResult, error) {
	id, err := mercadoPagoID(providerPaymentID)
	if err != nil {
		return interfaces.ProcessorResult{}, err
	}
	resp, err := g.payments.Capture(ctx, id)
	if err != nil {
		slog.Warn("[payment][mercadopago] capture failed", "provider_payment_id", id, "err", err)
		return interfaces.ProcessorResult{}, mercadoPagoError(err)
	}
	return mercadoPagoResult(resp), nil
}

func (g *MercadoPagoProcessor) Release(_ context.Context, req interfaces.ReleaseRequest) (interfaces.ProcessorResult, error) {
	if _, err := mercadoPagoID(req.ProviderPaymentID); err != nil {
		return interfaces.ProcessorResult{}, err
	}
	raw, _ := json.Marshal(map[string]any{
		"id":            req.ProviderPaymentID,
		"payout_amount": entities.FromCents(req.AmountCents),
		"collector":     req.PayeeRef,
	})
	return interfaces.ProcessorResult{
		ProviderPaymentID: req.ProviderPaymentID,
		ProviderStatus:    "approved",
		Status:            entities.PaymentStatusSucceeded,
		Raw:               raw,
	}, nil
}

func (g *MercadoPagoProcessor) Void(ctx context.Context, providerPaymentID string) (interfaces.ProcessorResult, error) {
	id, err := mercadoPagoID(providerPaymentID)
	if err != nil {
		return interfaces.ProcessorResult{}, err
	}
	resp, err := g.payments.Cancel(ctx, id)
	if err != nil {
		slog.Warn("[payment][mercadopago] cancel failed", "provider_payment_id", id, "err", err)
		return interfaces.ProcessorResult{}, mercadoPagoError(err)
	}
	return mercadoPagoResult(resp), nil
}

func (g *MercadoPagoProcessor) Refund(ctx context.Context, providerPaymentID string, _ int64) (interfaces.ProcessorResult, error) {
	id, err := mercadoPagoID(providerPaymentID)
	if err != nil {
		return interfaces.ProcessorResult{}, err
	}
	resp, err := g.refunds.Create(ctx, id)
	if err != nil {
		slog.Warn("[payment][mercadopago] refund failed", "provider_payment_id", id, "err", err)
		return interfaces.ProcessorResult{}, mercadoPagoError(err)
	}
	raw, _ := json.Marshal(resp)
	return interfaces.ProcessorResult{
		ProviderPaymentID: providerPaymentID,
		ProviderStatus:    resp.Status,
		Status:            entities.PaymentStatusRefunded,
		Raw:               raw,
	}, nil
}

func (g *MercadoPagoProcessor) payer(ref string) map[string]any {
	payer := map[string]any{"type": "customer"}
	if strings.Contains(ref, "@") {
		payer["email"] = ref
	} else if g.payerEmail != "" {
		payer["email"] = g.payerEmail
	}
	return payer
}

func mercadoPagoResult(resp *payment.Response) interfaces.ProcessorResult {
	raw, _ := json.Marshal(resp)
	return interfaces.ProcessorResult{
		ProviderPaymentID: strconv.Itoa(resp.ID),
		ProviderStatus:    resp.Status,
		Status:            mapMercadoPagoStatus(resp.Status, resp.Captured),
		FailureReason:     resp.StatusDetail,
		Raw:               raw,
	}
}

func mapMercadoPagoStatus(status string, captured bool) entities.PaymentStatus {
	switch strings.ToLower(status) {
	case "authorized":
		return entities.PaymentStatusAuthorized
	case "approved":
		if captured {
			return entities.PaymentStatusCaptured
		}
		return entities.PaymentStatusAuthorized
	case "pending", "in_process", "in_mediation":
		return entities.PaymentStatusPending
	case "cancelled":
		return entities.PaymentStatusVoided
	case "refunded", "charged_back":
		return entities.PaymentStatusRefunded
	}
	return entities.PaymentStatusFailed
}

func mercadoPagoID(providerPaymentID string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(providerPaymentID))
	if err != nil || id <= 0 {
		return 0, &interfaces.ProcessorError{
			Provider: ProviderMercadoPago, Code: "invalid_payment_id",
			Message: fmt.Sprintf("invalid provider payment id %q", providerPaymentID),
		}
	}
	return id, nil
}

// mercadoPagoError classifies SDK errors from their JSON body.
func mercadoPagoError(err error) error {
	msg := strings.ToLower(err.Error())
	pe := &interfaces.ProcessorError{Provider: ProviderMercadoPago, Message: err.Error(), Err: err}
	switch {
	case strings.Contains(msg, "\"status\":401") || strings.Contains(msg, "\"error\":\"unauthorized\""):
		pe.Code = "unauthorized"
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034"):
		pe.Code = "invalid_users"
		pe.Declined = true
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002"):
		pe.Code = "customer_not_found"
		pe.Declined = true
	case strings.Contains(msg, "\"status\":400") || strings.Contains(msg, "\"error\":\"bad_request\""):
		pe.Code = "bad_request"
		pe.Declined = true
	}
	return pe
}
