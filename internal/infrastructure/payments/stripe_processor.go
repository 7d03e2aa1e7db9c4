package payments

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase/interfaces"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

var ErrMissingStripeSecretKey = errors.New("missing STRIPE_SECRET_KEY")

type stripeIntents interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	Capture(id string, params *stripe.PaymentIntentCaptureParams) (*stripe.PaymentIntent, error)
	Cancel(id string, params *stripe.PaymentIntentCancelParams) (*stripe.PaymentIntent, error)
}

type stripeTransfers interface {
	New(params *stripe.TransferParams) (*stripe.Transfer, error)
}

type stripeRefunds interface {
	New(params *stripe.RefundParams) (*stripe.Refund, error)
}

// StripeProcessor holds funds with manual-capture PaymentIntents and pays
// repairers with Connect transfers tied to the captured charge.
type StripeProcessor struct {
	intents   stripeIntents
	transfers stripeTransfers
	refunds   stripeRefunds
}

var _ interfaces.IPaymentProcessor = (*StripeProcessor)(nil)

func NewStripeProcessor(secretKey string) (*StripeProcessor, error) {
	secretKey = strings.TrimSpace(secretKey)
	if secretKey == "" {
		slog.Error("[payment][stripe] missing STRIPE_SECRET_KEY")
		return nil, ErrMissingStripeSecretKey
	}
	sc := client.New(secretKey, nil)
	slog.Info("[payment][stripe] client initialized")
	return &StripeProcessor{intents: sc.PaymentIntents, transfers: sc.Transfers, refunds: sc.Refunds}, nil
}

func (s *StripeProcessor) Name() string { return ProviderStripe }

// Authorize confirms immediately when a payment method is given. Without one
// the intent waits for the client to confirm with the returned client secret.
func (s *StripeProcessor) Authorize(ctx context.Context, req interfaces.AuthorizationRequest) (interfaces.ProcessorResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.AmountCents),
		Currency:      stripe.String(req.Currency),
		CaptureMethod: stripe.String(string(stripe.PaymentIntentCaptureMethodManual)),
		Description:   stripe.String(req.Description),
		TransferGroup: stripe.String(req.QuoteID),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	if ref := strings.TrimSpace(req.PaymentMethodRef); ref != "" {
		params.PaymentMethod = stripe.String(ref)
		params.Confirm = stripe.Bool(true)
	}
	params.AddMetadata("payment_id", req.PaymentID)
	params.AddMetadata("quote_id", req.QuoteID)
	params.AddMetadata("payee_ref", req.PayeeRef)
	params.Context = ctx
	params.SetIdempotencyKey("authorize-" + req.PaymentID)

	pi, err := s.intents.New(params)
	if err != nil {
		slog.Warn("[payment][stripe] create intent failed", "payment_id", req.PaymentID, "err", err)
		return interfaces.ProcessorResult{}, stripeError(err)
	}
	res := stripeIntentResult(pi)
	res.ClientSecret = pi.ClientSecret
	if res.Status == entities.PaymentStatusFailed {
		return interfaces.ProcessorResult{}, &interfaces.ProcessorError{
			Provider: ProviderStripe, Code: "authorization_failed", Message: res.FailureReason, Declined: true,
		}
	}
	return res, nil
}

func (s *StripeProcessor) Capture(ctx context.Context, providerPaymentID string, amountCents int64) (interfaces.ProcessorResult, error) {
	params := &stripe.PaymentIntentCaptureParams{AmountToCapture: stripe.Int64(amountCents)}
	params.Context = ctx
	params.SetIdempotencyKey("capture-" + providerPaymentID)
	pi, err := s.intents.Capture(providerPaymentID, params)
	if err != nil {
		slog.Warn("[payment][stripe] capture failed", "provider_payment_id", providerPaymentID, "err", err)
		return interfaces.ProcessorResult{}, stripeError(err)
	}
	return stripeIntentResult(pi), nil
}

func (s *StripeProcessor) Release(ctx context.Context, req interfaces.ReleaseRequest) (interfaces.ProcessorResult, error) {
	if !strings.HasPrefix(req.PayeeRef, "acct_") {
		return interfaces.ProcessorResult{}, &interfaces.ProcessorError{
			Provider: ProviderStripe, Code: "invalid_destination", Message: "payee has no connected account",
		}
	}
	getParams := &stripe.PaymentIntentParams{}
	getParams.Context = ctx
	pi, err := s.intents.Get(req.ProviderPaymentID, getParams)
	if err != nil {
		return interfaces.ProcessorResult{}, stripeError(err)
	}
	if pi.LatestCharge == nil || pi.LatestCharge.ID == "" {
		return interfaces.ProcessorResult{}, &interfaces.ProcessorError{
			Provider: ProviderStripe, Code: "charge_missing", Message: "payment intent has no captured charge",
		}
	}

	params := &stripe.TransferParams{
		Amount:            stripe.Int64(req.AmountCents),
		Currency:          stripe.String(req.Currency),
		Destination:       stripe.String(req.PayeeRef),
		SourceTransaction: stripe.String(pi.LatestCharge.ID),
	}
	params.AddMetadata("payment_id", req.PaymentID)
	params.Context = ctx
	params.SetIdempotencyKey("release-" + req.PaymentID)
	tr, err := s.transfers.New(params)
	if err != nil {
		slog.Warn("[payment][stripe] transfer failed", "payment_id", req.PaymentID, "err", err)
		return interfaces.ProcessorResult{}, stripeError(err)
	}
	raw, _ := json.Marshal(tr)
	return interfaces.ProcessorResult{
		ProviderPaymentID: req.ProviderPaymentID,
		ProviderStatus:    "transferred",
		Status:            entities.PaymentStatusSucceeded,
		TransferID:        tr.ID,
		Raw:               raw,
	}, nil
}

func (s *StripeProcessor) Void(ctx context.Context, providerPaymentID string) (interfaces.ProcessorResult, error) {
	params := &stripe.PaymentIntentCancelParams{CancellationReason: stripe.String("requested_by_customer")}
	params.Context = ctx
	pi, err := s.intents.Cancel(providerPaymentID, params)
	if err != nil {
		slog.Warn("[payment][stripe] cancel failed", "provider_payment_id", providerPaymentID, "err", err)
		return interfaces.ProcessorResult{}, stripeError(err)
	}
	return stripeIntentResult(pi), nil
}

func (s *StripeProcessor) Refund(ctx context.Context, providerPaymentID string, amountCents int64) (interfaces.ProcessorResult, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(providerPaymentID),
		Amount:        stripe.Int64(amountCents),
	}
	params.Context = ctx
	params.SetIdempotencyKey("refund-" + providerPaymentID)
	rf, err := s.refunds.New(params)
	if err != nil {
		slog.Warn("[payment][stripe] refund failed", "provider_payment_id", providerPaymentID, "err", err)
		return interfaces.ProcessorResult{}, stripeError(err)
	}
	raw, _ := json.Marshal(rf)
	return interfaces.ProcessorResult{
		ProviderPaymentID: providerPaymentID,
		ProviderStatus:    string(rf.Status),
		Status:            entities.PaymentStatusRefunded,
		Raw:               raw,
	}, nil
}

func stripeIntentResult(pi *stripe.PaymentIntent) interfaces.ProcessorResult {
	raw, _ := json.Marshal(pi)
	res := interfaces.ProcessorResult{
		ProviderPaymentID: pi.ID,
		ProviderStatus:    string(pi.Status),
		Status:            mapStripeIntentStatus(pi),
		Raw:               raw,
	}
	if pi.LastPaymentError != nil {
		res.FailureReason = pi.LastPaymentError.Msg
	}
	return res
}

func mapStripeIntentStatus(pi *stripe.PaymentIntent) entities.PaymentStatus {
	switch pi.Status {
	case stripe.PaymentIntentStatusRequiresCapture:
		return entities.PaymentStatusAuthorized
	case stripe.PaymentIntentStatusSucceeded:
		return entities.PaymentStatusCaptured
	case stripe.PaymentIntentStatusCanceled:
		return entities.PaymentStatusVoided
	case stripe.PaymentIntentStatusRequiresPaymentMethod:
		if pi.LastPaymentError != nil {
			return entities.PaymentStatusFailed
		}
	}
	return entities.PaymentStatusPending
}

func stripeError(err error) error {
	pe := &interfaces.ProcessorError{Provider: ProviderStripe, Message: err.Error(), Err: err}
	var se *stripe.Error
	if errors.As(err, &se) {
		pe.Code = string(se.Code)
		if se.Msg != "" {
			pe.Message = se.Msg
		}
		pe.Declined = se.Type == stripe.ErrorTypeCard
	}
	return pe
}
