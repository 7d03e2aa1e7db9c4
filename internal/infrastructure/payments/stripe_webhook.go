package payments

import (
	"encoding/json"
	"errors"
	"strings"

	"topreparateurs/internal/domain/entities"
	"topreparateurs/internal/usecase/interfaces"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
)

var (
	ErrWebhookNotConfigured = errors.New("stripe webhook secret not configured")
	ErrWebhookSignature     = errors.New("invalid stripe webhook signature")
)

var stripeEventStatus = map[stripe.EventType]entities.PaymentStatus{
	"payment_intent.amount_capturable_updated": entities.PaymentStatusAuthorized,
	"payment_intent.succeeded":                 entities.PaymentStatusCaptured,
	"payment_intent.payment_failed":            entities.PaymentStatusFailed,
	"payment_intent.canceled":                  entities.PaymentStatusVoided,
}

// StripeWebhook verifies Stripe-Signature headers and maps PaymentIntent
// events onto processor events.
type StripeWebhook struct {
	secret string
}

func NewStripeWebhook(secret string) *StripeWebhook {
	return &StripeWebhook{secret: strings.TrimSpace(secret)}
}

// Parse returns ok=false for well-signed events that carry no payment update.
func (w *StripeWebhook) Parse(payload []byte, signature string) (evt interfaces.ProcessorEvent, ok bool, err error) {
	if w == nil || w.secret == "" {
		return interfaces.ProcessorEvent{}, false, ErrWebhookNotConfigured
	}
	event, err := webhook.ConstructEventWithOptions(payload, signature, w.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return interfaces.ProcessorEvent{}, false, errors.Join(ErrWebhookSignature, err)
	}
	status, known := stripeEventStatus[event.Type]
	if !known || event.Data == nil {
		return interfaces.ProcessorEvent{}, false, nil
	}
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return interfaces.ProcessorEvent{}, false, err
	}
	evt = interfaces.ProcessorEvent{
		Provider:          ProviderStripe,
		EventID:           event.ID,
		ProviderPaymentID: pi.ID,
		Status:            status,
		Raw:               event.Data.Raw,
	}
	if pi.LastPaymentError != nil {
		evt.FailureReason = pi.LastPaymentError.Msg
	}
	return evt, true, nil
}
