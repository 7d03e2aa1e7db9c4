package payments

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"topreparateurs/internal/usecase/interfaces"
)

const (
	ProviderStripe      = "stripe"
	ProviderMercadoPago = "mercadopago"
	ProviderMock        = "mock"
)

var ErrUnknownProvider = errors.New("unknown payment provider")

// Config selects and configures the payment processor.
type Config struct {
	Provider               string
	Mock                   bool
	StripeSecretKey        string
	MercadoPagoAccessToken string
	MercadoPagoPayerEmail  string
}

// NewProcessor builds the processor named by cfg.Provider. The mock processor
// is used whenever cfg.Mock is set or PAYMENT_GATEWAY_MOCK / MERCADOPAGO_MOCK
// is enabled in the environment.
func NewProcessor(cfg Config) (interfaces.IPaymentProcessor, error) {
	if cfg.Mock || isPaymentGatewayMockEnabled() {
		slog.Info("[payment][processor] mock mode enabled")
		return NewMockProcessor(), nil
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderStripe, "":
		p, err := NewStripeProcessor(cfg.StripeSecretKey)
		if err != nil {
			return nil, err
		}
		return p, nil
	case ProviderMercadoPago:
		p, err := NewMercadoPagoProcessor(cfg.MercadoPagoAccessToken, cfg.MercadoPagoPayerEmail)
		if err != nil {
			return nil, err
		}
		return p, nil
	case ProviderMock:
		return NewMockProcessor(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
}
