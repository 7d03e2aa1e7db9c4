// Package app assembles repositories, processors and use cases from configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"topreparateurs/internal/adapter/persistence/memory"
	"topreparateurs/internal/adapter/persistence/repository"
	"topreparateurs/internal/config"
	"topreparateurs/internal/infrastructure/database"
	"topreparateurs/internal/infrastructure/payments"
	"topreparateurs/internal/infrastructure/storage"
	"topreparateurs/internal/usecase"
	"topreparateurs/internal/usecase/interfaces"
)

// Repositories groups the storage ports used by the workflow.
type Repositories struct {
	Quotes   interfaces.IQuoteRepository
	Payments interfaces.IPaymentRepository
	Holds    interfaces.IPaymentHoldRepository
	Timeline interfaces.ITimelineRepository
	Disputes interfaces.IDisputeRepository
}

// MemoryRepositories keeps every record in process memory.
func MemoryRepositories() Repositories {
	return Repositories{
		Quotes:   memory.NewQuoteRepository(),
		Payments: memory.NewPaymentRepository(),
		Holds:    memory.NewPaymentHoldRepository(),
		Timeline: memory.NewTimelineRepository(),
		Disputes: memory.NewDisputeRepository(),
	}
}

func DynamoRepositories(ddb repository.DynamoAPI, tables config.TablesConfig) Repositories {
	return Repositories{
		Quotes:   repository.NewQuoteDynamoRepository(ddb, tables.Quotes),
		Payments: repository.NewPaymentDynamoRepository(ddb, tables.Payments),
		Holds:    repository.NewPaymentHoldDynamoRepository(ddb, tables.Holds),
		Timeline: repository.NewTimelineDynamoRepository(ddb, tables.Timeline),
		Disputes: repository.NewDisputeDynamoRepository(ddb, tables.Disputes),
	}
}

// App holds the wired use cases.
type App struct {
	Quotes   *usecase.QuoteUseCase
	Payments *usecase.PaymentUseCase
	Disputes *usecase.DisputeUseCase
	Holds    *usecase.HoldUseCase
	Webhook  *payments.StripeWebhook
}

// Components are the external collaborators New resolves from configuration.
// Nil fields disable the matching feature.
type Components struct {
	Repos     Repositories
	Processor interfaces.IPaymentProcessor
	Evidence  interfaces.IEvidenceStorage
}

// Assemble builds the use cases over already constructed components.
func Assemble(cfg config.Config, c Components) *App {
	timeline := usecase.NewTimelineRecorder(c.Repos.Timeline)
	pay := usecase.NewPaymentUseCase(c.Repos.Payments, c.Repos.Holds, c.Processor, usecase.PaymentConfig{
		Currency:      cfg.Payment.Currency,
		CommissionBps: cfg.Payment.CommissionBps,
		HoldDuration:  cfg.Payment.HoldDuration(),
	})
	return &App{
		Quotes:   usecase.NewQuoteUseCase(c.Repos.Quotes, pay, timeline, cfg.Payment.Currency),
		Payments: pay,
		Disputes: usecase.NewDisputeUseCase(c.Repos.Disputes, c.Repos.Quotes, pay, nil, c.Evidence, timeline),
		Holds:    usecase.NewHoldUseCase(c.Repos.Holds, c.Repos.Quotes, pay, timeline),
		Webhook:  payments.NewStripeWebhook(cfg.Payment.StripeWebhookSecret),
	}
}

// New resolves storage, the payment processor and evidence storage from cfg.
// A processor that cannot be configured is logged and left unset so read
// endpoints keep working; payment operations then fail explicitly.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	var c Components

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		slog.Warn("[app] using in-memory storage, data is lost on restart")
		c.Repos = MemoryRepositories()
	default:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.AWS)
		if err != nil {
			return nil, fmt.Errorf("connect dynamodb: %w", err)
		}
		c.Repos = DynamoRepositories(ddb, cfg.Tables)
	}

	processor, err := payments.NewProcessor(payments.Config{
		Provider:               cfg.Payment.Provider,
		Mock:                   cfg.Payment.Mock,
		StripeSecretKey:        cfg.Payment.StripeSecretKey,
		MercadoPagoAccessToken: cfg.Payment.MercadoPagoAccessToken,
		MercadoPagoPayerEmail:  cfg.Payment.MercadoPagoPayerEmail,
	})
	if err != nil {
		slog.Warn("[app] payment processor not configured", "provider", cfg.Payment.Provider, "err", err)
	} else {
		c.Processor = processor
	}

	if cfg.Evidence.Enabled() {
		ev, err := storage.NewMinioEvidenceStorage(cfg.Evidence, cfg.AWS.Region)
		if err != nil {
			return nil, fmt.Errorf("evidence storage: %w", err)
		}
		if err := ev.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("evidence bucket: %w", err)
		}
		c.Evidence = ev
	} else {
		slog.Info("[app] evidence storage disabled")
	}

	return Assemble(cfg, c), nil
}
