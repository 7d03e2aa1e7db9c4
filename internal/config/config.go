package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageDynamoDB = "dynamodb"
	StorageMemory   = "memory"
)

type Config struct {
	Port     string         `mapstructure:"port" yaml:"port"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Storage  StorageConfig  `mapstructure:"storage" yaml:"storage"`
	AWS      AWSConfig      `mapstructure:"aws" yaml:"aws"`
	Tables   TablesConfig   `mapstructure:"tables" yaml:"tables"`
	Payment  PaymentConfig  `mapstructure:"payment" yaml:"payment"`
	Auth     AuthConfig     `mapstructure:"auth" yaml:"auth"`
	Hold     HoldConfig     `mapstructure:"hold" yaml:"hold"`
	Evidence EvidenceConfig `mapstructure:"evidence" yaml:"evidence"`
	Rate     RateConfig     `mapstructure:"rate_limit" yaml:"rate_limit"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver"`
}

type AWSConfig struct {
	Region           string `mapstructure:"region" yaml:"region"`
	AccessKeyID      string `mapstructure:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey  string `mapstructure:"secret_access_key" yaml:"secret_access_key"`
	DynamoDBEndpoint string `mapstructure:"dynamodb_endpoint" yaml:"dynamodb_endpoint"`
}

type TablesConfig struct {
	Quotes   string `mapstructure:"quotes" yaml:"quotes"`
	Payments string `mapstructure:"payments" yaml:"payments"`
	Holds    string `mapstructure:"payment_holds" yaml:"payment_holds"`
	Timeline string `mapstructure:"timeline" yaml:"timeline"`
	Disputes string `mapstructure:"disputes" yaml:"disputes"`
}

type PaymentConfig struct {
	Provider               string `mapstructure:"provider" yaml:"provider"`
	Mock                   bool   `mapstructure:"mock" yaml:"mock"` // PAYMENT_GATEWAY_MOCK is read by the processor factory
	Currency               string `mapstructure:"currency" yaml:"currency"`
	CommissionBps          int64  `mapstructure:"commission_bps" yaml:"commission_bps"`
	HoldReleaseDays        int    `mapstructure:"hold_release_days" yaml:"hold_release_days"`
	StripeSecretKey        string `mapstructure:"stripe_secret_key" yaml:"stripe_secret_key"`
	StripeWebhookSecret    string `mapstructure:"stripe_webhook_secret" yaml:"stripe_webhook_secret"`
	MercadoPagoAccessToken string `mapstructure:"mercadopago_access_token" yaml:"mercadopago_access_token"`
	MercadoPagoPayerEmail  string `mapstructure:"mercadopago_payer_email" yaml:"mercadopago_payer_email"`
}

// HoldDuration is the time captured funds stay held before the sweep may release them.
func (p PaymentConfig) HoldDuration() time.Duration {
	return time.Duration(p.HoldReleaseDays) * 24 * time.Hour
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	JWTIssuer string `mapstructure:"jwt_issuer" yaml:"jwt_issuer"`
}

type HoldConfig struct {
	AutoRelease   bool          `mapstructure:"auto_release" yaml:"auto_release"`
	SweepInterval time.Duration `mapstructure:"sweep_interval" yaml:"sweep_interval"`
	SweepLimit    int           `mapstructure:"sweep_limit" yaml:"sweep_limit"`
}

type EvidenceConfig struct {
	Endpoint  string        `mapstructure:"endpoint" yaml:"endpoint"`
	AccessKey string        `mapstructure:"access_key" yaml:"access_key"`
	SecretKey string        `mapstructure:"secret_key" yaml:"secret_key"`
	Bucket    string        `mapstructure:"bucket" yaml:"bucket"`
	UseSSL    bool          `mapstructure:"use_ssl" yaml:"use_ssl"`
	URLExpiry time.Duration `mapstructure:"url_expiry" yaml:"url_expiry"`
}

// Enabled reports whether evidence uploads have a storage backend.
func (e EvidenceConfig) Enabled() bool {
	return strings.TrimSpace(e.Endpoint) != ""
}

type RateConfig struct {
	Limit  int           `mapstructure:"limit" yaml:"limit"`
	Window time.Duration `mapstructure:"window" yaml:"window"`
}

var envBindings = map[string]string{
	"port":                             "PORT",
	"log.level":                        "LOG_LEVEL",
	"log.format":                       "LOG_FORMAT",
	"storage.driver":                   "STORAGE_DRIVER",
	"aws.region":                       "AWS_REGION",
	"aws.access_key_id":                "AWS_ACCESS_KEY_ID",
	"aws.secret_access_key":            "AWS_SECRET_ACCESS_KEY",
	"aws.dynamodb_endpoint":            "DYNAMODB_ENDPOINT",
	"tables.quotes":                    "QUOTES_TABLE",
	"tables.payments":                  "PAYMENTS_TABLE",
	"tables.payment_holds":             "PAYMENT_HOLDS_TABLE",
	"tables.timeline":                  "TIMELINE_TABLE",
	"tables.disputes":                  "DISPUTES_TABLE",
	"payment.provider":                 "PAYMENT_PROVIDER",
	"payment.currency":                 "PAYMENT_CURRENCY",
	"payment.commission_bps":           "COMMISSION_BPS",
	"payment.hold_release_days":        "HOLD_RELEASE_DAYS",
	"payment.stripe_secret_key":        "STRIPE_SECRET_KEY",
	"payment.stripe_webhook_secret":    "STRIPE_WEBHOOK_SECRET",
	"payment.mercadopago_access_token": "MERCADOPAGO_ACCESS_TOKEN",
	"payment.mercadopago_payer_email":  "MERCADOPAGO_PAYER_EMAIL",
	"auth.jwt_secret":                  "JWT_SECRET",
	"auth.jwt_issuer":                  "JWT_ISSUER",
	"hold.auto_release":                "HOLD_AUTO_RELEASE",
	"hold.sweep_interval":              "HOLD_SWEEP_INTERVAL",
	"hold.sweep_limit":                 "HOLD_SWEEP_LIMIT",
	"evidence.endpoint":                "EVIDENCE_ENDPOINT",
	"evidence.access_key":              "EVIDENCE_ACCESS_KEY",
	"evidence.secret_key":              "EVIDENCE_SECRET_KEY",
	"evidence.bucket":                  "EVIDENCE_BUCKET",
	"evidence.use_ssl":                 "EVIDENCE_USE_SSL",
	"evidence.url_expiry":              "EVIDENCE_URL_EXPIRY",
	"rate_limit.limit":                 "RATE_LIMIT",
	"rate_limit.window":                "RATE_LIMIT_WINDOW",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("storage.driver", StorageDynamoDB)
	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.access_key_id", "local")
	v.SetDefault("aws.secret_access_key", "local")
	v.SetDefault("tables.quotes", "quotes")
	v.SetDefault("tables.payments", "payments")
	v.SetDefault("tables.payment_holds", "payment_holds")
	v.SetDefault("tables.timeline", "repair_timeline_events")
	v.SetDefault("tables.disputes", "disputes")
	v.SetDefault("payment.provider", "stripe")
	v.SetDefault("payment.currency", "eur")
	v.SetDefault("payment.commission_bps", 100)
	v.SetDefault("payment.hold_release_days", 14)
	v.SetDefault("auth.jwt_issuer", "topreparateurs")
	v.SetDefault("hold.auto_release", false)
	v.SetDefault("hold.sweep_interval", "1h")
	v.SetDefault("hold.sweep_limit", 100)
	v.SetDefault("evidence.bucket", "dispute-evidence")
	v.SetDefault("evidence.use_ssl", false)
	v.SetDefault("evidence.url_expiry", "15m")
	v.SetDefault("rate_limit.limit", 120)
	v.SetDefault("rate_limit.window", "1m")
}

// Load builds the configuration from defaults, an optional YAML file
// (REPAIR_CONFIG or ./config.yaml) and the environment, in increasing priority.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path := os.Getenv("REPAIR_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) normalize() {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	c.Payment.Provider = strings.ToLower(strings.TrimSpace(c.Payment.Provider))
	c.Payment.Currency = strings.ToLower(strings.TrimSpace(c.Payment.Currency))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDynamoDB, StorageMemory:
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.Payment.CommissionBps < 0 || c.Payment.CommissionBps > 10000 {
		return fmt.Errorf("config: COMMISSION_BPS must be between 0 and 10000, got %d", c.Payment.CommissionBps)
	}
	if c.Payment.HoldReleaseDays < 0 {
		return fmt.Errorf("config: HOLD_RELEASE_DAYS cannot be negative, got %d", c.Payment.HoldReleaseDays)
	}
	if c.Hold.AutoRelease && c.Hold.SweepInterval <= 0 {
		return errors.New("config: HOLD_SWEEP_INTERVAL must be positive when HOLD_AUTO_RELEASE is on")
	}
	return nil
}

const redacted = "***"

// Redacted returns a copy safe to print: secrets keep only their presence.
func (c Config) Redacted() Config {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return redacted
	}
	c.AWS.SecretAccessKey = mask(c.AWS.SecretAccessKey)
	c.Payment.StripeSecretKey = mask(c.Payment.StripeSecretKey)
	c.Payment.StripeWebhookSecret = mask(c.Payment.StripeWebhookSecret)
	c.Payment.MercadoPagoAccessToken = mask(c.Payment.MercadoPagoAccessToken)
	c.Auth.JWTSecret = mask(c.Auth.JWTSecret)
	c.Evidence.SecretKey = mask(c.Evidence.SecretKey)
	return c
}
