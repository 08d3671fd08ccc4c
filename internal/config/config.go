package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	JWT       JWTConfig       `yaml:"jwt"`
	Stripe    StripeConfig    `yaml:"stripe"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
	Checkout  CheckoutConfig  `yaml:"checkout"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// SMTPConfig contains email service settings
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// JWTConfig contains JWT token settings
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// StripeConfig contains payment gateway settings
type StripeConfig struct {
	APIKey string `yaml:"api_key"`
}

// RabbitMQConfig contains event broker settings. An empty URL disables
// event publishing (the server falls back to a no-op publisher).
type RabbitMQConfig struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
}

// CheckoutConfig holds the named business defaults for order aggregation
// and draft housekeeping. Every magic number the checkout math depends on
// lives here so a deploy can override it without a code change.
type CheckoutConfig struct {
	TaxRateBasisPoints         int64  `yaml:"tax_rate_basis_points"`
	ShippingFlatCents          int64  `yaml:"shipping_flat_cents"`
	FreeShippingThresholdCents int64  `yaml:"free_shipping_threshold_cents"`
	BuyPriceMultiplier         int64  `yaml:"buy_price_multiplier"`
	Currency                   string `yaml:"currency"`
	DraftTTLDays               int    `yaml:"draft_ttl_days"`
	SubmissionTimeoutMinutes   int    `yaml:"submission_timeout_minutes"`
	ReminderLeadDays           int    `yaml:"reminder_lead_days"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron specs for the housekeeping jobs
type SchedulerConfig struct {
	ExpireStaleDrafts       string `yaml:"expire_stale_drafts"`
	ReleaseStuckSubmissions string `yaml:"release_stuck_submissions"`
	SendPaymentReminders    string `yaml:"send_payment_reminders"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()
	cfg.applyDefaults()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// SMTP
	if val := os.Getenv("SMTP_HOST"); val != "" {
		c.SMTP.Host = val
	}
	if val := os.Getenv("SMTP_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.SMTP.Port)
	}
	if val := os.Getenv("SMTP_USER"); val != "" {
		c.SMTP.User = val
	}
	if val := os.Getenv("SMTP_PASSWORD"); val != "" {
		c.SMTP.Password = val
	}
	if val := os.Getenv("SMTP_FROM"); val != "" {
		c.SMTP.From = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Stripe
	if val := os.Getenv("STRIPE_API_KEY"); val != "" {
		c.Stripe.APIKey = val
	}

	// RabbitMQ
	if val := os.Getenv("RABBITMQ_URL"); val != "" {
		c.RabbitMQ.URL = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

// applyDefaults fills the business and operational defaults for anything the
// config file leaves unset.
func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.Checkout.TaxRateBasisPoints == 0 {
		c.Checkout.TaxRateBasisPoints = 1000 // 10%
	}
	if c.Checkout.ShippingFlatCents == 0 {
		c.Checkout.ShippingFlatCents = 1000 // $10
	}
	if c.Checkout.FreeShippingThresholdCents == 0 {
		c.Checkout.FreeShippingThresholdCents = 10000 // $100
	}
	if c.Checkout.BuyPriceMultiplier == 0 {
		c.Checkout.BuyPriceMultiplier = 10
	}
	if c.Checkout.Currency == "" {
		c.Checkout.Currency = "USD"
	}
	if c.Checkout.DraftTTLDays == 0 {
		c.Checkout.DraftTTLDays = 30
	}
	if c.Checkout.SubmissionTimeoutMinutes == 0 {
		c.Checkout.SubmissionTimeoutMinutes = 15
	}
	if c.Checkout.ReminderLeadDays == 0 {
		c.Checkout.ReminderLeadDays = 7
	}

	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "orders"
	}

	if c.Scheduler.ExpireStaleDrafts == "" {
		c.Scheduler.ExpireStaleDrafts = "0 0 3 * * *" // nightly 03:00 UTC
	}
	if c.Scheduler.ReleaseStuckSubmissions == "" {
		c.Scheduler.ReleaseStuckSubmissions = "0 */5 * * * *" // every 5 minutes
	}
	if c.Scheduler.SendPaymentReminders == "" {
		c.Scheduler.SendPaymentReminders = "0 0 9 * * *" // daily 09:00 UTC
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	// Checkout validation
	if c.Checkout.TaxRateBasisPoints < 0 {
		return fmt.Errorf("tax rate must not be negative")
	}
	if c.Checkout.ShippingFlatCents < 0 || c.Checkout.FreeShippingThresholdCents < 0 {
		return fmt.Errorf("shipping settings must not be negative")
	}

	return nil
}

// GetServerAddress returns the host:port string for the HTTP server
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetDatabaseConnectionString returns the PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password, c.Database.Database, sslMode)
}
