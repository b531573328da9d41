package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/satheeshds/invoice-viewer/loader"
	"github.com/satheeshds/invoice-viewer/logger"
)

// Source kinds for invoice documents.
const (
	SourceFile = "file"
	SourceHTTP = "http"
	SourceS3   = "s3"
)

// Config holds all application configuration
type Config struct {
	Port        string
	Source      string
	InvoiceDir  string
	BaseURL     string
	HTTPTimeout time.Duration
	S3          loader.S3Config

	PollInterval time.Duration
	PaymentDelay time.Duration
	PaymentRate  float64
	PaymentBurst int
	TrustProxy   bool

	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// defaults are keyed by environment variable name
var defaults = map[string]any{
	"PORT":             "8080",
	"INVOICE_SOURCE":   SourceFile,
	"INVOICE_DIR":      "./public/invoices",
	"INVOICE_BASE_URL": "",
	"HTTP_TIMEOUT":     "10s",
	"S3_BUCKET":        "",
	"S3_PREFIX":        "invoices",
	"S3_ENDPOINT":      "",
	"AWS_REGION":       "us-east-1",
	"POLL_INTERVAL":    "2s",
	"PAYMENT_DELAY":    "2s",
	"PAYMENT_RATE":     1.0,
	"PAYMENT_BURST":    5,
	"TRUST_PROXY":      false,
	"LOG_LEVEL":        "info",
	"LOG_FORMAT":       "console",
	"LOG_TIME_FORMAT":  time.RFC3339,
	"LOG_OUTPUT":       "stderr",
}

// New returns a viper instance with defaults and environment binding.
// Callers may bind command-line flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	// Keys not in defaults still need explicit env binding.
	v.BindEnv("AWS_ACCESS_KEY_ID")
	v.BindEnv("AWS_SECRET_ACCESS_KEY")
	return v
}

// Load builds and validates the configuration from v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:        v.GetString("PORT"),
		Source:      strings.ToLower(v.GetString("INVOICE_SOURCE")),
		InvoiceDir:  v.GetString("INVOICE_DIR"),
		BaseURL:     v.GetString("INVOICE_BASE_URL"),
		HTTPTimeout: v.GetDuration("HTTP_TIMEOUT"),
		S3: loader.S3Config{
			Bucket:          v.GetString("S3_BUCKET"),
			Prefix:          v.GetString("S3_PREFIX"),
			Region:          v.GetString("AWS_REGION"),
			Endpoint:        v.GetString("S3_ENDPOINT"),
			AccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
		},
		PollInterval:  v.GetDuration("POLL_INTERVAL"),
		PaymentDelay:  v.GetDuration("PAYMENT_DELAY"),
		PaymentRate:   v.GetFloat64("PAYMENT_RATE"),
		PaymentBurst:  v.GetInt("PAYMENT_BURST"),
		TrustProxy:    v.GetBool("TRUST_PROXY"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		LogFormat:     v.GetString("LOG_FORMAT"),
		LogTimeFormat: v.GetString("LOG_TIME_FORMAT"),
		LogOutput:     v.GetString("LOG_OUTPUT"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Source {
	case SourceFile:
		if c.InvoiceDir == "" {
			return fmt.Errorf("INVOICE_DIR is required for the file source")
		}
	case SourceHTTP:
		if c.BaseURL == "" {
			return fmt.Errorf("INVOICE_BASE_URL is required for the http source")
		}
	case SourceS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 source")
		}
	default:
		return fmt.Errorf("INVOICE_SOURCE must be one of: file, http, s3")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive")
	}
	if c.PaymentDelay < 0 {
		return fmt.Errorf("PAYMENT_DELAY must not be negative")
	}
	if c.PaymentRate <= 0 || c.PaymentBurst < 1 {
		return fmt.Errorf("PAYMENT_RATE must be positive and PAYMENT_BURST at least 1")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
