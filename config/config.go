package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ServerPort       string
	RecordAPIURL     string
	RecordAPIKey     string
	RecordBaseID     string
	ResumeWebhookURL string
	LogLevel         string
	PaymentDelayMS   string
}

// HasRecordBackend reports whether the external record backend is configured.
// Decided once at startup; the stores fall back to their in-process caches
// when this is false.
func (c *Config) HasRecordBackend() bool {
	return c.RecordAPIKey != "" && c.RecordBaseID != ""
}

// GetPaymentDelay returns the simulated payment processing delay.
func (c *Config) GetPaymentDelay() time.Duration {
	if c.PaymentDelayMS == "" {
		return 2 * time.Second
	}

	ms, err := strconv.Atoi(c.PaymentDelayMS)
	if err != nil {
		logrus.Warnf("Invalid PAYMENT_DELAY_MS value: %s, using default 2s", c.PaymentDelayMS)
		return 2 * time.Second
	}

	return time.Duration(ms) * time.Millisecond
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		logrus.Warn("Error loading .env file, using system environment variables")
	}

	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		RecordAPIURL:     getEnv("RECORD_API_URL", "https://api.recordstore.dev/v0"),
		RecordAPIKey:     getEnv("RECORD_API_KEY", ""),
		RecordBaseID:     getEnv("RECORD_BASE_ID", ""),
		ResumeWebhookURL: getEnv("RESUME_WEBHOOK_URL", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		PaymentDelayMS:   getEnv("PAYMENT_DELAY_MS", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
