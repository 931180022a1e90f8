// package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Mail transport names accepted by MAIL_TRANSPORT.
const (
	TransportSMTP   = "smtp"
	TransportHTTP   = "http"
	TransportNATS   = "nats"
	TransportLog    = "log"
	TransportMemory = "memory"
)

// Config holds all application configuration.
type Config struct {
	// server
	HTTPPort    int
	CORSOrigins []string
	Version     string

	// rate limiting, 0 rps disables it
	RateLimitRPS   float64
	RateLimitBurst int

	// mail
	Mail Mail

	// site content, empty means the embedded default
	ContentFile string

	// logging
	LogLevel  string
	LogFile   string
	LogFormat string
}

// Mail holds the operator-configured delivery settings.
// Sender and recipient never come from request input.
type Mail struct {
	Transport string

	FromAddress   string
	FromName      string
	ToAddress     string
	SubjectPrefix string
	BrandName     string

	// smtp
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	// http relay
	RelayURL   string
	RelayToken string

	// nats
	NatsURL     string
	NatsSubject string
	NatsStream  string

	Timeout time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	from := getEnv("EMAIL_FROM", "")

	cfg := &Config{
		HTTPPort:       getEnvInt("HTTP_PORT", 3100),
		CORSOrigins:    getEnvList("CORS_ORIGINS", []string{"*"}),
		Version:        getEnv("APP_VERSION", "dev"),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 5),
		ContentFile:    getEnv("CONTENT_FILE", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        getEnv("LOG_FILE", ""),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
		Mail: Mail{
			Transport:     strings.ToLower(getEnv("MAIL_TRANSPORT", TransportSMTP)),
			FromAddress:   from,
			FromName:      getEnv("EMAIL_FROM_NAME", "J2Systems"),
			ToAddress:     getEnv("EMAIL_TO", from),
			SubjectPrefix: getEnv("EMAIL_SUBJECT_PREFIX", "New contact: "),
			BrandName:     getEnv("BRAND_NAME", "J2Systems"),
			SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:      getEnvInt("SMTP_PORT", 587),
			SMTPUsername:  getEnv("SMTP_USERNAME", getEnv("GMAIL_USER", "")),
			SMTPPassword:  getEnv("SMTP_PASSWORD", getEnv("GMAIL_PASS", "")),
			RelayURL:      getEnv("MAIL_RELAY_URL", ""),
			RelayToken:    getEnv("MAIL_RELAY_TOKEN", ""),
			NatsURL:       getEnv("NATS_URL", "nats://localhost:4222"),
			NatsSubject:   getEnv("NATS_MAIL_SUBJECT", "mail.contact"),
			NatsStream:    getEnv("NATS_MAIL_STREAM", "MAIL"),
			Timeout:       time.Duration(getEnvInt("MAIL_TIMEOUT_SECONDS", 15)) * time.Second,
		},
	}

	return cfg, nil
}

// Validate checks that the settings required by the selected mail transport are present.
func (c *Config) Validate() error {
	var errs []error

	m := c.Mail
	if m.FromAddress == "" {
		errs = append(errs, errors.New("EMAIL_FROM is required"))
	}
	if m.ToAddress == "" {
		errs = append(errs, errors.New("EMAIL_TO (or EMAIL_FROM) is required"))
	}

	switch m.Transport {
	case TransportSMTP:
		if m.SMTPHost == "" {
			errs = append(errs, errors.New("SMTP_HOST is required for smtp transport"))
		}
		if m.SMTPUsername == "" || m.SMTPPassword == "" {
			errs = append(errs, errors.New("SMTP_USERNAME and SMTP_PASSWORD are required for smtp transport"))
		}
	case TransportHTTP:
		if m.RelayURL == "" {
			errs = append(errs, errors.New("MAIL_RELAY_URL is required for http transport"))
		}
	case TransportNATS:
		if m.NatsURL == "" || m.NatsSubject == "" {
			errs = append(errs, errors.New("NATS_URL and NATS_MAIL_SUBJECT are required for nats transport"))
		}
	case TransportLog, TransportMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown MAIL_TRANSPORT %q", m.Transport))
	}

	return errors.Join(errs...)
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

// getEnvList splits a comma separated variable, dropping empty items.
func getEnvList(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
