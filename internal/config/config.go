// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the single explicit configuration object for the service. It is
// constructed once in main and passed down; nothing reads the environment
// after Load returns.
type Config struct {
	SMTP   SMTPConfig
	HTTP   HTTPConfig
	Log    LogConfig
	Upload UploadConfig

	// DatabaseURL enables campaign/outcome persistence when non-empty.
	DatabaseURL string
	// AMQPURL enables outcome event publishing when non-empty.
	AMQPURL string

	// TemplateImages maps a built-in template id to the inline image file
	// embedded in its body. Missing entries are fine: the email is sent
	// without the image.
	TemplateImages map[string]string
}

// SMTPConfig holds the outbound relay settings.
type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	SenderEmail string
	SenderName  string
	// ConnectTimeout bounds one connection attempt (handshake + STARTTLS +
	// auth included).
	ConnectTimeout time.Duration
}

type HTTPConfig struct {
	Addr string
}

type LogConfig struct {
	Level  string
	Format string
}

type UploadConfig struct {
	// Dir is where uploaded sheets/images and generated reports live.
	Dir string
}

// Load reads a .env file if present, then the OS environment.
func Load() (*Config, error) {
	// Missing .env is fine, the OS environment still applies.
	_ = godotenv.Load()

	port, err := intEnv("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		SMTP: SMTPConfig{
			Host:           getenv("SMTP_SERVER", "smtp.gmail.com"),
			Port:           port,
			Username:       os.Getenv("SMTP_USERNAME"),
			Password:       os.Getenv("SMTP_PASSWORD"),
			SenderEmail:    os.Getenv("SENDER_EMAIL"),
			SenderName:     getenv("SENDER_NAME", "Campaign Team"),
			ConnectTimeout: 30 * time.Second,
		},
		HTTP: HTTPConfig{
			Addr: getenv("HTTP_ADDR", ":8080"),
		},
		Log: LogConfig{
			Level:  getenv("LOG_LEVEL", "info"),
			Format: getenv("LOG_FORMAT", "console"),
		},
		Upload: UploadConfig{
			Dir: getenv("UPLOAD_DIR", "uploads"),
		},
		DatabaseURL: os.Getenv("DATABASE_URL"),
		AMQPURL:     os.Getenv("AMQP_URL"),
		TemplateImages: map[string]string{
			"1": os.Getenv("TEMPLATE_IMAGE_1"),
			"2": os.Getenv("TEMPLATE_IMAGE_2"),
			"3": os.Getenv("TEMPLATE_IMAGE_3"),
		},
	}

	return cfg, nil
}

// ValidateSMTP reports whether the relay settings are complete enough to
// send. Called by entry points that actually dispatch, not by Load, so that
// dry runs and report-only commands work without credentials.
func (c *Config) ValidateSMTP() error {
	if c.SMTP.Host == "" {
		return fmt.Errorf("SMTP_SERVER is required")
	}
	if c.SMTP.SenderEmail == "" {
		return fmt.Errorf("SENDER_EMAIL is required")
	}
	if c.SMTP.Username == "" || c.SMTP.Password == "" {
		return fmt.Errorf("SMTP_USERNAME and SMTP_PASSWORD are required")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
