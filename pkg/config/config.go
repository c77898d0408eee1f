package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	Auth     AuthConfig
	Email    EmailConfig
	Uploads  UploadsConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	URL         string
	MaxConns    int
	MinConns    int
	MaxLifetime time.Duration
}

type RedisConfig struct {
	URL     string
	Enabled bool
}

type NATSConfig struct {
	URL     string
	Enabled bool
}

type AuthConfig struct {
	JWTSecret  string
	SessionTTL time.Duration
	OTPTTL     time.Duration
}

type EmailConfig struct {
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPass      string
	SMTPFrom      string
	MailerSendKey string
	FromName      string
	FromEmail     string
	DevMode       bool // print codes to logs instead of sending
}

type UploadsConfig struct {
	Dir           string
	PublicBaseURL string
	MaxBytes      int64
}

// Load reads configuration from the environment. Secrets carry no
// defaults: a missing JWT_SECRET or DATABASE_URL is a startup error.
func Load() (*Config, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			URL:         dbURL,
			MaxConns:    getInt("DB_MAX_CONNS", 10),
			MinConns:    getInt("DB_MIN_CONNS", 1),
			MaxLifetime: getDuration("DB_MAX_LIFETIME", time.Hour),
		},
		Redis: RedisConfig{
			URL:     getEnv("REDIS_URL", ""),
			Enabled: os.Getenv("REDIS_URL") != "",
		},
		NATS: NATSConfig{
			URL:     getEnv("NATS_URL", ""),
			Enabled: os.Getenv("NATS_URL") != "",
		},
		Auth: AuthConfig{
			JWTSecret:  jwtSecret,
			SessionTTL: getDuration("SESSION_TTL", 24*time.Hour),
			OTPTTL:     getDuration("OTP_TTL", 10*time.Minute),
		},
		Email: EmailConfig{
			SMTPHost:      getEnv("SMTP_HOST", ""),
			SMTPPort:      getInt("SMTP_PORT", 587),
			SMTPUser:      getEnv("SMTP_USER", ""),
			SMTPPass:      getEnv("SMTP_PASS", ""),
			SMTPFrom:      getEnv("SMTP_FROM", ""),
			MailerSendKey: getEnv("MAILERSEND_API_KEY", ""),
			FromName:      getEnv("MAIL_FROM_NAME", "Complaint Portal"),
			FromEmail:     getEnv("MAIL_FROM_EMAIL", ""),
			DevMode:       getBool("EMAIL_DEV_MODE", true),
		},
		Uploads: UploadsConfig{
			Dir:           getEnv("UPLOAD_DIR", "./uploads"),
			PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
			MaxBytes:      int64(getInt("UPLOAD_MAX_BYTES", 50*1024*1024)),
		},
	}

	if !cfg.Email.DevMode && cfg.Email.MailerSendKey == "" && cfg.Email.SMTPHost == "" {
		return nil, fmt.Errorf("EMAIL_DEV_MODE is off but neither MAILERSEND_API_KEY nor SMTP_HOST is set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
