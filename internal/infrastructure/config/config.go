package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full runtime configuration, loaded from environment
// variables with local-friendly defaults. Only JWT_SECRET is mandatory.
type Config struct {
	Port      int
	LogLevel  string
	LogFormat string

	JWTSecret   string
	TokenTTL    time.Duration
	AdminEmails []string

	SubmissionQuota int

	AWSRegion        string
	DynamoDBEndpoint string
	EstimatesTable   string
	UsersTable       string

	SESSender      string
	VerifyBaseURL  string
	ResetBaseURL   string
	GoogleClientID string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiTimeout time.Duration
	GeminiMock    bool
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("SUBMISSION_QUOTA", 2)
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("ESTIMATES_TABLE", "estimates")
	v.SetDefault("USERS_TABLE", "users")
	v.SetDefault("VERIFY_BASE_URL", "http://localhost:8080/v1/auth/verify")
	v.SetDefault("RESET_BASE_URL", "http://localhost:8080/v1/auth/reset")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("GEMINI_TIMEOUT", "30s")
	v.SetDefault("GEMINI_MOCK", false)

	cfg := &Config{
		Port:             v.GetInt("PORT"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        v.GetString("LOG_FORMAT"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		TokenTTL:         v.GetDuration("TOKEN_TTL"),
		AdminEmails:      splitList(v.GetString("ADMIN_EMAILS")),
		SubmissionQuota:  v.GetInt("SUBMISSION_QUOTA"),
		AWSRegion:        v.GetString("AWS_REGION"),
		DynamoDBEndpoint: v.GetString("DYNAMODB_ENDPOINT"),
		EstimatesTable:   v.GetString("ESTIMATES_TABLE"),
		UsersTable:       v.GetString("USERS_TABLE"),
		SESSender:        v.GetString("SES_SENDER"),
		VerifyBaseURL:    v.GetString("VERIFY_BASE_URL"),
		ResetBaseURL:     v.GetString("RESET_BASE_URL"),
		GoogleClientID:   v.GetString("GOOGLE_CLIENT_ID"),
		GeminiAPIKey:     v.GetString("GEMINI_API_KEY"),
		GeminiModel:      v.GetString("GEMINI_MODEL"),
		GeminiTimeout:    v.GetDuration("GEMINI_TIMEOUT"),
		GeminiMock:       v.GetBool("GEMINI_MOCK"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}
	if cfg.SubmissionQuota < 1 {
		return nil, errors.New("SUBMISSION_QUOTA must be at least 1")
	}
	if cfg.TokenTTL <= 0 {
		return nil, errors.New("TOKEN_TTL must be positive")
	}

	return cfg, nil
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
