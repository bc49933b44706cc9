// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetClientToken() string
}

// MunicipalConfig provides settings for the municipal CRM store (Supabase REST).
type MunicipalConfig interface {
	GetMunicipalBaseURL() string
	GetMunicipalAPIKey() string
	GetMunicipalRegion() string
	IsMunicipalEnabled() bool
}

// PipelineConfig provides settings for the remote pipeline store.
type PipelineConfig interface {
	GetPipelineBaseURL() string
	GetPipelineToken() string
	IsPipelineRemoteEnabled() bool
}

// AIAssistConfig provides settings for the AI assist service.
type AIAssistConfig interface {
	GetAIAssistBaseURL() string
	GetAIAssistToken() string
	IsAIAssistEnabled() bool
}

// BarrelhouseConfig provides settings for the BarrelHouse CRM API.
type BarrelhouseConfig interface {
	GetBarrelhouseBaseURL() string
	GetBarrelhouseToken() string
	IsBarrelhouseEnabled() bool
}

// ScannerConfig provides settings for the municipal scanner service.
type ScannerConfig interface {
	GetScannerBaseURL() string
	IsScannerEnabled() bool
}

// RedisConfig provides settings for the redis snapshot cache.
type RedisConfig interface {
	GetRedisURL() string
	IsRedisEnabled() bool
}

// SchedulerConfig provides settings for the asynq background worker.
type SchedulerConfig interface {
	GetRedisURL() string
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
	GetDailyBriefHour() int
}

// EmailConfig provides settings for the daily brief digest.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromAddress() string
	GetBriefRecipient() string
}

// SeedConfig provides settings for demo pipeline seeding.
type SeedConfig interface {
	GetSeedFile() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env      string
	HTTPAddr string

	DatabaseURL string

	CORSAllowAll bool
	CORSOrigins  []string
	ClientToken  string

	MunicipalBaseURL string
	MunicipalAPIKey  string
	MunicipalRegion  string

	PipelineBaseURL string
	PipelineToken   string

	AIAssistBaseURL string
	AIAssistToken   string

	BarrelhouseBaseURL string
	BarrelhouseToken   string

	ScannerBaseURL string

	RedisURL         string
	AsynqQueueName   string
	AsynqConcurrency int
	DailyBriefHour   int

	EmailEnabled     bool
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	EmailFromAddress string
	BriefRecipient   string

	SeedFile string
}

// Load reads configuration from the environment, with .env as a fallback
// for local development.
func Load() (*Config, error) {
	// A missing .env file is normal outside development.
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("APP_ENV", "development"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		CORSAllowAll: getEnvBool("CORS_ALLOW_ALL", true),
		CORSOrigins:  splitAndTrim(os.Getenv("CORS_ORIGINS")),
		ClientToken:  os.Getenv("CLIENT_TOKEN"),

		MunicipalBaseURL: strings.TrimRight(os.Getenv("MUNICIPAL_BASE_URL"), "/"),
		MunicipalAPIKey:  os.Getenv("MUNICIPAL_API_KEY"),
		MunicipalRegion:  getEnv("MUNICIPAL_REGION", "US"),

		PipelineBaseURL: strings.TrimRight(os.Getenv("PIPELINE_BASE_URL"), "/"),
		PipelineToken:   os.Getenv("PIPELINE_TOKEN"),

		AIAssistBaseURL: strings.TrimRight(os.Getenv("AI_ASSIST_BASE_URL"), "/"),
		AIAssistToken:   os.Getenv("AI_ASSIST_TOKEN"),

		BarrelhouseBaseURL: strings.TrimRight(os.Getenv("BARRELHOUSE_BASE_URL"), "/"),
		BarrelhouseToken:   os.Getenv("BARRELHOUSE_TOKEN"),

		ScannerBaseURL: strings.TrimRight(os.Getenv("SCANNER_BASE_URL"), "/"),

		RedisURL:         os.Getenv("REDIS_URL"),
		AsynqQueueName:   getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency: getEnvInt("ASYNQ_CONCURRENCY", 10),
		DailyBriefHour:   getEnvInt("DAILY_BRIEF_HOUR", 7),

		EmailEnabled:     getEnvBool("EMAIL_ENABLED", false),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPort:         getEnvInt("SMTP_PORT", 587),
		SMTPUsername:     os.Getenv("SMTP_USERNAME"),
		SMTPPassword:     os.Getenv("SMTP_PASSWORD"),
		EmailFromAddress: os.Getenv("EMAIL_FROM_ADDRESS"),
		BriefRecipient:   os.Getenv("BRIEF_RECIPIENT"),

		SeedFile: getEnv("SEED_FILE", "seeds/pipeline.yaml"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.EmailEnabled && cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP_HOST is required when EMAIL_ENABLED is true")
	}

	return cfg, nil
}

// =============================================================================
// Interface Implementations
// =============================================================================

func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetClientToken() string   { return c.ClientToken }

func (c *Config) GetMunicipalBaseURL() string { return c.MunicipalBaseURL }
func (c *Config) GetMunicipalAPIKey() string  { return c.MunicipalAPIKey }
func (c *Config) GetMunicipalRegion() string  { return c.MunicipalRegion }
func (c *Config) IsMunicipalEnabled() bool    { return c.MunicipalBaseURL != "" }

func (c *Config) GetPipelineBaseURL() string    { return c.PipelineBaseURL }
func (c *Config) GetPipelineToken() string      { return c.PipelineToken }
func (c *Config) IsPipelineRemoteEnabled() bool { return c.PipelineBaseURL != "" }

func (c *Config) GetAIAssistBaseURL() string { return c.AIAssistBaseURL }
func (c *Config) GetAIAssistToken() string   { return c.AIAssistToken }
func (c *Config) IsAIAssistEnabled() bool    { return c.AIAssistBaseURL != "" }

func (c *Config) GetBarrelhouseBaseURL() string { return c.BarrelhouseBaseURL }
func (c *Config) GetBarrelhouseToken() string   { return c.BarrelhouseToken }
func (c *Config) IsBarrelhouseEnabled() bool    { return c.BarrelhouseBaseURL != "" }

func (c *Config) GetScannerBaseURL() string { return c.ScannerBaseURL }
func (c *Config) IsScannerEnabled() bool    { return c.ScannerBaseURL != "" }

func (c *Config) GetRedisURL() string  { return c.RedisURL }
func (c *Config) IsRedisEnabled() bool { return c.RedisURL != "" }

func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }
func (c *Config) GetDailyBriefHour() int    { return c.DailyBriefHour }

func (c *Config) GetEmailEnabled() bool       { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }
func (c *Config) GetBriefRecipient() string   { return c.BriefRecipient }

func (c *Config) GetSeedFile() string { return c.SeedFile }

// =============================================================================
// Helpers
// =============================================================================

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
