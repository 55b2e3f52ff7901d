package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported model providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

const (
	defaultGeminiModel = "gemini-2.0-flash"
	defaultOpenAIModel = "gpt-4o-mini"
)

// ModelConfig holds settings for the external generative model.
type ModelConfig struct {
	Provider   string
	APIKey     string
	Model      string
	BaseURL    string
	TimeoutSec int
}

// Timeout returns the per-call model timeout. Zero means no bound.
func (m ModelConfig) Timeout() time.Duration {
	if m.TimeoutSec <= 0 {
		return 0
	}
	return time.Duration(m.TimeoutSec) * time.Second
}

// MinIOConfig holds object storage settings for the optional upload source.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether an object source has been configured.
func (m MinIOConfig) Enabled() bool {
	return m.Endpoint != ""
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string
	Format     string
	TimeFormat string
	Output     string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated once from environment variables and passed to constructors.
type AppConfig struct {
	Port        string
	Timezone    string
	MaxUploadMB int
	Model       ModelConfig
	MinIO       MinIOConfig
	Log         LogConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func Load() *AppConfig {
	provider := strings.ToLower(getEnv("MODEL_PROVIDER", ProviderGemini))

	model := ModelConfig{
		Provider:   provider,
		TimeoutSec: getEnvInt("MODEL_TIMEOUT_SEC", 120),
	}
	switch provider {
	case ProviderOpenAI:
		model.APIKey = getEnv("OPENAI_API_KEY", "")
		model.Model = getEnv("MODEL_NAME", defaultOpenAIModel)
		model.BaseURL = getEnv("OPENAI_BASE_URL", "")
	default:
		model.APIKey = getEnv("GEMINI_API_KEY", "")
		model.Model = getEnv("MODEL_NAME", defaultGeminiModel)
	}

	return &AppConfig{
		Port:        getEnv("PORT", "8080"),
		Timezone:    getEnv("APP_TIMEZONE", "UTC"),
		MaxUploadMB: getEnvInt("MAX_UPLOAD_MB", 50),
		Model:       model,
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			TimeFormat: getEnv("LOG_TIME_FORMAT", time.RFC3339),
			Output:     getEnv("LOG_OUTPUT", "stdout"),
		},
	}
}

// Validate reports configuration that would make the service unusable.
func (c *AppConfig) Validate() error {
	var errs []error
	switch c.Model.Provider {
	case ProviderGemini:
		if c.Model.APIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required"))
		}
	case ProviderOpenAI:
		if c.Model.APIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported MODEL_PROVIDER %q", c.Model.Provider))
	}
	if c.MinIO.Enabled() && (c.MinIO.AccessKey == "" || c.MinIO.SecretKey == "" || c.MinIO.Bucket == "") {
		errs = append(errs, errors.New("MINIO_ACCESS_KEY, MINIO_SECRET_KEY and MINIO_BUCKET are required when MINIO_ENDPOINT is set"))
	}
	if c.MaxUploadMB <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_MB must be positive"))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("invalid APP_TIMEZONE: %w", err))
	}
	return errors.Join(errs...)
}

// Location returns the configured time zone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// MaxUploadBytes returns the upload size limit in bytes.
func (c *AppConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) * 1024 * 1024
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
