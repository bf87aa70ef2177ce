package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server config
	Server ServerConfig

	// database config
	Database DatabaseConfig

	// external API config
	APIs APIConfig

	// auth config
	Security SecurityConfig

	// feature flags and limits
	Limits LimitsConfig

	// logging config
	LogLevel string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address      string
	Environment  string // development, staging, production
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL string
}

// APIConfig holds external API configuration.
type APIConfig struct {
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	OpenAIModel     string
	CoinGeckoAPIKey string
	GitHubToken     string
}

// SecurityConfig holds auth-related settings.
// APIToken is optional: when empty, the chat API is open.
type SecurityConfig struct {
	APIToken   string
	BcryptCost int
}

// LimitsConfig holds rate limiting and timeout settings.
type LimitsConfig struct {
	LLMRequestsPerMinute int
	ProviderTimeout      time.Duration
	SessionTTL           time.Duration
	MaxHistoryTurns      int
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	// This is useful for local development but not required in production
	// where env vars are typically set by the orchestration platform
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Server = ServerConfig{
		Address:      getEnvOrDefault("SERVER_ADDRESS", ":8080"),
		Environment:  getEnvOrDefault("APP_ENV", "development"),
		ReadTimeout:  getDurationOrDefault("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getDurationOrDefault("SERVER_WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:  getDurationOrDefault("SERVER_IDLE_TIMEOUT", 60*time.Second),
	}

	cfg.Database = DatabaseConfig{
		URL: os.Getenv("DATABASE_URL"),
	}

	cfg.APIs = APIConfig{
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:   getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:     getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		CoinGeckoAPIKey: os.Getenv("COINGECKO_API_KEY"),
		GitHubToken:     os.Getenv("GITHUB_TOKEN"),
	}

	bcryptCost, err := strconv.Atoi(getEnvOrDefault("BCRYPT_COST", "12"))
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}
	cfg.Security = SecurityConfig{
		APIToken:   os.Getenv("API_TOKEN"),
		BcryptCost: bcryptCost,
	}

	rpm, err := strconv.Atoi(getEnvOrDefault("LLM_REQUESTS_PER_MINUTE", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_REQUESTS_PER_MINUTE: %w", err)
	}
	maxTurns, err := strconv.Atoi(getEnvOrDefault("MAX_HISTORY_TURNS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_HISTORY_TURNS: %w", err)
	}
	cfg.Limits = LimitsConfig{
		LLMRequestsPerMinute: rpm,
		ProviderTimeout:      getDurationOrDefault("PROVIDER_TIMEOUT", 25*time.Second),
		SessionTTL:           getDurationOrDefault("SESSION_TTL", 2*time.Hour),
		MaxHistoryTurns:      maxTurns,
	}

	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", "info")

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that all required configuration is present and valid.
// This implements the "fail fast" principle - better to fail at startup
// than to fail later when a missing config is accessed.
func (c *Config) validate() error {
	var errs []error

	// Database URL is always required for the server
	if c.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}

	// Validate bcrypt cost is in reasonable range.
	// Cost < 10 is too fast (vulnerable to brute force)
	// Cost > 16 is too slow (poor user experience)
	if c.Security.BcryptCost < 10 || c.Security.BcryptCost > 16 {
		errs = append(errs, errors.New("BCRYPT_COST must be between 10 and 16"))
	}

	if c.Limits.LLMRequestsPerMinute <= 0 {
		errs = append(errs, errors.New("LLM_REQUESTS_PER_MINUTE must be positive"))
	}

	if c.Limits.ProviderTimeout <= 0 {
		errs = append(errs, errors.New("PROVIDER_TIMEOUT must be positive"))
	}

	// Validate environment is a known value
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.Server.Environment] {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of: development, staging, production (got: %s)", c.Server.Environment))
	}

	// Combine all errors
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%w", errors.Join(errs...))
	}

	return nil
}

// getEnvOrDefault returns the .env value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return defaultValue
		}
		return duration
	}
	return defaultValue
}

// MustLoad is like Load but panics on error.
// Used in main() where its required to fail fast
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}
