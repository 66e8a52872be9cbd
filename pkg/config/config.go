package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string `validate:"required,numeric"`
	Env  string `validate:"oneof=development staging production"` // development, staging, production

	// Outbound HTTP
	HTTPTimeout time.Duration `validate:"gt=0"`

	// External APIs
	Yahoo  YahooConfig
	Gemini GeminiConfig

	// Sessions (in-memory only)
	Session SessionConfig

	// Logging
	LogLevel  string
	LogFormat string `validate:"oneof=json console pretty"`
}

// YahooConfig holds Yahoo Finance endpoint configuration
type YahooConfig struct {
	BaseURL   string `validate:"required,url"`
	CookieURL string `validate:"required,url"`
	UserAgent string `validate:"required"`
}

// GeminiConfig holds Gemini (narrative generation) configuration.
// APIKey is only a default; the web UI lets each session supply its own.
type GeminiConfig struct {
	APIKey      string
	Model       string  `validate:"required"`
	Temperature float64 `validate:"gte=0,lte=2"`
	BaseURL     string  `validate:"omitempty,url"` // empty = SDK default endpoint
}

// SessionConfig holds browser session settings
type SessionConfig struct {
	TTL          time.Duration `validate:"gt=0"`
	CookieName   string        `validate:"required"`
	SecureCookie bool
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit .env file.
// An empty path searches the default locations.
func LoadFile(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", path, err)
		}
	} else {
		loadEnvFile()
	}

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		HTTPTimeout: getEnvAsDuration("HTTP_TIMEOUT", "30s"),

		Yahoo: YahooConfig{
			BaseURL:   getEnv("YAHOO_BASE_URL", "https://query2.finance.yahoo.com"),
			CookieURL: getEnv("YAHOO_COOKIE_URL", "https://fc.yahoo.com"),
			UserAgent: getEnv("YAHOO_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"),
		},

		Gemini: GeminiConfig{
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			Model:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			Temperature: getEnvAsFloat("GEMINI_TEMPERATURE", 0.4),
			BaseURL:     getEnv("GEMINI_BASE_URL", ""),
		},

		Session: SessionConfig{
			TTL:          getEnvAsDuration("SESSION_TTL", "2h"),
			CookieName:   getEnv("SESSION_COOKIE", "finlens_session"),
			SecureCookie: getEnvAsBool("SESSION_SECURE_COOKIE", false),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	return nil
}

// IsProduction reports whether the app runs with ENV=production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
