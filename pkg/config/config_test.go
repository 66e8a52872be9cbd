package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.Port != "8080" {
		t.Errorf("Expected Port to be 8080, got %s", cfg.Port)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.Yahoo.BaseURL != "https://query2.finance.yahoo.com" {
		t.Errorf("Expected default Yahoo base URL, got %s", cfg.Yahoo.BaseURL)
	}

	if cfg.Gemini.Model != "gemini-2.0-flash" {
		t.Errorf("Expected default Gemini model, got %s", cfg.Gemini.Model)
	}

	if cfg.Session.TTL != 2*time.Hour {
		t.Errorf("Expected session TTL 2h, got %v", cfg.Session.TTL)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_TEMPERATURE", "0.9")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("SESSION_SECURE_COOKIE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected Port to be 9000, got %s", cfg.Port)
	}

	if !cfg.IsProduction() {
		t.Errorf("Expected production env, got %s", cfg.Env)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel to be debug, got %s", cfg.LogLevel)
	}

	if cfg.Gemini.APIKey != "test-key" {
		t.Errorf("Expected Gemini API key to be set, got %q", cfg.Gemini.APIKey)
	}

	if cfg.Gemini.Temperature != 0.9 {
		t.Errorf("Expected temperature 0.9, got %v", cfg.Gemini.Temperature)
	}

	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("Expected HTTP timeout 5s, got %v", cfg.HTTPTimeout)
	}

	if !cfg.Session.SecureCookie {
		t.Error("Expected secure cookie to be enabled")
	}
}

func TestValidateInvalidEnv(t *testing.T) {
	t.Setenv("ENV", "invalid")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when ENV is invalid, got nil")
	}
}

func TestValidateInvalidPort(t *testing.T) {
	t.Setenv("PORT", "eighty")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when PORT is not numeric, got nil")
	}
}

func TestValidateInvalidLogFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when LOG_FORMAT is unknown, got nil")
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "2h")

	duration := getEnvAsDuration("TEST_DURATION", "1h")
	expected := 2 * time.Hour

	if duration != expected {
		t.Errorf("Expected duration to be %v, got %v", expected, duration)
	}

	t.Setenv("TEST_DURATION", "soon")
	if got := getEnvAsDuration("TEST_DURATION", "1h"); got != time.Hour {
		t.Errorf("Expected fallback to 1h, got %v", got)
	}
}

func TestGetEnvAsFloat(t *testing.T) {
	t.Setenv("TEST_FLOAT", "1.25")

	if value := getEnvAsFloat("TEST_FLOAT", 0.5); value != 1.25 {
		t.Errorf("Expected value to be 1.25, got %v", value)
	}

	t.Setenv("TEST_FLOAT", "abc")
	if value := getEnvAsFloat("TEST_FLOAT", 0.5); value != 0.5 {
		t.Errorf("Expected fallback 0.5, got %v", value)
	}
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")

	value := getEnvAsBool("TEST_BOOL", false)
	if value != true {
		t.Errorf("Expected value to be true, got %v", value)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("GEMINI_MODEL=gemini-from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	// registers cleanup, then leaves the key unset so the file can supply it
	t.Setenv("GEMINI_MODEL", "")
	os.Unsetenv("GEMINI_MODEL")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Gemini.Model != "gemini-from-file" {
		t.Errorf("Expected model from env file, got %q", cfg.Gemini.Model)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("Expected error for a missing env file")
	}
}
