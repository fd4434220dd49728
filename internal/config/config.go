// Package config provides configuration loading and validation for the CLI and the HTTP host.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config represents the application configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Document
	Seed         string `json:"seed,omitempty"`          // Path to a JSON or YAML seed document
	PresentLabel string `json:"present_label,omitempty"` // Display token for an ongoing end date

	// HTTP host
	Port int `json:"port,omitempty" validate:"omitempty,min=1,max=65535"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn warning error"`
	LogFormat string `json:"log_format,omitempty" validate:"omitempty,oneof=json text"`

	// Text enhancement
	LLMProvider           string `json:"llm_provider,omitempty" validate:"omitempty,oneof=gemini openai"`
	APIKey                string `json:"api_key,omitempty"`        // Gemini API key
	OpenAIAPIKey          string `json:"openai_api_key,omitempty"` // OpenAI API key
	Model                 string `json:"model,omitempty"`          // Overrides the model used for polishing
	EnhanceTimeoutSeconds int    `json:"enhance_timeout_seconds,omitempty" validate:"min=0"`
	RedisURL              string `json:"redis_url,omitempty"` // Enables the shared enhancement cache
	CacheTTLSeconds       int    `json:"cache_ttl_seconds,omitempty" validate:"min=0"`

	// Export
	ChromePath string `json:"chrome_path,omitempty"` // Chrome/Chromium binary for PDF export

	Verbose bool `json:"verbose,omitempty"`
}

// Defaults returns the values used for anything left unset
func Defaults() Config {
	return Config{
		PresentLabel:          "Present",
		Port:                  8080,
		LogLevel:              "info",
		LogFormat:             "json",
		LLMProvider:           "gemini",
		EnhanceTimeoutSeconds: 30,
		CacheTTLSeconds:       24 * 60 * 60,
	}
}

// Environment variables read by ApplyEnv
const (
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	EnvLLMProvider  = "LLM_PROVIDER"
	EnvLLMModel     = "LLM_MODEL"
	EnvRedisURL     = "REDIS_URL"
	EnvLogLevel     = "LOG_LEVEL"
	EnvLogFormat    = "LOG_FORMAT"
	EnvChromePath   = "CHROME_PATH"
	EnvPort         = "PORT"
	EnvSeed         = "RESUME_SEED"
)

var validate = validator.New()

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overlays values found in the environment. getenv is usually os.Getenv.
// Unset or empty variables leave the current value alone.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	setString := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	setString(&c.APIKey, EnvGeminiAPIKey)
	setString(&c.OpenAIAPIKey, EnvOpenAIAPIKey)
	setString(&c.LLMProvider, EnvLLMProvider)
	setString(&c.Model, EnvLLMModel)
	setString(&c.RedisURL, EnvRedisURL)
	setString(&c.LogLevel, EnvLogLevel)
	setString(&c.LogFormat, EnvLogFormat)
	setString(&c.ChromePath, EnvChromePath)
	setString(&c.Seed, EnvSeed)

	if v := strings.TrimSpace(getenv(EnvPort)); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: %s must be a number: %w", EnvPort, err)
		}
		c.Port = port
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.LLMProvider = strings.ToLower(c.LLMProvider)
	return nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return fmt.Errorf("config error: invalid '%s' (%s)", jsonName(errs[0].StructField()), errs[0].Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	// Validate file paths exist (if specified)
	if c.Seed != "" {
		if _, err := os.Stat(c.Seed); os.IsNotExist(err) {
			return fmt.Errorf("config error: seed file not found: %s", c.Seed)
		}
	}
	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}

	return nil
}

// ProviderAPIKey returns the API key of the configured provider
func (c *Config) ProviderAPIKey() string {
	if c.LLMProvider == "openai" {
		return c.OpenAIAPIKey
	}
	return c.APIKey
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	mergeString(&result.Seed, defaults.Seed)
	mergeString(&result.PresentLabel, defaults.PresentLabel)
	mergeString(&result.LogLevel, defaults.LogLevel)
	mergeString(&result.LogFormat, defaults.LogFormat)
	mergeString(&result.LLMProvider, defaults.LLMProvider)
	mergeString(&result.APIKey, defaults.APIKey)
	mergeString(&result.OpenAIAPIKey, defaults.OpenAIAPIKey)
	mergeString(&result.Model, defaults.Model)
	mergeString(&result.RedisURL, defaults.RedisURL)
	mergeString(&result.ChromePath, defaults.ChromePath)

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.EnhanceTimeoutSeconds == 0 {
		result.EnhanceTimeoutSeconds = defaults.EnhanceTimeoutSeconds
	}
	if result.CacheTTLSeconds == 0 {
		result.CacheTTLSeconds = defaults.CacheTTLSeconds
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Load builds the effective configuration: the optional file at path, then the
// environment, then Defaults for anything still unset.
func Load(path string) (Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}

func mergeString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

// jsonName maps a struct field to its JSON key for error messages
func jsonName(field string) string {
	switch field {
	case "LogLevel":
		return "log_level"
	case "LogFormat":
		return "log_format"
	case "LLMProvider":
		return "llm_provider"
	case "EnhanceTimeoutSeconds":
		return "enhance_timeout_seconds"
	case "CacheTTLSeconds":
		return "cache_ttl_seconds"
	default:
		return strings.ToLower(field)
	}
}
