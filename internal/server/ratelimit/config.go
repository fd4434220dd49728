package ratelimit

import (
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	// IdleTTL is how long an unused bucket is kept
	IdleTTL         time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultConfig returns the configuration used when nothing is set in the environment.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// LoadConfig loads rate limiting configuration from environment variables.
// getenv is usually os.Getenv.
func LoadConfig(getenv func(string) string) *Config {
	env := envReader(getenv)
	cfg := DefaultConfig()

	cfg.Enabled = env.bool("RATE_LIMIT_ENABLED", true)
	if !cfg.Enabled {
		return &Config{Enabled: false}
	}

	cfg.DefaultLimit = env.int("RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = env.duration("RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.CleanupInterval = env.duration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	cfg.Whitelist = parseIPList(env.string("RATE_LIMIT_WHITELIST", ""))
	cfg.Blacklist = parseIPList(env.string("RATE_LIMIT_BLACKLIST", ""))

	// one knob for every endpoint that calls the LLM
	enhanceLimit := env.int("RATE_LIMIT_ENHANCE_LIMIT", 30)
	for i := range cfg.EndpointConfigs {
		if cfg.EndpointConfigs[i].Window == time.Hour {
			cfg.EndpointConfigs[i].Limit = enhanceLimit
		}
	}
	return cfg
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: LLM calls and PDF export (strictest limits)
		{Path: "/polish", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/enhance", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/sections/", Method: "POST", Limit: 30, Window: time.Hour, Burst: 2},
		{Path: "/summary/generate", Method: "POST", Limit: 30, Window: time.Hour, Burst: 2},
		{Path: "/export.pdf", Method: "GET", Limit: 30, Window: time.Hour, Burst: 3},

		// Tier 2: edits (moderate limits, editors send one command per keystroke batch)
		{Path: "/commands", Method: "POST", Limit: 600, Window: time.Minute, Burst: 60},

		// Tier 3: reads - handled by default limit
		// Tier 4: health check (unlimited) - handled by special case in matcher
	}
}

// envReader reads typed values, falling back to a default when unset or malformed.
type envReader func(string) string

func (e envReader) string(key, defaultValue string) string {
	if value := strings.TrimSpace(e(key)); value != "" {
		return value
	}
	return defaultValue
}

func (e envReader) int(key string, defaultValue int) int {
	if intValue, err := strconv.Atoi(e.string(key, "")); err == nil {
		return intValue
	}
	return defaultValue
}

func (e envReader) bool(key string, defaultValue bool) bool {
	if boolValue, err := strconv.ParseBool(e.string(key, "")); err == nil {
		return boolValue
	}
	return defaultValue
}

func (e envReader) duration(key string, defaultValue time.Duration) time.Duration {
	if duration, err := time.ParseDuration(e.string(key, "")); err == nil {
		return duration
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
