package restyle

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Missing-style policies: abort stops the run before any document is opened;
// skip drops the offending import rule and the span rules that reference it.
const (
	OnMissingStyleAbort = "abort"
	OnMissingStyleSkip  = "skip"
)

// Config contains all configuration options for the restyle engine
type Config struct {
	// Workers is the number of documents processed in parallel. 1 means sequential.
	Workers int
	// CacheMaxSize is the maximum number of resolved styles to cache. 0 disables caching.
	CacheMaxSize int
	// CacheTTL is the time-to-live for cached style resolutions. 0 means no expiration.
	CacheTTL time.Duration
	// LogLevel controls the verbosity of logging (debug, info, warn, error)
	LogLevel string
	// OutputSuffix is appended to output file names before the extension
	OutputSuffix string
	// OnMissingStyle selects the policy for import rules whose style is absent
	// from the reference document (abort, skip)
	OnMissingStyle string
	// StrictSpanConflicts turns overlapping span matches from different rules
	// into a document-fatal error instead of last-wins overwriting
	StrictSpanConflicts bool
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func init() {
	// Initialize global config from environment on first use
	configOnce.Do(func() {
		globalConfig = ConfigFromEnvironment()
	})
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Workers:             1,
		CacheMaxSize:        100,
		CacheTTL:            0,
		LogLevel:            "info",
		OutputSuffix:        "_EDITED",
		OnMissingStyle:      OnMissingStyleAbort,
		StrictSpanConflicts: false,
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	// RESTYLE_WORKERS
	if val := os.Getenv("RESTYLE_WORKERS"); val != "" {
		if workers, err := strconv.Atoi(val); err == nil {
			config.Workers = workers
		}
	}

	// RESTYLE_CACHE_MAX_SIZE
	if val := os.Getenv("RESTYLE_CACHE_MAX_SIZE"); val != "" {
		if size, err := strconv.Atoi(val); err == nil {
			config.CacheMaxSize = size
		}
	}

	// RESTYLE_CACHE_TTL
	if val := os.Getenv("RESTYLE_CACHE_TTL"); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			config.CacheTTL = duration
		}
	}

	// RESTYLE_LOG_LEVEL
	if val := os.Getenv("RESTYLE_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	// RESTYLE_OUTPUT_SUFFIX
	if val := os.Getenv("RESTYLE_OUTPUT_SUFFIX"); val != "" {
		config.OutputSuffix = val
	}

	// RESTYLE_ON_MISSING_STYLE
	if val := os.Getenv("RESTYLE_ON_MISSING_STYLE"); val != "" {
		config.OnMissingStyle = val
	}

	// RESTYLE_STRICT_SPAN_CONFLICTS
	if val := os.Getenv("RESTYLE_STRICT_SPAN_CONFLICTS"); val != "" {
		config.StrictSpanConflicts = parseBool(val)
	}

	return config
}

// NewConfigWithDefaults creates a new configuration with defaults applied to unset fields
func NewConfigWithDefaults(overrides *Config) *Config {
	defaults := DefaultConfig()

	if overrides == nil {
		return defaults
	}

	// Create a copy of the overrides
	config := *overrides

	if config.Workers == 0 {
		config.Workers = defaults.Workers
	}

	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}

	if config.OutputSuffix == "" {
		config.OutputSuffix = defaults.OutputSuffix
	}

	if config.OnMissingStyle == "" {
		config.OnMissingStyle = defaults.OnMissingStyle
	}

	return &config
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return errors.New("workers must be positive")
	}

	if c.CacheMaxSize < 0 {
		return errors.New("cache max size cannot be negative")
	}

	if c.CacheTTL < 0 {
		return errors.New("cache TTL cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}

	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	if c.OnMissingStyle != OnMissingStyleAbort && c.OnMissingStyle != OnMissingStyleSkip {
		return errors.New("invalid on-missing-style policy: " + c.OnMissingStyle)
	}

	return nil
}

// GetGlobalConfig returns the global configuration
func GetGlobalConfig() *Config {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}

	// Return a copy to prevent modification
	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config *Config) {
	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	// Update logger based on new config (outside the lock to avoid deadlock)
	UpdateLoggerFromConfig()
}

// parseBool parses a boolean value from a string
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
