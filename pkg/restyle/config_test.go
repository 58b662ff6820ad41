package restyle

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Workers != 1 {
		t.Errorf("Workers = %d, want 1", config.Workers)
	}
	if config.CacheMaxSize != 100 {
		t.Errorf("CacheMaxSize = %d, want 100", config.CacheMaxSize)
	}
	if config.CacheTTL != 0 {
		t.Errorf("CacheTTL = %v, want 0", config.CacheTTL)
	}
	if config.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", config.LogLevel)
	}
	if config.OutputSuffix != "_EDITED" {
		t.Errorf("OutputSuffix = %q, want _EDITED", config.OutputSuffix)
	}
	if config.OnMissingStyle != OnMissingStyleAbort {
		t.Errorf("OnMissingStyle = %q, want abort", config.OnMissingStyle)
	}
	if config.StrictSpanConflicts {
		t.Error("StrictSpanConflicts = true, want false")
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("RESTYLE_WORKERS", "8")
	t.Setenv("RESTYLE_CACHE_MAX_SIZE", "25")
	t.Setenv("RESTYLE_CACHE_TTL", "5m")
	t.Setenv("RESTYLE_LOG_LEVEL", "debug")
	t.Setenv("RESTYLE_OUTPUT_SUFFIX", "_STYLED")
	t.Setenv("RESTYLE_ON_MISSING_STYLE", "skip")
	t.Setenv("RESTYLE_STRICT_SPAN_CONFLICTS", "true")

	config := ConfigFromEnvironment()

	if config.Workers != 8 {
		t.Errorf("Workers = %d, want 8", config.Workers)
	}
	if config.CacheMaxSize != 25 {
		t.Errorf("CacheMaxSize = %d, want 25", config.CacheMaxSize)
	}
	if config.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m", config.CacheTTL)
	}
	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", config.LogLevel)
	}
	if config.OutputSuffix != "_STYLED" {
		t.Errorf("OutputSuffix = %q, want _STYLED", config.OutputSuffix)
	}
	if config.OnMissingStyle != OnMissingStyleSkip {
		t.Errorf("OnMissingStyle = %q, want skip", config.OnMissingStyle)
	}
	if !config.StrictSpanConflicts {
		t.Error("StrictSpanConflicts = false, want true")
	}
}

func TestConfigFromEnvironmentIgnoresInvalidValues(t *testing.T) {
	t.Setenv("RESTYLE_WORKERS", "many")
	t.Setenv("RESTYLE_CACHE_TTL", "soon")

	config := ConfigFromEnvironment()

	if config.Workers != 1 {
		t.Errorf("Workers = %d, want default 1", config.Workers)
	}
	if config.CacheTTL != 0 {
		t.Errorf("CacheTTL = %v, want default 0", config.CacheTTL)
	}
}

func TestNewConfigWithDefaults(t *testing.T) {
	tests := []struct {
		name      string
		overrides *Config
		check     func(t *testing.T, config *Config)
	}{
		{
			name:      "nil overrides",
			overrides: nil,
			check: func(t *testing.T, config *Config) {
				if config.Workers != 1 || config.OutputSuffix != "_EDITED" {
					t.Errorf("got %+v, want defaults", config)
				}
			},
		},
		{
			name:      "partial overrides keep defaults elsewhere",
			overrides: &Config{Workers: 4},
			check: func(t *testing.T, config *Config) {
				if config.Workers != 4 {
					t.Errorf("Workers = %d, want 4", config.Workers)
				}
				if config.LogLevel != "info" || config.OnMissingStyle != OnMissingStyleAbort {
					t.Errorf("defaults not applied: %+v", config)
				}
			},
		},
		{
			name:      "explicit values survive",
			overrides: &Config{OutputSuffix: "_OUT", OnMissingStyle: OnMissingStyleSkip, StrictSpanConflicts: true},
			check: func(t *testing.T, config *Config) {
				if config.OutputSuffix != "_OUT" || config.OnMissingStyle != OnMissingStyleSkip || !config.StrictSpanConflicts {
					t.Errorf("overrides lost: %+v", config)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, NewConfigWithDefaults(tt.overrides))
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"negative workers", func(c *Config) { c.Workers = -1 }, true},
		{"negative cache size", func(c *Config) { c.CacheMaxSize = -1 }, true},
		{"negative TTL", func(c *Config) { c.CacheTTL = -time.Second }, true},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"off log level", func(c *Config) { c.LogLevel = "off" }, false},
		{"unknown missing-style policy", func(c *Config) { c.OnMissingStyle = "ignore" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGlobalConfigReturnsCopy(t *testing.T) {
	original := GetGlobalConfig()
	defer SetGlobalConfig(original)

	SetGlobalConfig(&Config{Workers: 3, LogLevel: "warn", OutputSuffix: "_X", OnMissingStyle: OnMissingStyleAbort})

	got := GetGlobalConfig()
	got.Workers = 99

	if GetGlobalConfig().Workers != 3 {
		t.Error("mutating the returned config changed the global config")
	}
}
