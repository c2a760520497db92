package config

import (
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", cfg.Version)
	}
	if !cfg.Analytics.Enabled {
		t.Error("Expected analytics to be enabled by default")
	}
	if !cfg.HasSink("file") || cfg.HasSink("posthog") {
		t.Errorf("Expected only the file sink by default, got %v", cfg.Analytics.Sinks)
	}
	if cfg.Scroll.ThrottleInterval != time.Second {
		t.Errorf("Expected throttle interval 1s, got %v", cfg.Scroll.ThrottleInterval)
	}
	if cfg.Scroll.MinDelta != 100 {
		t.Errorf("Expected min delta 100, got %d", cfg.Scroll.MinDelta)
	}
	if cfg.Animation.Range != 500 || cfg.Animation.MaxOffset != 20 {
		t.Errorf("Expected animation 500/20, got %d/%v", cfg.Animation.Range, cfg.Animation.MaxOffset)
	}
	if cfg.Reveal.Count != 3 || cfg.Reveal.Interval != 200*time.Millisecond {
		t.Errorf("Expected reveal 3/200ms, got %d/%v", cfg.Reveal.Count, cfg.Reveal.Interval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "invalid sink",
			mutate:  func(c *Config) { c.Analytics.Sinks = []string{"kafka"} },
			wantErr: true,
			errMsg:  "invalid analytics sink: kafka (must be one of: posthog, file)",
		},
		{
			name:    "posthog without key",
			mutate:  func(c *Config) { c.Analytics.Sinks = []string{"posthog"} },
			wantErr: true,
			errMsg:  "analytics api_key is required for the posthog sink",
		},
		{
			name: "posthog without key but disabled",
			mutate: func(c *Config) {
				c.Analytics.Sinks = []string{"posthog"}
				c.Analytics.Enabled = false
			},
			wantErr: false,
		},
		{
			name:    "file sink without path",
			mutate:  func(c *Config) { c.Analytics.FilePath = "" },
			wantErr: true,
			errMsg:  "analytics file_path is required for the file sink",
		},
		{
			name:    "zero throttle interval",
			mutate:  func(c *Config) { c.Scroll.ThrottleInterval = 0 },
			wantErr: true,
			errMsg:  "scroll throttle_interval must be greater than 0",
		},
		{
			name:    "zero min delta",
			mutate:  func(c *Config) { c.Scroll.MinDelta = 0 },
			wantErr: true,
			errMsg:  "scroll min_delta must be greater than 0",
		},
		{
			name:    "zero animation range",
			mutate:  func(c *Config) { c.Animation.Range = 0 },
			wantErr: true,
			errMsg:  "animation range must be greater than 0",
		},
		{
			name:    "negative reveal count",
			mutate:  func(c *Config) { c.Reveal.Count = -1 },
			wantErr: true,
			errMsg:  "reveal count must be non-negative",
		},
		{
			name:    "invalid color mode",
			mutate:  func(c *Config) { c.Output.ColorMode = "rainbow" },
			wantErr: true,
			errMsg:  "invalid color mode: rainbow (must be one of: auto, always, never)",
		},
		{
			name:    "invalid theme",
			mutate:  func(c *Config) { c.Output.Theme = "neon" },
			wantErr: true,
			errMsg:  "invalid theme: neon (must be one of: default, high-contrast, minimal)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				} else if tt.errMsg != "" && err.Error() != tt.errMsg {
					t.Errorf("Expected error message '%s', got '%s'", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestHasSinkIgnoresCaseAndSpace(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Analytics.Sinks = []string{" PostHog "}
	if !cfg.HasSink("posthog") {
		t.Error("Expected posthog sink to be found")
	}
}

func TestSampleConfigsParse(t *testing.T) {
	for name, sample := range map[string]string{
		"full":    SampleConfig(),
		"minimal": MinimalSampleConfig(),
	} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			if err := yaml.Unmarshal([]byte(sample), cfg); err != nil {
				t.Fatalf("Sample config does not parse: %v", err)
			}
			cfg.Analytics.FilePath = expandPath(cfg.Analytics.FilePath)
			if err := cfg.Validate(); err != nil {
				t.Errorf("Sample config is not valid: %v", err)
			}
			if !strings.HasSuffix(cfg.Analytics.FilePath, "events.jsonl") {
				t.Errorf("Unexpected file path %s", cfg.Analytics.FilePath)
			}
		})
	}
}
