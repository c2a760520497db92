package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.spectra.yaml",               // Project-specific config (highest priority)
	"~/.config/spectra/config.yaml", // User config
	"/etc/spectra/config.yaml",      // System config (lowest priority)
}

// DotEnvPaths are loaded into the environment before overrides are applied.
// Variables that are already set win over the file.
var DotEnvPaths = []string{".env"}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	dotEnvPaths []string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		dotEnvPaths: DotEnvPaths,
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables (including .env)
// 3. ./.spectra.yaml
// 4. ~/.config/spectra/config.yaml
// 5. /etc/spectra/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, expandPath(customPath)); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// Lowest priority first so later files override earlier ones
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := expandPath(l.configPaths[i])
			if !fileExists(expandedPath) {
				continue
			}
			if err := l.loadFromFile(config, expandedPath); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", expandedPath, err)
			}
		}
	}

	if err := l.loadDotEnv(); err != nil {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	config.Analytics.FilePath = expandPath(config.Analytics.FilePath)
	config.Content.Path = expandPath(config.Content.Path)
	config.Output.LogFile = expandPath(config.Output.LogFile)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile overlays the keys present in a YAML file onto config.
// Keys missing from the file keep their current value.
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() or comes from ConfigPaths
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	next := *config
	if err := yaml.Unmarshal(data, &next); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	*config = next

	return nil
}

// loadDotEnv loads .env files that exist
func (l *Loader) loadDotEnv() error {
	for _, path := range l.dotEnvPaths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// Analytics Config
		"SPECTRA_ANALYTICS_ENABLED":        func(v string) error { return parseBool(v, &config.Analytics.Enabled) },
		"SPECTRA_ANALYTICS_ENDPOINT":       func(v string) error { config.Analytics.Endpoint = v; return nil },
		"SPECTRA_ANALYTICS_API_KEY":        func(v string) error { config.Analytics.APIKey = v; return nil },
		"SPECTRA_ANALYTICS_FILE_PATH":      func(v string) error { config.Analytics.FilePath = v; return nil },
		"SPECTRA_ANALYTICS_TIMEOUT":        func(v string) error { return parseDuration(v, &config.Analytics.Timeout) },
		"SPECTRA_ANALYTICS_BATCH_SIZE":     func(v string) error { return parseInt(v, &config.Analytics.BatchSize) },
		"SPECTRA_ANALYTICS_FLUSH_INTERVAL": func(v string) error { return parseDuration(v, &config.Analytics.FlushInterval) },
		"SPECTRA_ANALYTICS_QUEUE_SIZE":     func(v string) error { return parseInt(v, &config.Analytics.QueueSize) },

		// Scroll Config
		"SPECTRA_SCROLL_THROTTLE_INTERVAL": func(v string) error { return parseDuration(v, &config.Scroll.ThrottleInterval) },
		"SPECTRA_SCROLL_MIN_DELTA":         func(v string) error { return parseInt(v, &config.Scroll.MinDelta) },
		"SPECTRA_SCROLL_PIXELS_PER_LINE":   func(v string) error { return parseInt(v, &config.Scroll.PixelsPerLine) },

		// Animation and Reveal Config
		"SPECTRA_ANIMATION_RANGE":      func(v string) error { return parseInt(v, &config.Animation.Range) },
		"SPECTRA_ANIMATION_MAX_OFFSET": func(v string) error { return parseFloat(v, &config.Animation.MaxOffset) },
		"SPECTRA_REVEAL_COUNT":         func(v string) error { return parseInt(v, &config.Reveal.Count) },
		"SPECTRA_REVEAL_INTERVAL":      func(v string) error { return parseDuration(v, &config.Reveal.Interval) },

		// Content Config
		"SPECTRA_CONTENT_PATH":  func(v string) error { config.Content.Path = v; return nil },
		"SPECTRA_CONTENT_WATCH": func(v string) error { return parseBool(v, &config.Content.Watch) },

		// Output Config
		"SPECTRA_OUTPUT_COLOR_MODE":  func(v string) error { config.Output.ColorMode = v; return nil },
		"SPECTRA_OUTPUT_THEME":       func(v string) error { config.Output.Theme = v; return nil },
		"SPECTRA_OUTPUT_VERBOSE":     func(v string) error { return parseBool(v, &config.Output.Verbose) },
		"SPECTRA_OUTPUT_LOG_FILE":    func(v string) error { config.Output.LogFile = v; return nil },
		"SPECTRA_OUTPUT_MOUSE_WHEEL": func(v string) error { return parseBool(v, &config.Output.MouseWheel) },
	}

	for envVar, setter := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	// Comma-separated sink list
	if sinks := os.Getenv("SPECTRA_ANALYTICS_SINKS"); sinks != "" {
		config.Analytics.Sinks = nil
		for _, s := range strings.Split(sinks, ",") {
			if s = strings.TrimSpace(s); s != "" {
				config.Analytics.Sinks = append(config.Analytics.Sinks, s)
			}
		}
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// ExpandPath expands a leading ~ to the home directory
func ExpandPath(path string) string {
	return expandPath(path)
}

// Helper functions

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(expandPath(cleanPath))
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/proc/") || strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Type conversion helpers

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseFloat(s string, dst *float64) error {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
