package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version   string          `yaml:"version" json:"version"`
	Analytics AnalyticsConfig `yaml:"analytics" json:"analytics"`
	Scroll    ScrollConfig    `yaml:"scroll" json:"scroll"`
	Animation AnimationConfig `yaml:"animation" json:"animation"`
	Reveal    RevealConfig    `yaml:"reveal" json:"reveal"`
	Content   ContentConfig   `yaml:"content" json:"content"`
	Output    OutputConfig    `yaml:"output" json:"output"`
}

// AnalyticsConfig configures where interaction events go
type AnalyticsConfig struct {
	Enabled       bool          `yaml:"enabled" json:"enabled"`
	Sinks         []string      `yaml:"sinks" json:"sinks"`                   // posthog|file
	Endpoint      string        `yaml:"endpoint" json:"endpoint"`             // PostHog host
	APIKey        string        `yaml:"api_key" json:"api_key"`               // project API key
	FilePath      string        `yaml:"file_path" json:"file_path"`           // JSON-lines event log
	Timeout       time.Duration `yaml:"timeout" json:"timeout"`               // per batch request
	BatchSize     int           `yaml:"batch_size" json:"batch_size"`         // events per request
	FlushInterval time.Duration `yaml:"flush_interval" json:"flush_interval"` // max time an event waits
	QueueSize     int           `yaml:"queue_size" json:"queue_size"`         // events buffered before dropping
}

// ScrollConfig configures scroll tracking
type ScrollConfig struct {
	ThrottleInterval time.Duration `yaml:"throttle_interval" json:"throttle_interval"`
	MinDelta         int           `yaml:"min_delta" json:"min_delta"`             // pixels
	PixelsPerLine    int           `yaml:"pixels_per_line" json:"pixels_per_line"` // terminal line height
}

// AnimationConfig configures scroll-driven entrance animations
type AnimationConfig struct {
	Range     int     `yaml:"range" json:"range"`           // pixels to fully appear
	MaxOffset float64 `yaml:"max_offset" json:"max_offset"` // starting offset in pixels
}

// RevealConfig configures the staggered statistic reveal
type RevealConfig struct {
	Count    int           `yaml:"count" json:"count"`
	Interval time.Duration `yaml:"interval" json:"interval"`
}

// ContentConfig configures the landing page copy
type ContentConfig struct {
	Path  string `yaml:"path" json:"path"`   // custom content file, empty for built-in
	Watch bool   `yaml:"watch" json:"watch"` // reload when the file changes
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	ColorMode  string `yaml:"color_mode" json:"color_mode"` // auto|always|never
	Theme      string `yaml:"theme" json:"theme"`           // default|high-contrast|minimal
	Verbose    bool   `yaml:"verbose" json:"verbose"`       // default verbosity
	LogFile    string `yaml:"log_file" json:"log_file"`     // where the TUI writes logs
	MouseWheel bool   `yaml:"mouse_wheel" json:"mouse_wheel"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Analytics: AnalyticsConfig{
			Enabled:       true,
			Sinks:         []string{"file"},
			Endpoint:      "https://us.i.posthog.com",
			APIKey:        "",
			FilePath:      "~/.local/state/spectra/events.jsonl",
			Timeout:       5 * time.Second,
			BatchSize:     20,
			FlushInterval: 2 * time.Second,
			QueueSize:     256,
		},
		Scroll: ScrollConfig{
			ThrottleInterval: 1000 * time.Millisecond,
			MinDelta:         100,
			PixelsPerLine:    20,
		},
		Animation: AnimationConfig{
			Range:     500,
			MaxOffset: 20,
		},
		Reveal: RevealConfig{
			Count:    3,
			Interval: 200 * time.Millisecond,
		},
		Content: ContentConfig{
			Path:  "",
			Watch: false,
		},
		Output: OutputConfig{
			ColorMode:  "auto",
			Theme:      "default",
			Verbose:    false,
			LogFile:    "",
			MouseWheel: true,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateAnalyticsConfig(); err != nil {
		return err
	}
	if err := c.validateScrollConfig(); err != nil {
		return err
	}
	if err := c.validateAnimationConfig(); err != nil {
		return err
	}
	if err := c.validateRevealConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	return nil
}

// HasSink reports whether the named analytics sink is configured
func (c *Config) HasSink(name string) bool {
	for _, s := range c.Analytics.Sinks {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return true
		}
	}
	return false
}

// validateAnalyticsConfig validates analytics-related configuration
func (c *Config) validateAnalyticsConfig() error {
	validSinks := map[string]bool{
		"posthog": true,
		"file":    true,
	}
	for _, s := range c.Analytics.Sinks {
		if !validSinks[strings.ToLower(strings.TrimSpace(s))] {
			return fmt.Errorf("invalid analytics sink: %s (must be one of: posthog, file)", s)
		}
	}
	if !c.Analytics.Enabled {
		return nil
	}
	if c.HasSink("posthog") {
		if c.Analytics.Endpoint == "" {
			return fmt.Errorf("analytics endpoint is required for the posthog sink")
		}
		if c.Analytics.APIKey == "" {
			return fmt.Errorf("analytics api_key is required for the posthog sink")
		}
	}
	if c.HasSink("file") && c.Analytics.FilePath == "" {
		return fmt.Errorf("analytics file_path is required for the file sink")
	}
	if c.Analytics.Timeout < 0 {
		return fmt.Errorf("analytics timeout must be non-negative")
	}
	if c.Analytics.BatchSize < 0 {
		return fmt.Errorf("analytics batch_size must be non-negative")
	}
	if c.Analytics.QueueSize < 0 {
		return fmt.Errorf("analytics queue_size must be non-negative")
	}
	return nil
}

// validateScrollConfig validates scroll tracking configuration
func (c *Config) validateScrollConfig() error {
	if c.Scroll.ThrottleInterval <= 0 {
		return fmt.Errorf("scroll throttle_interval must be greater than 0")
	}
	if c.Scroll.MinDelta < 1 {
		return fmt.Errorf("scroll min_delta must be greater than 0")
	}
	if c.Scroll.PixelsPerLine < 1 {
		return fmt.Errorf("scroll pixels_per_line must be greater than 0")
	}
	return nil
}

// validateAnimationConfig validates animation configuration
func (c *Config) validateAnimationConfig() error {
	if c.Animation.Range < 1 {
		return fmt.Errorf("animation range must be greater than 0")
	}
	if c.Animation.MaxOffset < 0 {
		return fmt.Errorf("animation max_offset must be non-negative")
	}
	return nil
}

// validateRevealConfig validates reveal configuration
func (c *Config) validateRevealConfig() error {
	if c.Reveal.Count < 0 {
		return fmt.Errorf("reveal count must be non-negative")
	}
	if c.Reveal.Interval <= 0 {
		return fmt.Errorf("reveal interval must be greater than 0")
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	if c.Output.Theme != "" {
		validThemes := map[string]bool{
			"default":       true,
			"high-contrast": true,
			"minimal":       true,
		}
		if !validThemes[c.Output.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.Output.Theme)
		}
	}
	return nil
}
