package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// newTestLoader searches only inside dir so tests never see real config files
func newTestLoader(dir string) *Loader {
	return &Loader{
		configPaths: []string{filepath.Join(dir, ".spectra.yaml")},
		dotEnvPaths: []string{filepath.Join(dir, ".env")},
	}
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil {
		t.Fatal("NewLoader returned nil")
	}
	if len(loader.configPaths) != 3 {
		t.Errorf("Expected 3 config paths, got %d", len(loader.configPaths))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	loader := newTestLoader(t.TempDir())

	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}
	if cfg.Scroll.MinDelta != 100 {
		t.Errorf("Expected default min delta 100, got %d", cfg.Scroll.MinDelta)
	}
	if strings.HasPrefix(cfg.Analytics.FilePath, "~") {
		t.Errorf("Expected file path to be expanded, got %s", cfg.Analytics.FilePath)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test-config.yaml")

	configContent := `version: "1.0"
analytics:
  sinks: [posthog, file]
  api_key: "phc_abc"
  timeout: 10s
scroll:
  min_delta: 150
reveal:
  interval: 300ms
output:
  theme: minimal
  verbose: true
`

	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	cfg, err := newTestLoader(tempDir).LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config from file: %v", err)
	}

	if !cfg.HasSink("posthog") || !cfg.HasSink("file") {
		t.Errorf("Expected posthog and file sinks, got %v", cfg.Analytics.Sinks)
	}
	if cfg.Analytics.APIKey != "phc_abc" {
		t.Errorf("Expected api key phc_abc, got %s", cfg.Analytics.APIKey)
	}
	if cfg.Analytics.Timeout != 10*time.Second {
		t.Errorf("Expected timeout 10s, got %v", cfg.Analytics.Timeout)
	}
	if cfg.Scroll.MinDelta != 150 {
		t.Errorf("Expected min delta 150, got %d", cfg.Scroll.MinDelta)
	}
	if cfg.Reveal.Interval != 300*time.Millisecond {
		t.Errorf("Expected reveal interval 300ms, got %v", cfg.Reveal.Interval)
	}
	if !cfg.Output.Verbose {
		t.Errorf("Expected verbose to be true")
	}

	// Keys missing from the file keep their defaults
	if !cfg.Analytics.Enabled {
		t.Errorf("Expected analytics to stay enabled")
	}
	if cfg.Scroll.ThrottleInterval != time.Second {
		t.Errorf("Expected throttle interval to remain 1s, got %v", cfg.Scroll.ThrottleInterval)
	}
	if cfg.Reveal.Count != 3 {
		t.Errorf("Expected reveal count to remain 3, got %d", cfg.Reveal.Count)
	}
}

func TestLoadConfigSearchPath(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tempDir, ".spectra.yaml"), []byte("scroll:\n  min_delta: 250\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := newTestLoader(tempDir).LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Scroll.MinDelta != 250 {
		t.Errorf("Expected min delta 250, got %d", cfg.Scroll.MinDelta)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid-config.yaml")

	invalidConfigContent := `version: "1.0"
analytics:
  sinks: [file
output:
  theme: "minimal
`

	if err := os.WriteFile(configPath, []byte(invalidConfigContent), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	if _, err := newTestLoader(tempDir).LoadConfig(configPath); err == nil {
		t.Error("Expected error loading invalid YAML config, but got none")
	}
}

func TestLoadConfigRejectsBadPaths(t *testing.T) {
	loader := newTestLoader(t.TempDir())
	for _, path := range []string{"../outside.yaml", "config.json"} {
		if _, err := loader.LoadConfig(path); err == nil {
			t.Errorf("Expected error for path %s", path)
		}
	}
}

func TestLoadConfigValidationFailure(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "bad.yaml")
	if err := os.WriteFile(configPath, []byte("output:\n  theme: neon\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	_, err := newTestLoader(tempDir).LoadConfig(configPath)
	if err == nil || !strings.Contains(err.Error(), "configuration validation failed") {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SPECTRA_ANALYTICS_API_KEY", "phc_env")
	t.Setenv("SPECTRA_ANALYTICS_SINKS", "posthog, file ,")
	t.Setenv("SPECTRA_SCROLL_MIN_DELTA", "75")
	t.Setenv("SPECTRA_ANIMATION_MAX_OFFSET", "12.5")
	t.Setenv("SPECTRA_REVEAL_INTERVAL", "150ms")
	t.Setenv("SPECTRA_OUTPUT_VERBOSE", "true")

	cfg := DefaultConfig()
	if err := NewLoader().applyEnvOverrides(cfg); err != nil {
		t.Fatalf("Failed to apply env overrides: %v", err)
	}

	if cfg.Analytics.APIKey != "phc_env" {
		t.Errorf("Expected api key phc_env, got %s", cfg.Analytics.APIKey)
	}
	if len(cfg.Analytics.Sinks) != 2 || cfg.Analytics.Sinks[0] != "posthog" || cfg.Analytics.Sinks[1] != "file" {
		t.Errorf("Expected sinks [posthog file], got %v", cfg.Analytics.Sinks)
	}
	if cfg.Scroll.MinDelta != 75 {
		t.Errorf("Expected min delta 75, got %d", cfg.Scroll.MinDelta)
	}
	if cfg.Animation.MaxOffset != 12.5 {
		t.Errorf("Expected max offset 12.5, got %v", cfg.Animation.MaxOffset)
	}
	if cfg.Reveal.Interval != 150*time.Millisecond {
		t.Errorf("Expected reveal interval 150ms, got %v", cfg.Reveal.Interval)
	}
	if !cfg.Output.Verbose {
		t.Errorf("Expected verbose to be true")
	}
}

func TestApplyEnvOverridesInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
	}{
		{"invalid int", "SPECTRA_SCROLL_MIN_DELTA", "not-a-number"},
		{"invalid bool", "SPECTRA_OUTPUT_VERBOSE", "not-a-bool"},
		{"invalid duration", "SPECTRA_ANALYTICS_TIMEOUT", "not-a-duration"},
		{"invalid float", "SPECTRA_ANIMATION_MAX_OFFSET", "twenty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.value)

			cfg := DefaultConfig()
			if err := NewLoader().applyEnvOverrides(cfg); err == nil {
				t.Error("Expected error for invalid env var value, but got none")
			}
		})
	}
}

func TestDotEnvIsLoaded(t *testing.T) {
	tempDir := t.TempDir()
	envFile := filepath.Join(tempDir, ".env")
	if err := os.WriteFile(envFile, []byte("SPECTRA_TEST_DOTENV_KEY=phc_dotenv\n"), 0o600); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("SPECTRA_TEST_DOTENV_KEY") })

	if err := newTestLoader(tempDir).loadDotEnv(); err != nil {
		t.Fatalf("Failed to load .env: %v", err)
	}
	if got := os.Getenv("SPECTRA_TEST_DOTENV_KEY"); got != "phc_dotenv" {
		t.Errorf("Expected phc_dotenv from .env, got %q", got)
	}
}

func TestMissingDotEnvIsIgnored(t *testing.T) {
	if err := newTestLoader(t.TempDir()).loadDotEnv(); err != nil {
		t.Errorf("Expected missing .env to be ignored, got %v", err)
	}
}

func TestParseHelpers(t *testing.T) {
	var d time.Duration
	if err := parseDuration("30s", &d); err != nil || d != 30*time.Second {
		t.Errorf("Expected 30s, got %v (%v)", d, err)
	}
	if err := parseDuration("invalid", &d); err == nil {
		t.Error("Expected error for invalid duration")
	}

	var i int
	if err := parseInt("42", &i); err != nil || i != 42 {
		t.Errorf("Expected 42, got %d (%v)", i, err)
	}

	var b bool
	if err := parseBool("true", &b); err != nil || !b {
		t.Errorf("Expected true, got %v (%v)", b, err)
	}

	var f float64
	if err := parseFloat("2.5", &f); err != nil || f != 2.5 {
		t.Errorf("Expected 2.5, got %v (%v)", f, err)
	}
}

func TestExpandPath(t *testing.T) {
	if got := expandPath("./config.yaml"); got != "./config.yaml" {
		t.Errorf("Expected relative path unchanged, got %s", got)
	}
	if got := expandPath("/etc/spectra/config.yaml"); got != "/etc/spectra/config.yaml" {
		t.Errorf("Expected absolute path unchanged, got %s", got)
	}
	if got := ExpandPath("~/.config/spectra/config.yaml"); got == "~/.config/spectra/config.yaml" {
		t.Errorf("Expected tilde to be expanded")
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := GetConfigPaths()
	if len(paths) != 3 {
		t.Fatalf("Expected 3 config paths, got %d", len(paths))
	}
	if paths[0] != "./.spectra.yaml" {
		t.Errorf("Expected project config first, got %s", paths[0])
	}
	if paths[2] != "/etc/spectra/config.yaml" {
		t.Errorf("Expected system config last, got %s", paths[2])
	}
}
