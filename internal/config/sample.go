package config

// SampleConfig returns a fully commented configuration file
func SampleConfig() string {
	return `# spectra configuration
version: "1.0"

analytics:
  # Set to false to record nothing at all
  enabled: true
  # Where events go: posthog, file (both allowed)
  sinks:
    - file
  # PostHog host and project key, used by the posthog sink
  endpoint: https://us.i.posthog.com
  api_key: ""
  # JSON-lines event log, used by the file sink and "spectra events"
  file_path: ~/.local/state/spectra/events.jsonl
  timeout: 5s
  batch_size: 20
  flush_interval: 2s
  queue_size: 256

scroll:
  # Scroll events are reported at most once per interval and only after
  # moving more than min_delta pixels since the last report
  throttle_interval: 1s
  min_delta: 100
  # How many pixels one terminal line represents
  pixels_per_line: 20

animation:
  # Pixels of scrolling for an element to fully appear
  range: 500
  # Starting vertical offset in pixels
  max_offset: 20

reveal:
  # Statistic cards revealed one at a time
  count: 3
  interval: 200ms

content:
  # Custom landing copy (YAML); empty uses the built-in copy
  path: ""
  # Reload the copy when the file changes
  watch: false

output:
  color_mode: auto   # auto|always|never
  theme: default     # default|high-contrast|minimal
  verbose: false
  # The TUI owns the terminal, so logs go here (empty discards them)
  log_file: ""
  mouse_wheel: true
`
}

// MinimalSampleConfig returns a compact configuration with essential settings
func MinimalSampleConfig() string {
	return `version: "1.0"
analytics:
  sinks: [file]
  file_path: ~/.local/state/spectra/events.jsonl
output:
  theme: default
`
}
