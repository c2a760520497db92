package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectra-health/spectra/internal/logger"
)

func TestDefaultCopy(t *testing.T) {
	page := Default()

	assert.Equal(t, "Precision for\nEvery Patient", page.Hero.Title)
	require.Len(t, page.Stats, 3)
	assert.Equal(t, []string{"3x", "11.7%", "3.56%"}, []string{page.Stats[0].Value, page.Stats[1].Value, page.Stats[2].Value})
	require.Len(t, page.Technology.Features, 3)
	assert.Equal(t, "Custom Calibration", page.Technology.Features[2].Title)
	assert.Equal(t, "Reserve Yours Today", page.Preorder.Action)
	assert.Equal(t, []string{"name", "email", "card_number", "expiry", "cvc"}, page.FieldIDs())
	assert.NoError(t, page.Validate())
}

func TestParseOverlaysDefaults(t *testing.T) {
	page, err := Parse([]byte("hero:\n  title: Accurate for Everyone\n"))
	require.NoError(t, err)

	assert.Equal(t, "Accurate for Everyone", page.Hero.Title)
	assert.Equal(t, "Learn More", page.Hero.Action)
	assert.Len(t, page.Stats, 3)
}

func TestParseReplacesLists(t *testing.T) {
	page, err := Parse([]byte("stats:\n  - value: 1\n    highlight: One\n"))
	require.NoError(t, err)

	require.Len(t, page.Stats, 1)
	assert.Equal(t, "1", page.Stats[0].Value)
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty title", "hero:\n  title: \"  \"\n", "hero title is required"},
		{"no stats", "stats: []\n", "at least one statistic is required"},
		{"stat without value", "stats:\n  - highlight: x\n", "statistic 0 has no value"},
		{"duplicate field", "checkout:\n  fields:\n    - id: a\n    - id: a\n", "duplicate checkout field id: a"},
		{"field without id", "checkout:\n  fields:\n    - label: x\n", "checkout field 0 has no id"},
		{"negative limit", "checkout:\n  fields:\n    - id: a\n      char_limit: -1\n", "negative char_limit"},
		{"bad yaml", "hero: [", "failed to parse content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("empty path uses built-in copy", func(t *testing.T) {
		page, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), page)
	})

	t.Run("custom file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "landing.yaml")
		require.NoError(t, os.WriteFile(path, []byte("dialog:\n  message: Coming soon\n"), 0o600))

		page, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "Coming soon", page.Dialog.Message)
		assert.Equal(t, "Return to Homepage", page.Dialog.Action)
	})

	t.Run("wrong extension", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "landing.json"))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestWatchReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "landing.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hero:\n  title: First\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pages := make(chan *Page, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, logger.Nop(), func(p *Page) { pages <- p })
	}()

	// Keep writing until the watcher is registered and picks a change up
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()

	var got *Page
	for got == nil {
		select {
		case p := <-pages:
			got = p
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, []byte("hero:\n  title: Second\n"), 0o600))
		case <-deadline:
			t.Fatal("timed out waiting for content reload")
		}
	}
	assert.Equal(t, "Second", got.Hero.Title)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchSkipsInvalidEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "landing.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hero:\n  title: First\n"), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()

	called := make(chan struct{}, 8)
	go func() {
		time.Sleep(300 * time.Millisecond)
		_ = os.WriteFile(path, []byte("stats: []\n"), 0o600)
	}()

	err := Watch(ctx, path, logger.Nop(), func(*Page) { called <- struct{}{} })
	require.NoError(t, err)
	assert.Empty(t, called)
}

func TestWatchMissingDirectory(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "landing.yaml"), nil, func(*Page) {})
	assert.Error(t, err)
}
