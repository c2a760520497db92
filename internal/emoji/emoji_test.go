package emoji

import "testing"

func TestGetEmoji(t *testing.T) {
	t.Cleanup(func() { SetEmojiDisabled(false) })

	SetEmojiDisabled(false)
	if got := GetEmoji("pulse"); got != "💓" {
		t.Errorf("Expected pulse emoji, got %q", got)
	}

	SetEmojiDisabled(true)
	if !IsEmojiDisabled() {
		t.Error("Expected emoji to be disabled")
	}
	if got := GetEmoji("pulse"); got != "[+]" {
		t.Errorf("Expected pulse fallback, got %q", got)
	}
	if got := GetEmoji("unknown"); got != "[?]" {
		t.Errorf("Expected unknown key marker, got %q", got)
	}
}

func TestFeatureIconsHaveMappings(t *testing.T) {
	for _, key := range []string{"spectrum", "sensor", "calibration"} {
		if _, ok := emojiMap[key]; !ok {
			t.Errorf("Missing mapping for feature icon %s", key)
		}
	}
}
