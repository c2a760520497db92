package emoji

import "sync/atomic"

// emojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"spectrum":    {"🌈", "[~]"},
	"sensor":      {"🔬", "[o]"},
	"calibration": {"🎛️", "[=]"},
	"pulse":       {"💓", "[+]"},
	"stat":        {"📊", "[#]"},
	"preorder":    {"📦", "[>]"},
	"card":        {"💳", "[$]"},
	"pending":     {"⏳", "[..]"},
	"back":        {"←", "<-"},
	"arrow":       {"→", "->"},
	"check":       {"✅", "[OK]"},
	"warning":     {"⚠️", "[WRN]"},
	"error":       {"❌", "[ERR]"},
	"help":        {"❓", "[?]"},
	"door":        {"🚪", "[EXIT]"},
}

var emojiDisabled atomic.Bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled.Store(disabled)
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled.Load()
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled.Load() {
			return mapping[1] // fallback
		}
		return mapping[0] // emoji
	}
	return "[?]" // unknown key
}
