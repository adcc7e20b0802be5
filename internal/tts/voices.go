// ABOUTME: Prebuilt voice identifiers
// ABOUTME: Fixed list of selectable Gemini speech voices
package tts

// DefaultVoice is used when no voice is selected
const DefaultVoice = "Kore"

// Voices returns the selectable prebuilt voice identifiers. The IDs
// are opaque strings passed to the provider unmodified.
func Voices() []string {
	return []string{
		"Kore",
		"Puck",
		"Charon",
		"Fenrir",
		"Aoede",
		"Leda",
		"Orus",
		"Zephyr",
	}
}
