// ABOUTME: Version constants
// ABOUTME: Identifies the product in logs and file names
package version

const (
	Product      = "Gemini TTS Voice"
	Manufacturer = "Aatif-qmr"
	Version      = "1.0.0"
)
