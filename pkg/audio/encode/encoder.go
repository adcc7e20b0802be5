// ABOUTME: Encoder interface definition
// ABOUTME: Common interface for container encoders
package encode

import "github.com/Aatif-qmr/Gemini-TTS-voice/pkg/audio"

// Encoder serializes a sample buffer to container file bytes
type Encoder interface {
	// Encode converts a sample buffer to a self-contained audio file
	Encode(buf *audio.Buffer) ([]byte, error)
}
