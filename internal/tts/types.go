// ABOUTME: Speech synthesizer contract
// ABOUTME: Common interface for speech generation providers
package tts

import "context"

// Request contains parameters to synthesize speech
type Request struct {
	Text  string
	Voice string
}

// Result carries generated speech audio. Data is base64-encoded raw
// PCM exactly as the provider returned it; decoding is left to the
// audio pipeline.
type Result struct {
	Data     string
	MimeType string
}

// Synthesizer is the contract for producing speech audio
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) (*Result, error)
}
