// ABOUTME: Mock speech synthesizer
// ABOUTME: Generates a short sine burst for offline runs and tests
package tts

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"math"
)

// Mock produces a synthetic tone instead of calling a provider
type Mock struct {
	SampleRate int
	Duration   float64 // seconds
	Frequency  float64 // Hz
}

// NewMock creates a mock synthesizer at the given sample rate
func NewMock(sampleRate int) *Mock {
	return &Mock{
		SampleRate: sampleRate,
		Duration:   1.0,
		Frequency:  440,
	}
}

// Synthesize returns a base64 sine burst regardless of the text
func (m *Mock) Synthesize(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	frames := int(float64(m.SampleRate) * m.Duration)
	pcm := make([]byte, frames*2)
	for i := 0; i < frames; i++ {
		v := 0.3 * math.Sin(2*math.Pi*m.Frequency*float64(i)/float64(m.SampleRate))
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(int16(v*32767)))
	}

	return &Result{
		Data:     base64.StdEncoding.EncodeToString(pcm),
		MimeType: "audio/L16;codec=pcm;rate=24000",
	}, nil
}
