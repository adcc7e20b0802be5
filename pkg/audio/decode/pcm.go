// ABOUTME: PCM audio decoder
// ABOUTME: Decodes 16-bit little-endian PCM bytes to normalized sample buffers
package decode

import (
	"encoding/binary"
	"fmt"

	"github.com/Aatif-qmr/Gemini-TTS-voice/pkg/audio"
)

// ErrTruncatedPayload indicates the byte length is not aligned to the frame size
var ErrTruncatedPayload = fmt.Errorf("truncated PCM payload")

// PCMDecoder decodes 16-bit PCM audio
type PCMDecoder struct {
	format audio.Format
}

// NewPCM creates a new PCM decoder for the given format
func NewPCM(format audio.Format) (*PCMDecoder, error) {
	if format.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", format.SampleRate)
	}

	if format.Channels <= 0 {
		return nil, fmt.Errorf("invalid channel count: %d", format.Channels)
	}

	return &PCMDecoder{
		format: format,
	}, nil
}

// Decode converts interleaved 16-bit little-endian PCM bytes to a
// normalized sample buffer. The byte length must be a multiple of
// channels*2; trailing partial frames are rejected, never dropped.
func (d *PCMDecoder) Decode(data []byte) (*audio.Buffer, error) {
	frameSize := d.format.Channels * 2
	if len(data)%frameSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of frame size %d",
			ErrTruncatedPayload, len(data), frameSize)
	}

	frameCount := len(data) / frameSize
	channels := make([][]float64, d.format.Channels)
	for c := range channels {
		channels[c] = make([]float64, frameCount)
	}

	for i := 0; i < frameCount; i++ {
		for c := 0; c < d.format.Channels; c++ {
			offset := (i*d.format.Channels + c) * 2
			sample := int16(binary.LittleEndian.Uint16(data[offset:]))
			channels[c][i] = audio.SampleToFloat(sample)
		}
	}

	return &audio.Buffer{
		Format: d.format,
		Data:   channels,
	}, nil
}
