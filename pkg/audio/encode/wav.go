// ABOUTME: WAV container encoder
// ABOUTME: Encodes sample buffers as 16-bit PCM RIFF/WAVE files
package encode

import (
	"encoding/binary"
	"fmt"

	"github.com/Aatif-qmr/Gemini-TTS-voice/pkg/audio"
)

// HeaderSize is the fixed RIFF/WAVE/fmt/data header length in bytes
const HeaderSize = 44

// ErrEmptyBuffer indicates there are no samples to encode
var ErrEmptyBuffer = fmt.Errorf("empty sample buffer")

// WAVEncoder encodes sample buffers into WAV files
type WAVEncoder struct {
	format audio.Format
}

// NewWAV creates a WAV encoder for the given format
func NewWAV(format audio.Format) *WAVEncoder {
	return &WAVEncoder{
		format: format,
	}
}

// Encode serializes the buffer's first channel as 16-bit linear PCM
// behind the fixed 44-byte header. The result is deterministic: the
// same buffer always produces the same bytes.
func (e *WAVEncoder) Encode(buf *audio.Buffer) ([]byte, error) {
	if buf == nil || len(buf.Data) == 0 || buf.FrameCount() == 0 {
		return nil, ErrEmptyBuffer
	}

	samples := buf.Data[0]
	dataSize := len(samples) * 2
	channels := e.format.Channels
	byteRate := e.format.SampleRate * channels * 2
	blockAlign := channels * 2

	out := make([]byte, HeaderSize+dataSize)
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(HeaderSize+dataSize-8))
	copy(out[8:12], "WAVE")
	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16) // fmt chunk size
	binary.LittleEndian.PutUint16(out[20:22], 1)  // linear PCM
	binary.LittleEndian.PutUint16(out[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:28], uint32(e.format.SampleRate))
	binary.LittleEndian.PutUint32(out[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:36], 16) // bits per sample
	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(dataSize))

	for i, sample := range samples {
		value := audio.SampleFromFloat(sample)
		binary.LittleEndian.PutUint16(out[HeaderSize+i*2:], uint16(value))
	}

	return out, nil
}
