// ABOUTME: Audio type definitions
// ABOUTME: Defines formats, decoded sample buffers and sample scaling
package audio

const (
	// 16-bit PCM code range
	MaxInt16 = 32767  // 2^15 - 1
	MinInt16 = -32768 // -2^15
)

// Format describes a PCM audio stream
type Format struct {
	SampleRate int // frames per second
	Channels   int
}

// Buffer represents decoded audio as normalized float samples.
// Data holds one slice per channel, all of identical length.
// A Buffer is never mutated after construction and may be shared
// by the container encoder and the playback transport.
type Buffer struct {
	Format Format
	Data   [][]float64
}

// FrameCount returns the number of frames per channel
func (b *Buffer) FrameCount() int {
	if len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}

// SampleToFloat converts a signed 16-bit sample to a normalized float
// in [-1.0, 0.99997]
func SampleToFloat(sample int16) float64 {
	return float64(sample) / 32768.0
}

// SampleFromFloat converts a normalized float back to a signed 16-bit
// sample. Values are clamped to [-1.0, 1.0]. Negative values scale by
// 32768 and non-negative by 32767. Anything at or above 32767/32768,
// the largest value SampleToFloat can produce, maps straight to 32767;
// scaling that sliver by 32767 would truncate to 32766 and break the
// boundary round trip.
func SampleFromFloat(sample float64) int16 {
	if sample <= -1.0 {
		return MinInt16
	}
	if sample >= 32767.0/32768.0 {
		return MaxInt16
	}
	if sample < 0 {
		return int16(sample * 32768.0)
	}
	return int16(sample * 32767.0)
}
