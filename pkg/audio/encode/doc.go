// ABOUTME: Audio encoder package for container file output
// ABOUTME: Serializes sample buffers into downloadable WAV files
// Package encode serializes sample buffers into audio container files.
//
// Supports: 16-bit linear PCM in a RIFF/WAVE container with the fixed
// 44-byte header. The output is byte-for-byte reproducible from a given
// sample buffer.
//
// Example:
//
//	encoder := encode.NewWAV(format)
//	data, err := encoder.Encode(buf)
package encode
