// ABOUTME: Audio decoder package for the speech payload pipeline
// ABOUTME: Provides base64 payload decoding and PCM to sample buffer decoding
// Package decode converts raw speech payloads into sample buffers.
//
// The pipeline is: base64 text → raw bytes → normalized sample buffer.
//
// Supports: 16-bit signed little-endian PCM with interleaved frames.
//
// Example:
//
//	raw, err := decode.Base64(payload)
//	decoder, err := decode.NewPCM(format)
//	buf, err := decoder.Decode(raw)
package decode
