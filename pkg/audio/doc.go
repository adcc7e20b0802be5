// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, Buffer types and sample scaling functions
// Package audio provides fundamental audio types for the speech pipeline.
//
// This package defines the core types used throughout the library:
//   - Format: Describes a PCM stream (sample rate, channel count)
//   - Buffer: Decoded audio as normalized per-channel float samples
//
// It also provides the scaling between fixed-point and normalized samples:
//   - int16 → float via division by 32768
//   - float → int16 via clamping and asymmetric scaling (×32768 for
//     negative values, ×32767 for non-negative)
//
// Example:
//
//	format := audio.Format{
//	    SampleRate: 24000,
//	    Channels:   1,
//	}
//
//	// Normalize a raw 16-bit sample
//	f := audio.SampleToFloat(sample16)
package audio
