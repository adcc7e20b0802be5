// ABOUTME: Application configuration
// ABOUTME: Defaults, environment loading and validation
package config

import (
	"fmt"
	"os"

	"github.com/lemon-mint/godotenv"
)

const (
	// Gemini speech output is mono 16-bit PCM at 24 kHz
	DefaultSampleRate = 24000
	DefaultChannels   = 1
	DefaultModel      = "gemini-2.5-flash-preview-tts"
)

// Config holds application settings
type Config struct {
	APIKey     string
	Model      string
	Voice      string
	SampleRate int
	Channels   int
	LogFile    string
	UseMock    bool
}

// Default returns the baseline configuration
func Default() Config {
	return Config{
		Model:      DefaultModel,
		Voice:      "Kore",
		SampleRate: DefaultSampleRate,
		Channels:   DefaultChannels,
		LogFile:    "tts-voice.log",
	}
}

// LoadEnv fills unset fields from the environment, reading a .env
// file if one is present
func (c *Config) LoadEnv() {
	godotenv.Load()

	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
}

// Validate checks the configuration is usable
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", c.SampleRate)
	}
	if c.Channels <= 0 {
		return fmt.Errorf("invalid channel count: %d", c.Channels)
	}
	if !c.UseMock && c.APIKey == "" {
		return fmt.Errorf("no API key: set GEMINI_API_KEY or use -mock")
	}
	return nil
}
