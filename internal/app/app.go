// ABOUTME: Main application orchestration
// ABOUTME: Sequences speech generation, decoding, encoding and playback
package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Aatif-qmr/Gemini-TTS-voice/internal/player"
	"github.com/Aatif-qmr/Gemini-TTS-voice/internal/tts"
	"github.com/Aatif-qmr/Gemini-TTS-voice/pkg/audio"
	"github.com/Aatif-qmr/Gemini-TTS-voice/pkg/audio/decode"
	"github.com/Aatif-qmr/Gemini-TTS-voice/pkg/audio/encode"
	"github.com/google/uuid"
)

// Status states for display
const (
	StatusIdle       = "idle"
	StatusGenerating = "generating"
	StatusPlaying    = "playing"
	StatusPaused     = "paused"
	StatusError      = "error"
)

// ArtifactMimeType is the MIME type of the downloadable file
const ArtifactMimeType = "audio/wav"

// ErrEmptyText rejects generation requests with nothing to speak
var ErrEmptyText = fmt.Errorf("enter some text to speak")

// Status is the user-facing application state
type Status struct {
	State   string
	Message string // error message when State is StatusError
}

// Config holds application configuration
type Config struct {
	Synthesizer tts.Synthesizer
	Device      player.Device
	Format      audio.Format

	// OnStatus is called on every status change. It must not call
	// back into the app.
	OnStatus func(Status)
}

// App coordinates the speech pipeline: text → provider → base64 →
// sample buffer → WAV artifact + playback.
type App struct {
	config    Config
	decoder   *decode.PCMDecoder
	encoder   *encode.WAVEncoder
	transport *player.Transport

	// playMu orders the artifact commit and playback start of
	// concurrent requests, so a slower earlier response can never
	// start its voice after a newer one already has
	playMu sync.Mutex

	mu           sync.Mutex
	seq          uint64
	generating   bool
	buffer       *audio.Buffer
	artifact     []byte
	artifactName string
	lastError    string
}

// New creates the application. The output device itself initializes
// lazily on the first playback and lives for the whole process.
func New(config Config) (*App, error) {
	decoder, err := decode.NewPCM(config.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to create PCM decoder: %w", err)
	}

	if config.Device == nil {
		config.Device = player.NewOutput(config.Format)
	}

	a := &App{
		config:  config,
		decoder: decoder,
		encoder: encode.NewWAV(config.Format),
	}
	a.transport = player.NewTransport(config.Device, a.onTransportState)

	return a, nil
}

// Generate runs the full pipeline for the given text and voice. The
// most recently issued request wins: a slower earlier response never
// overwrites a later one's artifact or playback.
func (a *App) Generate(ctx context.Context, text, voiceID string) error {
	if strings.TrimSpace(text) == "" {
		a.fail(0, ErrEmptyText)
		return ErrEmptyText
	}

	requestID := uuid.New().String()

	a.mu.Lock()
	a.seq++
	seq := a.seq
	a.generating = true
	a.lastError = ""
	a.mu.Unlock()
	a.notify(Status{State: StatusGenerating})

	log.Printf("Generation %s (seq %d): voice=%s, %d chars", requestID, seq, voiceID, len(text))

	result, err := a.config.Synthesizer.Synthesize(ctx, tts.Request{
		Text:  text,
		Voice: voiceID,
	})
	if err != nil {
		a.fail(seq, err)
		return err
	}

	raw, err := decode.Base64(result.Data)
	if err != nil {
		a.fail(seq, err)
		return err
	}

	buf, err := a.decoder.Decode(raw)
	if err != nil {
		a.fail(seq, err)
		return err
	}

	artifact, err := a.encoder.Encode(buf)
	if err != nil {
		a.fail(seq, err)
		return err
	}

	a.playMu.Lock()
	defer a.playMu.Unlock()

	a.mu.Lock()
	if seq != a.seq {
		a.mu.Unlock()
		log.Printf("Generation %s superseded, discarding result", requestID)
		return nil
	}
	a.generating = false
	a.buffer = buf
	a.artifact = artifact
	a.artifactName = fmt.Sprintf("speech-%s.wav", time.Now().Format("20060102-150405"))
	a.mu.Unlock()

	log.Printf("Generation %s complete: %d frames, %d byte artifact",
		requestID, buf.FrameCount(), len(artifact))

	if err := a.transport.LoadAndPlay(buf); err != nil {
		a.fail(seq, err)
		return err
	}

	return nil
}

// TogglePause pauses or resumes playback
func (a *App) TogglePause() error {
	return a.transport.TogglePause()
}

// Stop silences playback
func (a *App) Stop() {
	a.transport.Stop()
}

// Artifact returns the current WAV bytes and suggested filename, or
// nil if no generation has completed
func (a *App) Artifact() ([]byte, string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.artifact, a.artifactName
}

// SaveArtifact writes the current artifact into dir and returns the
// full path
func (a *App) SaveArtifact(dir string) (string, error) {
	data, name := a.Artifact()
	if data == nil {
		return "", fmt.Errorf("no audio generated yet")
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save artifact: %w", err)
	}

	log.Printf("Saved artifact: %s (%d bytes)", path, len(data))
	return path, nil
}

// Status reports the current user-facing state
func (a *App) Status() Status {
	a.mu.Lock()
	lastError := a.lastError
	generating := a.generating
	a.mu.Unlock()

	if lastError != "" {
		return Status{State: StatusError, Message: lastError}
	}
	if generating {
		return Status{State: StatusGenerating}
	}
	switch a.transport.State() {
	case player.StatePlaying:
		return Status{State: StatusPlaying}
	case player.StatePaused:
		return Status{State: StatusPaused}
	default:
		return Status{State: StatusIdle}
	}
}

// Close releases playback resources
func (a *App) Close() {
	a.transport.Stop()
	if err := a.config.Device.Close(); err != nil {
		log.Printf("Failed to close output device: %v", err)
	}
}

// fail resets the pipeline after an error at any stage: no partial
// buffer, artifact or voice survives
func (a *App) fail(seq uint64, err error) {
	a.mu.Lock()
	if seq != 0 && seq != a.seq {
		// A newer request owns the state now
		a.mu.Unlock()
		log.Printf("Stale generation failed (seq %d): %v", seq, err)
		return
	}
	a.generating = false
	a.buffer = nil
	a.artifact = nil
	a.artifactName = ""
	a.lastError = err.Error()
	a.mu.Unlock()

	a.transport.Stop()

	log.Printf("Generation failed: %v", err)
	a.notify(Status{State: StatusError, Message: err.Error()})
}

// onTransportState maps transport transitions to display status
func (a *App) onTransportState(state player.State) {
	a.mu.Lock()
	if a.generating || a.lastError != "" {
		a.mu.Unlock()
		return
	}
	a.mu.Unlock()

	switch state {
	case player.StatePlaying:
		a.notify(Status{State: StatusPlaying})
	case player.StatePaused:
		a.notify(Status{State: StatusPaused})
	default:
		a.notify(Status{State: StatusIdle})
	}
}

func (a *App) notify(status Status) {
	if a.config.OnStatus != nil {
		a.config.OnStatus(status)
	}
}
