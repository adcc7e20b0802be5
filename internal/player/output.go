// ABOUTME: Audio output using oto library
// ABOUTME: Owns the process-wide output device and per-playback voices
package player

import (
	"bytes"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Aatif-qmr/Gemini-TTS-voice/pkg/audio"
	"github.com/ebitengine/oto/v3"
)

// Voice is one active rendering through the output device
type Voice interface {
	// Stop silences and detaches the voice
	Stop()
}

// Device is the shared audio output. At most one voice is connected
// at a time; Suspend and Resume act on the whole device and preserve
// the playback position.
type Device interface {
	Start(pcm []byte, onDone func()) (Voice, error)
	Suspend() error
	Resume() error
	Close() error
}

// Output implements Device on top of oto. The oto context is created
// lazily on the first Start and reused for the process lifetime (oto
// allows only one context per process).
type Output struct {
	format audio.Format
	otoCtx *oto.Context
}

// NewOutput creates an audio output for the given format
func NewOutput(format audio.Format) *Output {
	return &Output{
		format: format,
	}
}

func (o *Output) ensureContext() error {
	if o.otoCtx != nil {
		return nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   o.format.SampleRate,
		ChannelCount: o.format.Channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	o.otoCtx = ctx

	log.Printf("Audio output initialized: %dHz, %d channels",
		o.format.SampleRate, o.format.Channels)

	return nil
}

// Start begins playback of a PCM byte stream from the first frame.
// onDone is invoked once when the stream drains naturally; it is not
// invoked after Stop.
func (o *Output) Start(pcm []byte, onDone func()) (Voice, error) {
	if err := o.ensureContext(); err != nil {
		return nil, err
	}

	player := o.otoCtx.NewPlayer(bytes.NewReader(pcm))
	player.Play()

	v := &otoVoice{
		player: player,
		done:   make(chan struct{}),
	}

	go v.watch(onDone)

	return v, nil
}

// Suspend pauses the whole device, preserving position
func (o *Output) Suspend() error {
	if o.otoCtx == nil {
		return fmt.Errorf("output not initialized")
	}
	return o.otoCtx.Suspend()
}

// Resume unpauses the device
func (o *Output) Resume() error {
	if o.otoCtx == nil {
		return fmt.Errorf("output not initialized")
	}
	return o.otoCtx.Resume()
}

// Close suspends the device. The oto context itself cannot be
// destroyed, so Close leaves it reusable for a later Start.
func (o *Output) Close() error {
	if o.otoCtx != nil {
		return o.otoCtx.Suspend()
	}
	return nil
}

// otoVoice wraps one oto player
type otoVoice struct {
	player   *oto.Player
	done     chan struct{}
	stopOnce sync.Once
}

// watch polls for natural completion
func (v *otoVoice) watch(onDone func()) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-v.done:
			return
		case <-ticker.C:
			if !v.player.IsPlaying() {
				v.stopOnce.Do(func() {
					close(v.done)
					_ = v.player.Close()
				})
				if onDone != nil {
					onDone()
				}
				return
			}
		}
	}
}

// Stop silences the voice and stops the completion watcher
func (v *otoVoice) Stop() {
	v.stopOnce.Do(func() {
		close(v.done)
		_ = v.player.Close()
	})
}
