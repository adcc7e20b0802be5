// ABOUTME: Playback transport state machine
// ABOUTME: Owns the single live voice and the idle/playing/paused transitions
package player

import (
	"encoding/binary"
	"fmt"
	"log"
	"sync"

	"github.com/Aatif-qmr/Gemini-TTS-voice/pkg/audio"
)

// State describes the transport
type State string

const (
	StateIdle    State = "idle"
	StatePlaying State = "playing"
	StatePaused  State = "paused"
)

// voice pairs a device voice with its liveness flag. A completion
// callback belonging to a superseded voice finds live == false and
// must not touch transport state.
type voice struct {
	handle Voice
	live   bool
}

// Transport drives playback of a sample buffer through the output
// device. All operations are serialized by an internal mutex and
// complete their device side effects before returning.
type Transport struct {
	mu            sync.Mutex
	device        Device
	voice         *voice
	buffer        *audio.Buffer
	state         State
	suspended     bool
	onStateChange func(State)
}

// NewTransport creates a transport over the given device.
// onStateChange, if set, is called on every transition and must not
// call back into the transport.
func NewTransport(device Device, onStateChange func(State)) *Transport {
	return &Transport{
		device:        device,
		state:         StateIdle,
		onStateChange: onStateChange,
	}
}

// LoadAndPlay supersedes any current voice and starts the buffer from
// frame 0
func (t *Transport) LoadAndPlay(buf *audio.Buffer) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.detachLocked()

	if t.suspended {
		if err := t.device.Resume(); err != nil {
			return fmt.Errorf("failed to resume device: %w", err)
		}
		t.suspended = false
	}

	v := &voice{live: true}
	handle, err := t.device.Start(Interleave(buf), func() {
		t.voiceDone(v)
	})
	if err != nil {
		t.buffer = nil
		t.setStateLocked(StateIdle)
		return fmt.Errorf("failed to start voice: %w", err)
	}

	v.handle = handle
	t.voice = v
	t.buffer = buf
	t.setStateLocked(StatePlaying)

	return nil
}

// TogglePause suspends a playing device or resumes a paused one. When
// the voice already finished while nominally paused (a deferred ended
// event can land after suspension), playback restarts from frame 0 on
// the same buffer.
func (t *Transport) TogglePause() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.state {
	case StatePlaying:
		if err := t.device.Suspend(); err != nil {
			return fmt.Errorf("failed to suspend device: %w", err)
		}
		t.suspended = true
		t.setStateLocked(StatePaused)
		return nil

	case StatePaused:
		if t.suspended {
			if err := t.device.Resume(); err != nil {
				return fmt.Errorf("failed to resume device: %w", err)
			}
			t.suspended = false
		}

		if t.voice != nil {
			t.setStateLocked(StatePlaying)
			return nil
		}

		// Voice finished during the pause; restart from the top
		log.Printf("Paused voice already finished, restarting from frame 0")
		buf := t.buffer
		if buf == nil {
			t.setStateLocked(StateIdle)
			return fmt.Errorf("no buffer to restart")
		}

		v := &voice{live: true}
		handle, err := t.device.Start(Interleave(buf), func() {
			t.voiceDone(v)
		})
		if err != nil {
			t.setStateLocked(StateIdle)
			return fmt.Errorf("failed to restart voice: %w", err)
		}
		v.handle = handle
		t.voice = v
		t.setStateLocked(StatePlaying)
		return nil

	default:
		return fmt.Errorf("nothing playing")
	}
}

// Stop unconditionally silences the current voice and returns to idle
func (t *Transport) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.detachLocked()
	t.buffer = nil

	if t.suspended {
		if err := t.device.Resume(); err != nil {
			log.Printf("Failed to resume device on stop: %v", err)
		}
		t.suspended = false
	}

	t.setStateLocked(StateIdle)
}

// State returns the current transport state
func (t *Transport) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// voiceDone handles natural completion of a voice. A callback from a
// voice that is no longer current is a no-op.
func (t *Transport) voiceDone(v *voice) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.voice != v || !v.live {
		return
	}

	t.voice = nil

	// A deferred ended event while paused leaves the transport paused;
	// TogglePause then restarts from frame 0
	if t.state == StatePaused {
		return
	}

	t.buffer = nil
	t.setStateLocked(StateIdle)
}

// detachLocked marks the current voice dead and silences it
func (t *Transport) detachLocked() {
	if t.voice == nil {
		return
	}

	t.voice.live = false
	if t.voice.handle != nil {
		t.voice.handle.Stop()
	}
	t.voice = nil
}

func (t *Transport) setStateLocked(state State) {
	if t.state == state {
		return
	}
	t.state = state
	if t.onStateChange != nil {
		t.onStateChange(state)
	}
}

// Interleave renders a buffer as interleaved 16-bit little-endian PCM
// bytes for the output device
func Interleave(buf *audio.Buffer) []byte {
	frames := buf.FrameCount()
	channels := len(buf.Data)

	out := make([]byte, frames*channels*2)
	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			sample := audio.SampleFromFloat(buf.Data[c][i])
			binary.LittleEndian.PutUint16(out[(i*channels+c)*2:], uint16(sample))
		}
	}

	return out
}
