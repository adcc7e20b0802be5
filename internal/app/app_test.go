// ABOUTME: Tests for application orchestration
// ABOUTME: Tests the generate pipeline, validation, failure reset and request ordering
package app

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/Aatif-qmr/Gemini-TTS-voice/internal/player"
	"github.com/Aatif-qmr/Gemini-TTS-voice/internal/tts"
	"github.com/Aatif-qmr/Gemini-TTS-voice/pkg/audio"
)

// fakeVoice and fakeDevice stand in for the oto output
type fakeVoice struct {
	stopped bool
}

func (v *fakeVoice) Stop() { v.stopped = true }

type fakeDevice struct {
	mu        sync.Mutex
	voices    []*fakeVoice
	callbacks []func()
	pcms      [][]byte
}

func (d *fakeDevice) Start(pcm []byte, onDone func()) (player.Voice, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v := &fakeVoice{}
	d.voices = append(d.voices, v)
	d.callbacks = append(d.callbacks, onDone)
	d.pcms = append(d.pcms, pcm)
	return v, nil
}

func (d *fakeDevice) Suspend() error { return nil }
func (d *fakeDevice) Resume() error  { return nil }
func (d *fakeDevice) Close() error   { return nil }

func (d *fakeDevice) voiceCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.voices)
}

func (d *fakeDevice) lastPCM() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.pcms) == 0 {
		return nil
	}
	return d.pcms[len(d.pcms)-1]
}

// stubSynth returns a fixed payload or error
type stubSynth struct {
	result *tts.Result
	err    error
	calls  int
}

func (s *stubSynth) Synthesize(ctx context.Context, req tts.Request) (*tts.Result, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func pcmPayload(samples ...int16) string {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
	}
	return base64.StdEncoding.EncodeToString(data)
}

func newTestApp(t *testing.T, synth tts.Synthesizer) (*App, *fakeDevice, *[]Status) {
	t.Helper()

	device := &fakeDevice{}
	var statuses []Status

	a, err := New(Config{
		Synthesizer: synth,
		Device:      device,
		Format:      audio.Format{SampleRate: 24000, Channels: 1},
		OnStatus: func(s Status) {
			statuses = append(statuses, s)
		},
	})
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}

	return a, device, &statuses
}

func TestGenerate(t *testing.T) {
	synth := &stubSynth{result: &tts.Result{
		Data:     pcmPayload(0, 1000, -1000, 32767),
		MimeType: "audio/L16;codec=pcm;rate=24000",
	}}
	a, device, _ := newTestApp(t, synth)

	if err := a.Generate(context.Background(), "Say cheerfully: Hi", "Kore"); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	artifact, name := a.Artifact()
	if len(artifact) != 44+2*4 {
		t.Errorf("expected %d byte artifact, got %d", 44+2*4, len(artifact))
	}
	if name == "" {
		t.Error("expected a suggested filename")
	}

	if device.voiceCount() != 1 {
		t.Errorf("expected 1 voice started, got %d", device.voiceCount())
	}

	if status := a.Status(); status.State != StatusPlaying {
		t.Errorf("expected playing status, got %s", status.State)
	}
}

func TestGenerateEmptyText(t *testing.T) {
	synth := &stubSynth{result: &tts.Result{Data: pcmPayload(0)}}
	a, _, _ := newTestApp(t, synth)

	for _, text := range []string{"", "   ", "\n\t"} {
		err := a.Generate(context.Background(), text, "Kore")
		if !errors.Is(err, ErrEmptyText) {
			t.Errorf("text %q: expected ErrEmptyText, got %v", text, err)
		}
	}

	if synth.calls != 0 {
		t.Errorf("expected no provider calls for empty text, got %d", synth.calls)
	}
}

func TestGenerateProviderError(t *testing.T) {
	synth := &stubSynth{err: fmt.Errorf("quota exceeded")}
	a, device, _ := newTestApp(t, synth)

	err := a.Generate(context.Background(), "hello", "Kore")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	status := a.Status()
	if status.State != StatusError {
		t.Errorf("expected error status, got %s", status.State)
	}
	if status.Message != "quota exceeded" {
		t.Errorf("expected provider message verbatim, got %q", status.Message)
	}

	if artifact, _ := a.Artifact(); artifact != nil {
		t.Error("expected no artifact after failure")
	}
	if device.voiceCount() != 0 {
		t.Errorf("expected no voices after failure, got %d", device.voiceCount())
	}
}

func TestGenerateMalformedPayload(t *testing.T) {
	synth := &stubSynth{result: &tts.Result{Data: "not base64!!!"}}
	a, _, _ := newTestApp(t, synth)

	if err := a.Generate(context.Background(), "hello", "Kore"); err == nil {
		t.Fatal("expected error for malformed payload, got nil")
	}

	if status := a.Status(); status.State != StatusError {
		t.Errorf("expected error status, got %s", status.State)
	}
}

func TestGenerateTruncatedPayload(t *testing.T) {
	// Three bytes cannot hold whole 16-bit samples
	synth := &stubSynth{result: &tts.Result{
		Data: base64.StdEncoding.EncodeToString([]byte{1, 2, 3}),
	}}
	a, _, _ := newTestApp(t, synth)

	if err := a.Generate(context.Background(), "hello", "Kore"); err == nil {
		t.Fatal("expected error for truncated payload, got nil")
	}
}

func TestGenerateEmptyAudio(t *testing.T) {
	synth := &stubSynth{result: &tts.Result{Data: ""}}
	a, _, _ := newTestApp(t, synth)

	if err := a.Generate(context.Background(), "hello", "Kore"); err == nil {
		t.Fatal("expected error for empty audio, got nil")
	}

	if status := a.Status(); status.State != StatusError {
		t.Errorf("expected error status, got %s", status.State)
	}
}

func TestGenerateRecoversAfterFailure(t *testing.T) {
	synth := &stubSynth{err: fmt.Errorf("transient failure")}
	a, _, _ := newTestApp(t, synth)

	if err := a.Generate(context.Background(), "hello", "Kore"); err == nil {
		t.Fatal("expected error, got nil")
	}

	synth.err = nil
	synth.result = &tts.Result{Data: pcmPayload(1, 2, 3)}

	if err := a.Generate(context.Background(), "hello again", "Kore"); err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}

	if status := a.Status(); status.State != StatusPlaying {
		t.Errorf("expected playing after recovery, got %s", status.State)
	}
}

func TestNaturalCompletionGoesIdle(t *testing.T) {
	synth := &stubSynth{result: &tts.Result{Data: pcmPayload(5, 6)}}
	a, device, _ := newTestApp(t, synth)

	if err := a.Generate(context.Background(), "hello", "Kore"); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	device.callbacks[0]()

	if status := a.Status(); status.State != StatusIdle {
		t.Errorf("expected idle after completion, got %s", status.State)
	}
}

// blockingSynth blocks its first call until released; later calls
// return immediately
type blockingSynth struct {
	mu       sync.Mutex
	calls    int
	started  chan struct{}
	release  chan struct{}
	payloads []string
}

func (s *blockingSynth) Synthesize(ctx context.Context, req tts.Request) (*tts.Result, error) {
	s.mu.Lock()
	call := s.calls
	s.calls++
	s.mu.Unlock()

	if call == 0 {
		close(s.started)
		<-s.release
	}

	return &tts.Result{Data: s.payloads[call]}, nil
}

func TestStaleResponseDiscarded(t *testing.T) {
	synth := &blockingSynth{
		started: make(chan struct{}),
		release: make(chan struct{}),
		payloads: []string{
			pcmPayload(1, 1, 1, 1, 1, 1), // slow first request
			pcmPayload(2, 2),             // fast second request
		},
	}
	a, device, _ := newTestApp(t, synth)

	done := make(chan error, 1)
	go func() {
		done <- a.Generate(context.Background(), "first", "Kore")
	}()

	<-synth.started

	if err := a.Generate(context.Background(), "second", "Kore"); err != nil {
		t.Fatalf("second generate failed: %v", err)
	}

	secondArtifact, _ := a.Artifact()
	if len(secondArtifact) != 44+2*2 {
		t.Fatalf("expected second artifact of %d bytes, got %d", 44+2*2, len(secondArtifact))
	}

	// Let the stale first response arrive
	close(synth.release)
	if err := <-done; err != nil {
		t.Fatalf("first generate returned error: %v", err)
	}

	// The stale result must not overwrite the newer artifact or restart playback
	artifact, _ := a.Artifact()
	if len(artifact) != len(secondArtifact) {
		t.Errorf("stale response overwrote artifact: %d bytes", len(artifact))
	}
	if device.voiceCount() != 1 {
		t.Errorf("expected 1 voice, got %d", device.voiceCount())
	}
}

// seqSynth returns a different payload per call
type seqSynth struct {
	mu       sync.Mutex
	calls    int
	payloads []string
}

func (s *seqSynth) Synthesize(ctx context.Context, req tts.Request) (*tts.Result, error) {
	s.mu.Lock()
	call := s.calls
	s.calls++
	s.mu.Unlock()
	return &tts.Result{Data: s.payloads[call]}, nil
}

// slowDevice blocks its first Start until released
type slowDevice struct {
	fakeDevice
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (d *slowDevice) Start(pcm []byte, onDone func()) (player.Voice, error) {
	first := false
	d.once.Do(func() { first = true })
	if first {
		close(d.started)
		<-d.release
	}
	return d.fakeDevice.Start(pcm, onDone)
}

func TestSlowPlaybackStartDoesNotOutrunNewerRequest(t *testing.T) {
	// Three samples for the first request, two for the second, so the
	// started payloads are distinguishable by length
	synth := &seqSynth{payloads: []string{pcmPayload(1, 1, 1), pcmPayload(2, 2)}}
	device := &slowDevice{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}

	a, err := New(Config{
		Synthesizer: synth,
		Device:      device,
		Format:      audio.Format{SampleRate: 24000, Channels: 1},
	})
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}

	first := make(chan error, 1)
	go func() {
		first <- a.Generate(context.Background(), "first", "Kore")
	}()
	<-device.started

	second := make(chan error, 1)
	go func() {
		second <- a.Generate(context.Background(), "second", "Kore")
	}()

	// While the first request is still starting its voice, the second
	// must wait its turn rather than start one of its own
	time.Sleep(20 * time.Millisecond)
	if n := device.voiceCount(); n != 0 {
		t.Fatalf("expected no voices while first start is in flight, got %d", n)
	}

	close(device.release)
	if err := <-first; err != nil {
		t.Fatalf("first generate failed: %v", err)
	}
	if err := <-second; err != nil {
		t.Fatalf("second generate failed: %v", err)
	}

	// The second request supersedes the first: its voice starts last
	// and its artifact is the one on display
	if n := device.voiceCount(); n != 2 {
		t.Fatalf("expected 2 voices, got %d", n)
	}
	if pcm := device.lastPCM(); len(pcm) != 2*2 {
		t.Errorf("expected the newer request's %d byte payload to play last, got %d bytes", 2*2, len(pcm))
	}
	artifact, _ := a.Artifact()
	if len(artifact) != 44+2*2 {
		t.Errorf("expected the newer request's artifact, got %d bytes", len(artifact))
	}
}

func TestSaveArtifact(t *testing.T) {
	synth := &stubSynth{result: &tts.Result{Data: pcmPayload(10, 20, 30)}}
	a, _, _ := newTestApp(t, synth)

	if err := a.Generate(context.Background(), "hello", "Kore"); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	dir := t.TempDir()
	path, err := a.SaveArtifact(dir)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
	if info.Size() != 44+2*3 {
		t.Errorf("expected %d byte file, got %d", 44+2*3, info.Size())
	}
}

func TestSaveArtifactWithoutGeneration(t *testing.T) {
	synth := &stubSynth{}
	a, _, _ := newTestApp(t, synth)

	if _, err := a.SaveArtifact(t.TempDir()); err == nil {
		t.Error("expected error saving before any generation")
	}
}

func TestStatusNotifications(t *testing.T) {
	synth := &stubSynth{result: &tts.Result{Data: pcmPayload(1, 2)}}
	a, _, statuses := newTestApp(t, synth)

	if err := a.Generate(context.Background(), "hello", "Kore"); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	// Give the synchronous pipeline a moment; all notifications are
	// emitted by the time Generate returns
	time.Sleep(10 * time.Millisecond)

	if len(*statuses) < 2 {
		t.Fatalf("expected at least 2 status updates, got %d", len(*statuses))
	}
	if (*statuses)[0].State != StatusGenerating {
		t.Errorf("expected first status generating, got %s", (*statuses)[0].State)
	}
	if last := (*statuses)[len(*statuses)-1]; last.State != StatusPlaying {
		t.Errorf("expected last status playing, got %s", last.State)
	}
}
