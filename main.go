// ABOUTME: Entry point for the Gemini TTS voice player
// ABOUTME: Parses CLI flags and wires the app, transport and TUI together
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"

	"github.com/Aatif-qmr/Gemini-TTS-voice/internal/app"
	"github.com/Aatif-qmr/Gemini-TTS-voice/internal/config"
	"github.com/Aatif-qmr/Gemini-TTS-voice/internal/tts"
	"github.com/Aatif-qmr/Gemini-TTS-voice/internal/ui"
	"github.com/Aatif-qmr/Gemini-TTS-voice/internal/version"
	"github.com/Aatif-qmr/Gemini-TTS-voice/pkg/audio"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	voice      = flag.String("voice", "", "Prebuilt voice name (default: Kore)")
	model      = flag.String("model", "", "Speech model identifier")
	sampleRate = flag.Int("sample-rate", 0, "PCM sample rate in Hz (default: 24000)")
	logFile    = flag.String("log-file", "tts-voice.log", "Log file path")
	useMock    = flag.Bool("mock", false, "Use the offline mock synthesizer")
	text       = flag.String("text", "", "One-shot mode: speak this text and exit")
	outDir     = flag.String("out", ".", "Directory for saved WAV files")
)

func main() {
	flag.Parse()

	cfg := config.Default()
	cfg.LogFile = *logFile
	cfg.UseMock = *useMock
	if *voice != "" {
		cfg.Voice = *voice
	}
	if *model != "" {
		cfg.Model = *model
	}
	if *sampleRate != 0 {
		cfg.SampleRate = *sampleRate
	}
	cfg.LoadEnv()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	oneShot := *text != ""

	// TUI mode logs only to file; one-shot mode logs to both
	f, err := os.OpenFile(cfg.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if oneShot {
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	} else {
		log.SetOutput(f)
	}

	log.Printf("Starting %s %s", version.Product, version.Version)

	var synth tts.Synthesizer
	if cfg.UseMock {
		synth = tts.NewMock(cfg.SampleRate)
		log.Printf("Using mock synthesizer")
	} else {
		synth = tts.NewGemini(cfg.APIKey, cfg.Model)
	}

	format := audio.Format{
		SampleRate: cfg.SampleRate,
		Channels:   cfg.Channels,
	}

	if oneShot {
		runOneShot(synth, format, cfg, *text, *outDir)
		return
	}

	runTUI(synth, format, cfg, *outDir)
}

// runOneShot generates once, saves the WAV and plays it to completion
func runOneShot(synth tts.Synthesizer, format audio.Format, cfg config.Config, text, outDir string) {
	done := make(chan struct{}, 1)

	a, err := app.New(app.Config{
		Synthesizer: synth,
		Format:      format,
		OnStatus: func(s app.Status) {
			if s.State == app.StatusIdle {
				select {
				case done <- struct{}{}:
				default:
				}
			}
		},
	})
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}
	defer a.Close()

	if err := a.Generate(context.Background(), text, cfg.Voice); err != nil {
		log.Fatalf("Generation failed: %v", err)
	}

	path, err := a.SaveArtifact(outDir)
	if err != nil {
		log.Fatalf("Save failed: %v", err)
	}
	log.Printf("Wrote %s", path)

	// Wait for playback to finish
	<-done
}

// runTUI drives the interactive player
func runTUI(synth tts.Synthesizer, format audio.Format, cfg config.Config, outDir string) {
	ctrl := ui.NewControl()
	prog := ui.Run(ctrl, tts.Voices())

	a, err := app.New(app.Config{
		Synthesizer: synth,
		Format:      format,
		OnStatus: func(s app.Status) {
			prog.Send(ui.StatusMsg{State: s.State, Message: s.Message})
		},
	})
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	go handleControls(a, ctrl, prog, outDir)

	if _, err := prog.Run(); err != nil {
		log.Printf("TUI error: %v", err)
	}

	a.Close()
	log.Printf("Shutdown complete")
}

// handleControls processes user intents from the TUI
func handleControls(a *app.App, ctrl *ui.Control, prog *tea.Program, outDir string) {
	for {
		select {
		case req := <-ctrl.Generate:
			go func(req ui.Request) {
				if err := a.Generate(context.Background(), req.Text, req.Voice); err != nil {
					return
				}
				if data, name := a.Artifact(); data != nil {
					prog.Send(ui.ArtifactMsg{Name: name, Size: len(data)})
				}
			}(req)

		case <-ctrl.Toggle:
			if err := a.TogglePause(); err != nil {
				log.Printf("Toggle pause: %v", err)
			}

		case <-ctrl.Stop:
			a.Stop()

		case <-ctrl.Save:
			path, err := a.SaveArtifact(outDir)
			if err != nil {
				prog.Send(ui.SavedMsg{Err: err.Error()})
				continue
			}
			prog.Send(ui.SavedMsg{Path: path})
		}
	}
}
