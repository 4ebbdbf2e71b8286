// Package audio plays synthesized speech files. Two players exist: a local
// one built on beep for native Linux/macOS, and a Windows-interop one that
// hands the file to the Windows media stack via PowerShell (used natively
// on Windows and from WSL, where there is no local audio device).
package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"

	"github.com/blacktop/talkback/internal/platform"
	"github.com/blacktop/talkback/internal/powershell"
)

// Player plays an audio file, blocking until playback completes or ctx is
// cancelled.
type Player interface {
	Play(ctx context.Context, path string) error
}

// NewPlayer picks the player for the detected environment.
func NewPlayer(info platform.Info) Player {
	if info.WindowsInterop() {
		return &windowsPlayer{info: info}
	}
	return &localPlayer{}
}

const speakerSampleRate = beep.SampleRate(44100)

var speakerOnce sync.Once

// localPlayer decodes mp3/wav and plays through the default audio device.
type localPlayer struct{}

func (p *localPlayer) Play(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open audio file: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return fmt.Errorf("unsupported audio format: %s", filepath.Ext(path))
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to decode audio: %w", err)
	}
	defer streamer.Close()

	var initErr error
	speakerOnce.Do(func() {
		initErr = speaker.Init(speakerSampleRate, speakerSampleRate.N(time.Second/10))
	})
	if initErr != nil {
		return fmt.Errorf("failed to init speaker: %w", initErr)
	}

	var stream beep.Streamer = streamer
	if format.SampleRate != speakerSampleRate {
		stream = beep.Resample(4, format.SampleRate, speakerSampleRate, streamer)
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(stream, beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	}
}

// windowsPlayer shells out to the Windows MediaPlayer. WSL paths are
// translated to their Windows form first.
type windowsPlayer struct {
	info platform.Info
}

func (p *windowsPlayer) Play(ctx context.Context, path string) error {
	winPath := p.info.ToWindowsPath(path)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	preamble := "$path = " + powershell.Quote(winPath) + "\n"
	if _, err := powershell.Run(ctx, preamble, powershell.MediaPlayerScript); err != nil {
		return fmt.Errorf("failed to play audio via Windows media player: %w", err)
	}
	return nil
}
