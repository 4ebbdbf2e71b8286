package speech

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/blacktop/talkback/internal/powershell"
)

// SAPIEngine speaks through the Windows System.Speech synthesizer. Fully
// offline, works natively and from WSL via powershell.exe. This is the
// fallback when Edge TTS can't run, and the preferred path for short
// announcements (much faster startup than neural synthesis).
type SAPIEngine struct{}

func (e *SAPIEngine) Name() string { return "sapi" }

func (e *SAPIEngine) Available() bool {
	return powershell.Available()
}

func (e *SAPIEngine) Speak(ctx context.Context, text string, opts Options) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	// SAPI chokes on very long inputs
	text = hardTruncate(text, 1000)

	preamble := "$text = " + powershell.Quote(text) + "\n" +
		"$rate = " + strconv.Itoa(opts.SAPIRate) + "\n"
	if _, err := powershell.Run(ctx, preamble, powershell.SAPIScript); err != nil {
		return fmt.Errorf("sapi: %w", err)
	}
	return nil
}

// EspeakEngine is the last resort on Linux machines with no Windows
// interop: low quality, always offline.
type EspeakEngine struct{}

func (e *EspeakEngine) Name() string { return "espeak" }

func (e *EspeakEngine) Available() bool {
	_, err := exec.LookPath("espeak")
	return err == nil
}

func (e *EspeakEngine) Speak(ctx context.Context, text string, opts Options) error {
	rate := opts.EspeakRate
	if rate <= 0 {
		rate = 175
	}
	cmd := exec.CommandContext(ctx, "espeak", "-s", strconv.Itoa(rate), text)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("espeak failed: %v - %s", err, string(output))
	}
	return nil
}
