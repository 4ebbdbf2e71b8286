package speech

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/google/shlex"

	"github.com/blacktop/talkback/internal/audio"
)

// EdgeEngine synthesizes through the edge-tts CLI (Microsoft's neural
// voices) and plays the resulting MP3. This is the primary engine: best
// quality, but needs the edge-tts package installed and a network path to
// the synthesis service.
type EdgeEngine struct {
	// Command is the edge-tts invocation, shell-style ("edge-tts" or
	// e.g. "python3 -m edge_tts").
	Command string
	TempDir string
	Player  audio.Player
}

func (e *EdgeEngine) Name() string { return "edge" }

func (e *EdgeEngine) Available() bool {
	argv, err := e.argv()
	if err != nil || len(argv) == 0 {
		return false
	}
	_, err = exec.LookPath(argv[0])
	return err == nil
}

func (e *EdgeEngine) Speak(ctx context.Context, text string, opts Options) error {
	argv, err := e.argv()
	if err != nil {
		return fmt.Errorf("invalid edge-tts command: %w", err)
	}

	outPath := audio.TempPath(e.TempDir, text, "mp3")
	defer os.Remove(outPath)

	args := append(argv[1:],
		"--voice", opts.Voice,
		"--rate", opts.Rate,
		"--volume", opts.Volume,
		"--text", text,
		"--write-media", outPath,
	)
	cmd := exec.CommandContext(ctx, argv[0], args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("edge-tts failed: %v - %s", err, string(output))
	}

	return e.Player.Play(ctx, outPath)
}

func (e *EdgeEngine) argv() ([]string, error) {
	command := e.Command
	if command == "" {
		command = "edge-tts"
	}
	return shlex.Split(command)
}
