package speech

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/openai/openai-go"

	"github.com/blacktop/talkback/internal/audio"
)

// OpenAIEngine synthesizes through the OpenAI speech API. Optional: it
// only joins the chain when OPENAI_API_KEY is set.
type OpenAIEngine struct {
	Voice   string
	TempDir string
	Player  audio.Player
}

func (e *OpenAIEngine) Name() string { return "openai" }

func (e *OpenAIEngine) Available() bool {
	return os.Getenv("OPENAI_API_KEY") != ""
}

func (e *OpenAIEngine) Speak(ctx context.Context, text string, opts Options) error {
	client := openai.NewClient() // reads OPENAI_API_KEY

	voice := e.Voice
	if voice == "" {
		voice = "alloy"
	}

	res, err := client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModelGPT4oMiniTTS,
		Voice:          openai.AudioSpeechNewParamsVoice(voice),
		Input:          text,
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return fmt.Errorf("openai speech request failed: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("failed to read openai audio: %w", err)
	}

	outPath := audio.TempPath(e.TempDir, text, "mp3")
	defer os.Remove(outPath)
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to save openai audio: %w", err)
	}

	return e.Player.Play(ctx, outPath)
}
