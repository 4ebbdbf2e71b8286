package speech

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/blacktop/talkback/internal/audio"
)

const googleTTSModel = "gemini-2.5-flash-preview-tts"

// GoogleEngine synthesizes through the Gemini TTS API. Optional: it only
// joins the chain when GOOGLE_AI_API_KEY or GEMINI_API_KEY is set. The
// API returns raw 24kHz mono PCM, which gets a WAV container before
// playback.
type GoogleEngine struct {
	Voice   string
	TempDir string
	Player  audio.Player
}

func (e *GoogleEngine) Name() string { return "google" }

func (e *GoogleEngine) Available() bool {
	return googleAPIKey() != ""
}

func (e *GoogleEngine) Speak(ctx context.Context, text string, opts Options) error {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  googleAPIKey(),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return fmt.Errorf("failed to create genai client: %w", err)
	}

	voice := e.Voice
	if voice == "" {
		voice = "Kore"
	}

	resp, err := client.Models.GenerateContent(ctx, googleTTSModel, genai.Text(text), &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("google tts request failed: %w", err)
	}

	pcm, err := extractPCM(resp)
	if err != nil {
		return err
	}

	// Gemini TTS output is 24kHz 16-bit mono PCM
	outPath := audio.TempPath(e.TempDir, text, "wav")
	defer os.Remove(outPath)
	if err := audio.SaveWAV(outPath, pcm, 24000); err != nil {
		return err
	}

	return e.Player.Play(ctx, outPath)
}

func extractPCM(resp *genai.GenerateContentResponse) ([]byte, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("google tts returned no candidates")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data, nil
		}
	}
	return nil, fmt.Errorf("google tts returned no audio data")
}

func googleAPIKey() string {
	if key := os.Getenv("GOOGLE_AI_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("GEMINI_API_KEY")
}
