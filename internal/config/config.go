// Package config loads the talkback configuration document. Missing files
// and missing fields fall back to defaults; nothing is validated beyond
// JSON type correctness.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/blacktop/talkback/internal/platform"
)

// Config is read-only at runtime; only the user edits it.
type Config struct {
	Enabled          bool     `json:"enabled"`
	Voice            string   `json:"voice"`
	Rate             string   `json:"rate"`
	Volume           string   `json:"volume"`
	MaxSpeakLength   int      `json:"max_speak_length"`
	FallbackToSAPI   bool     `json:"fallback_to_sapi"`
	LogFile          string   `json:"log_file"`
	SpeakResponses   bool     `json:"speak_responses"`
	SpeakThinking    bool     `json:"speak_thinking"`
	SpeakToolResults bool     `json:"speak_tool_results"`
	ToolsToAnnounce  []string `json:"tools_to_announce"`
	// Engines overrides the default fallback chain order when non-empty.
	Engines []string `json:"engines"`
	// SequentialSpeech serializes overlapping hook invocations with a
	// cross-process lock so they don't talk over each other.
	SequentialSpeech bool   `json:"sequential_speech"`
	OpenAIVoice      string `json:"openai_voice"`
	GoogleVoice      string `json:"google_voice"`
	// EdgeCommand is the edge-tts invocation, split shell-style.
	EdgeCommand string `json:"edge_command"`
}

// Default returns the documented defaults.
func Default() *Config {
	return &Config{
		Enabled:          true,
		Voice:            "en-US-AriaNeural",
		Rate:             "+10%",
		Volume:           "+0%",
		MaxSpeakLength:   500,
		FallbackToSAPI:   true,
		LogFile:          "~/.claude/talkback.log",
		SpeakResponses:   true,
		SpeakThinking:    false,
		SpeakToolResults: false,
		ToolsToAnnounce:  []string{"Bash", "Write", "Edit"},
		SequentialSpeech: false,
		OpenAIVoice:      "alloy",
		GoogleVoice:      "Kore",
		EdgeCommand:      "edge-tts",
	}
}

// Path returns the per-user config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".claude", "talkback.json"), nil
}

// Load reads the config at path, layered over defaults. A missing file is
// not an error. On a parse error the defaults are returned alongside the
// error so callers can degrade instead of going silent.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LogPath expands the configured log file location.
func (c *Config) LogPath() string {
	return platform.ExpandHome(c.LogFile)
}

// AnnounceTool reports whether tool completions for name should be spoken.
// An empty list announces everything.
func (c *Config) AnnounceTool(name string) bool {
	if len(c.ToolsToAnnounce) == 0 {
		return true
	}
	return slices.Contains(c.ToolsToAnnounce, name)
}
