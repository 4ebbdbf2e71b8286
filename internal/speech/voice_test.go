package speech

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestIsEdgeVoiceName(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"en-US-AriaNeural", true},
		{"en-GB-SoniaNeural", true},
		{"de-DE-KatjaNeural", true},
		{"zh-CN-liaoning-XiaobeiNeural", true},
		{"fil-PH-AngeloNeural", true},
		{"", false},
		{"Aria", false},              // no locale
		{"en-US", false},             // no voice part
		{"EN-US-AriaNeural", false},  // language must be lowercase
		{"en-us-AriaNeural", false},  // region must be uppercase
		{"en-USA-AriaNeural", false}, // region too long
		{"en-US-Aria", false},        // missing Neural suffix
		{"12-US-AriaNeural", false},  // language must be letters
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsEdgeVoiceName(tt.input); got != tt.expected {
				t.Errorf("IsEdgeVoiceName(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInstalledEdgeVoicesMissingBinary(t *testing.T) {
	resetVoiceCache()
	t.Cleanup(resetVoiceCache)

	voices, err := InstalledEdgeVoices("definitely-not-a-real-binary-12345")
	if err != nil {
		t.Fatalf("missing binary should not be an error, got %v", err)
	}
	if len(voices) != 0 {
		t.Errorf("expected no voices, got %d", len(voices))
	}
}

func TestInstalledEdgeVoicesParsesListOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub script requires a POSIX shell")
	}
	resetVoiceCache()
	t.Cleanup(resetVoiceCache)

	// Stub standing in for edge-tts: emits a --list-voices style table
	// with a header row that must be filtered out.
	stub := filepath.Join(t.TempDir(), "edge-tts-stub")
	script := "#!/bin/sh\n" +
		"echo 'Name                Gender    ContentCategories    VoicePersonalities'\n" +
		"echo '----                ------    -----------------    ------------------'\n" +
		"echo 'en-US-AriaNeural    Female    News, Novel          Positive, Confident'\n" +
		"echo 'en-GB-SoniaNeural   Female    General              Friendly'\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	voices, err := InstalledEdgeVoices(stub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !voices["en-US-AriaNeural"] || !voices["en-GB-SoniaNeural"] {
		t.Errorf("expected both voices present, got %v", voices)
	}
	if voices["Name"] || voices["----"] {
		t.Errorf("header rows should be filtered, got %v", voices)
	}
	if len(voices) != 2 {
		t.Errorf("expected 2 voices, got %d", len(voices))
	}
}

func TestVoiceNotInstalledError(t *testing.T) {
	msg := VoiceNotInstalledError("BogusVoice")
	if msg == "" {
		t.Error("expected non-empty message")
	}
	if !contains(msg, "BogusVoice") {
		t.Errorf("message should contain the voice name, got: %s", msg)
	}
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(s) > 0 && containsHelper(s, substr))
}

func containsHelper(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
