package speech

import (
	"context"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/google/shlex"
)

// VoiceAvailability holds cached voice availability data
type VoiceAvailability struct {
	voices map[string]bool
	once   sync.Once
	err    error
}

var voiceCache VoiceAvailability

// InstalledEdgeVoices runs `edge-tts --list-voices` and parses the output.
// Results are cached for the lifetime of the process.
func InstalledEdgeVoices(edgeCommand string) (map[string]bool, error) {
	voiceCache.once.Do(func() {
		voiceCache.voices = make(map[string]bool)

		argv, err := shlex.Split(edgeCommand)
		if err != nil || len(argv) == 0 {
			return
		}
		if _, err := exec.LookPath(argv[0]); err != nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		out, err := exec.CommandContext(ctx, argv[0], append(argv[1:], "--list-voices")...).Output()
		if err != nil {
			voiceCache.err = err
			return
		}

		// Output is a table; the first column is the voice name.
		// Example: "en-US-AriaNeural    Female    General    ..."
		for line := range strings.SplitSeq(string(out), "\n") {
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			if IsEdgeVoiceName(fields[0]) {
				voiceCache.voices[fields[0]] = true
			}
		}
	})

	return voiceCache.voices, voiceCache.err
}

// IsEdgeVoiceName checks if a string looks like an Edge TTS voice
// identifier (e.g. en-US-AriaNeural, zh-CN-liaoning-XiaobeiNeural).
func IsEdgeVoiceName(s string) bool {
	parts := strings.Split(s, "-")
	if len(parts) < 3 {
		return false
	}
	lang, region := parts[0], parts[1]
	if len(lang) < 2 || len(lang) > 3 {
		return false
	}
	for _, r := range lang {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	if len(region) != 2 {
		return false
	}
	for _, r := range region {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return strings.HasSuffix(s, "Neural")
}

// VoiceNotInstalledError returns a user-friendly message for bad voices
func VoiceNotInstalledError(voiceName string) string {
	return "Voice \"" + voiceName + "\" does not look like an Edge TTS voice. " +
		"Run `edge-tts --list-voices` to see what is available."
}

// resetVoiceCache is used for testing to reset the cached voice data
func resetVoiceCache() {
	voiceCache = VoiceAvailability{}
}
