package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/blacktop/talkback/internal/hook"
	"github.com/blacktop/talkback/internal/platform"
	"github.com/blacktop/talkback/internal/speech"
	"github.com/blacktop/talkback/internal/transcript"
)

func init() {
	rootCmd.AddCommand(onStopCmd)
}

// onStopCmd handles the Stop trigger event: it speaks Claude's final
// response. Claude Code invokes it with the event payload on stdin.
// Hook handlers always exit 0 — a broken speech path must never block
// the host tool, so every failure here is logged and swallowed.
var onStopCmd = &cobra.Command{
	Use:    "on-stop",
	Short:  "Stop hook handler (invoked by Claude Code)",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		defer hookLogging(cfg).Close()

		if !cfg.Enabled {
			log.Debug("Hook disabled in config")
			return nil
		}
		if !cfg.SpeakResponses {
			log.Debug("speak_responses disabled")
			return nil
		}

		in, err := hook.Read(os.Stdin)
		if err != nil {
			log.Error("No usable hook input", "error", err)
			return nil
		}
		if in.StopHookActive {
			log.Debug("Stop hook already active, skipping to avoid recursion")
			return nil
		}
		if in.TranscriptPath == "" {
			log.Debug("Hook input has no transcript path")
			return nil
		}

		text, err := transcript.LastAssistantMessage(in.TranscriptPath)
		if err != nil {
			log.Error("Failed to parse transcript", "path", in.TranscriptPath, "error", err)
			return nil
		}
		if text == "" {
			log.Debug("No assistant response found in transcript")
			return nil
		}
		log.Debug("Speaking final response", "chars", len(text))

		dispatcher := speech.New(cfg, platform.Detect())
		if err := dispatcher.Speak(cmd.Context(), text); err != nil {
			log.Error("Speech failed", "error", err)
		}
		return nil
	},
}
