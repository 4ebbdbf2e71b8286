package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/blacktop/talkback/internal/announce"
	"github.com/blacktop/talkback/internal/hook"
	"github.com/blacktop/talkback/internal/platform"
	"github.com/blacktop/talkback/internal/speech"
)

// resultSummaryMax caps spoken tool-result summaries.
const resultSummaryMax = 200

func init() {
	rootCmd.AddCommand(onToolCompleteCmd)
}

// onToolCompleteCmd handles the PostToolUse trigger event: it narrates
// tool completions and optionally speaks a result summary. Like on-stop,
// it always exits 0.
var onToolCompleteCmd = &cobra.Command{
	Use:    "on-tool-complete",
	Short:  "PostToolUse hook handler (invoked by Claude Code)",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		defer hookLogging(cfg).Close()

		if !cfg.Enabled {
			return nil
		}
		if !cfg.SpeakThinking && !cfg.SpeakToolResults {
			return nil
		}

		in, err := hook.Read(os.Stdin)
		if err != nil {
			log.Error("No usable hook input", "error", err)
			return nil
		}
		if in.ToolName == "" {
			return nil
		}
		if !cfg.AnnounceTool(in.ToolName) {
			log.Debug("Tool filtered out", "tool", in.ToolName)
			return nil
		}

		dispatcher := speech.New(cfg, platform.Detect())

		if cfg.SpeakThinking {
			line := announce.ForTool(in.ToolName, in.ToolInput, in.ToolResponse)
			log.Debug("Announcing", "tool", in.ToolName, "text", line)
			if err := dispatcher.Announce(cmd.Context(), line); err != nil {
				log.Error("Announcement failed", "error", err)
			}
		}

		if cfg.SpeakToolResults {
			if summary := announce.SummarizeResult(in.ToolName, in.ToolResponse, resultSummaryMax); summary != "" {
				if err := dispatcher.Speak(cmd.Context(), summary); err != nil {
					log.Error("Result speech failed", "error", err)
				}
			}
		}
		return nil
	},
}
