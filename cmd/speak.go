package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/ctrlc"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/blacktop/talkback/internal/platform"
	"github.com/blacktop/talkback/internal/speech"
)

func init() {
	rootCmd.AddCommand(speakCmd)
}

var speakCmd = &cobra.Command{
	Use:   "speak [text...]",
	Short: "Speak text through the engine fallback chain",
	Long: `Speak text through the configured TTS engines. With no arguments a
test phrase is spoken. Useful to verify the install end to end.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		if text == "" {
			text = "Hello! The talkback TTS engine is working correctly."
		}

		info := platform.Detect()
		cfg := loadConfig()
		if !cfg.Enabled {
			log.Warn("talkback is disabled in config; speaking anyway for the manual test")
			cfg.Enabled = true
		}

		dispatcher := speech.New(cfg, info)

		fmt.Printf("Environment: %s\n", info.Kind)
		fmt.Printf("Speaking: %s\n", speech.Truncate(text, 50))

		err := ctrlc.Default.Run(cmd.Context(), func() error {
			return dispatcher.Speak(cmd.Context(), text)
		})
		if err != nil {
			var interrupted ctrlc.ErrorCtrlC
			if errors.As(err, &interrupted) {
				fmt.Println(warnStyle.Render("interrupted"))
				return nil
			}
			return err
		}
		fmt.Println(okStyle.Render("✓ done"))
		return nil
	},
}
