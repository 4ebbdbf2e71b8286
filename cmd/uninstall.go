package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blacktop/talkback/internal/settings"
)

func init() {
	rootCmd.AddCommand(uninstallCmd)
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the talkback hooks from Claude Code's settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		const total = 3

		step(1, total, "Locating settings file")
		path, err := settingsPath()
		if err != nil {
			return fmt.Errorf("failed to locate settings: %w", err)
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Println(okStyle.Render("✓ nothing to do") + " — no settings file")
			return nil
		}
		fmt.Printf("      %s\n", path)

		step(2, total, "Removing hooks")
		doc, err := settings.Load(path)
		if err != nil {
			return err
		}
		removed, err := doc.RemoveHooks()
		if err != nil {
			return err
		}
		if len(removed) == 0 {
			fmt.Println(okStyle.Render("✓ nothing to do") + " — no talkback hooks registered")
			return nil
		}
		fmt.Printf("      removed: %s\n", strings.Join(removed, ", "))

		step(3, total, "Writing settings")
		if err := settings.Save(doc, path); err != nil {
			return err
		}

		fmt.Println(okStyle.Render("✓ talkback uninstalled"))
		return nil
	},
}
