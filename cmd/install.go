/*
Copyright © 2025 blacktop

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blacktop/talkback/internal/config"
	"github.com/blacktop/talkback/internal/platform"
	"github.com/blacktop/talkback/internal/settings"
)

func init() {
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Register the talkback hooks in Claude Code's settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		const total = 6

		step(1, total, "Detecting environment")
		info := platform.Detect()
		fmt.Printf("      %s\n", okStyle.Render(info.Kind.String()))

		step(2, total, "Locating settings file")
		path, err := settingsPath()
		if err != nil {
			return fmt.Errorf("failed to locate settings: %w", err)
		}
		fmt.Printf("      %s\n", path)
		if info.Kind == platform.KindWSL {
			fmt.Printf("      (%s on the Windows side)\n", info.ToWindowsPath(path))
		}

		step(3, total, "Loading settings")
		doc, err := settings.Load(path)
		if err != nil {
			return err
		}

		step(4, total, "Backing up settings")
		backup, err := settings.Backup(path)
		if err != nil {
			return err
		}
		if backup == "" {
			fmt.Printf("      %s\n", warnStyle.Render("no existing settings, starting fresh"))
		} else {
			fmt.Printf("      %s\n", backup)
		}

		step(5, total, "Registering hooks")
		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("failed to resolve own path: %w", err)
		}
		var builder settings.CommandBuilder = settings.PosixCommandBuilder{}
		if info.Kind == platform.KindWindows {
			builder = settings.WindowsCommandBuilder{}
		}
		cmds := settings.HookCommands{
			Stop:        builder.HookCommand(exe, "on-stop"),
			PostToolUse: builder.HookCommand(exe, "on-tool-complete"),
		}
		if err := doc.InstallHooks(cmds); err != nil {
			return err
		}
		if err := settings.Save(doc, path); err != nil {
			return err
		}
		fmt.Printf("      %s (timeout %ds)\n", settings.EventStop, settings.StopTimeout)
		fmt.Printf("      %s (timeout %ds)\n", settings.EventPostToolUse, settings.PostToolUseTimeout)

		step(6, total, "Writing default config")
		if err := writeDefaultConfig(); err != nil {
			return err
		}

		fmt.Println(okStyle.Render("✓ talkback installed") + " — run `talkback speak` to test")
		return nil
	},
}

// writeDefaultConfig creates the config file with defaults when it does
// not exist yet; an existing config is never touched.
func writeDefaultConfig() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("      %s (kept)\n", path)
		return nil
	}
	data, err := json.MarshalIndent(config.Default(), "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Printf("      %s\n", path)
	return nil
}
