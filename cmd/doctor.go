package cmd

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/blacktop/talkback/internal/platform"
	"github.com/blacktop/talkback/internal/powershell"
	"github.com/blacktop/talkback/internal/settings"
	"github.com/blacktop/talkback/internal/speech"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type checkStatus int

const (
	checkOK checkStatus = iota
	checkWarn
	checkFail
)

type checkResult struct {
	name   string
	status checkStatus
	detail string
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check prerequisites and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := platform.Detect()
		cfg := loadConfig()

		checks := []struct {
			name string
			fn   func() checkResult
		}{
			{"environment", func() checkResult {
				detail := info.Kind.String()
				if info.KernelRelease != "" {
					detail += " (" + firstLine(info.KernelRelease) + ")"
				}
				return checkResult{status: checkOK, detail: detail}
			}},
			{"settings", func() checkResult {
				path, err := settingsPath()
				if err != nil {
					return checkResult{status: checkFail, detail: err.Error()}
				}
				if _, err := settings.Load(path); err != nil {
					return checkResult{status: checkFail, detail: err.Error()}
				}
				return checkResult{status: checkOK, detail: path}
			}},
			{"edge-tts", func() checkResult {
				argv, err := shlex.Split(cfg.EdgeCommand)
				if err != nil || len(argv) == 0 {
					return checkResult{status: checkFail, detail: "invalid edge_command"}
				}
				if _, err := exec.LookPath(argv[0]); err != nil {
					return checkResult{status: checkWarn, detail: "not found (pip install edge-tts)"}
				}
				return checkResult{status: checkOK, detail: argv[0]}
			}},
			{"voice", func() checkResult {
				if !speech.IsEdgeVoiceName(cfg.Voice) {
					return checkResult{status: checkWarn, detail: speech.VoiceNotInstalledError(cfg.Voice)}
				}
				voices, err := speech.InstalledEdgeVoices(cfg.EdgeCommand)
				if err != nil || len(voices) == 0 {
					// edge-tts absent or enumeration failed; shape check is
					// the best we can do
					return checkResult{status: checkOK, detail: cfg.Voice + " (not verified against edge-tts)"}
				}
				if !voices[cfg.Voice] {
					return checkResult{status: checkWarn, detail: cfg.Voice + " not in `edge-tts --list-voices` output"}
				}
				return checkResult{status: checkOK, detail: cfg.Voice + " (installed)"}
			}},
			{"powershell", func() checkResult {
				if !info.WindowsInterop() {
					return checkResult{status: checkOK, detail: "not needed on " + info.Kind.String()}
				}
				if !powershell.Available() {
					return checkResult{status: checkWarn, detail: "powershell.exe not found; SAPI fallback and playback unavailable"}
				}
				out, err := powershell.Run(cmd.Context(), "", powershell.SAPIVoiceListScript)
				if err != nil {
					return checkResult{status: checkWarn, detail: "found, but SAPI voice enumeration failed"}
				}
				n := 0
				for line := range strings.SplitSeq(string(out), "\n") {
					if strings.TrimSpace(line) != "" {
						n++
					}
				}
				return checkResult{status: checkOK, detail: fmt.Sprintf("found (%d SAPI voices)", n)}
			}},
			{"espeak", func() checkResult {
				if info.Kind == platform.KindWindows {
					return checkResult{status: checkOK, detail: "not needed on Windows"}
				}
				if _, err := exec.LookPath("espeak"); err != nil {
					return checkResult{status: checkWarn, detail: "not found; last-resort engine unavailable"}
				}
				return checkResult{status: checkOK, detail: "found"}
			}},
		}

		results := make([]checkResult, len(checks))
		g, _ := errgroup.WithContext(cmd.Context())
		for i, check := range checks {
			g.Go(func() error {
				results[i] = check.fn()
				results[i].name = check.name
				return nil
			})
		}
		g.Wait()

		failed := false
		for _, res := range results {
			mark := okStyle.Render("✓")
			switch res.status {
			case checkWarn:
				mark = warnStyle.Render("!")
			case checkFail:
				mark = failStyle.Render("✗")
				failed = true
			}
			fmt.Printf("%s %-11s %s\n", mark, res.name, res.detail)
		}

		if !engineAvailable(cfg.EdgeCommand, info) {
			return fmt.Errorf("no speech engine available: install edge-tts, espeak, or enable PowerShell interop")
		}
		if failed {
			return fmt.Errorf("doctor found fatal problems")
		}
		return nil
	},
}

// engineAvailable reports whether at least one engine in the default
// chain could actually run here.
func engineAvailable(edgeCommand string, info platform.Info) bool {
	if argv, err := shlex.Split(edgeCommand); err == nil && len(argv) > 0 {
		if _, err := exec.LookPath(argv[0]); err == nil {
			return true
		}
	}
	if info.WindowsInterop() && powershell.Available() {
		return true
	}
	if info.Kind != platform.KindWindows {
		if _, err := exec.LookPath("espeak"); err == nil {
			return true
		}
	}
	return false
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
