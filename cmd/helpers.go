package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/blacktop/talkback/internal/config"
	"github.com/blacktop/talkback/internal/platform"
)

var (
	stepStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func step(n, total int, format string, a ...any) {
	fmt.Printf("%s %s\n", stepStyle.Render(fmt.Sprintf("[%d/%d]", n, total)), fmt.Sprintf(format, a...))
}

func settingsPath() (string, error) {
	if settingsFlag != "" {
		return settingsFlag, nil
	}
	return platform.SettingsPath()
}

func configPath() (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	return config.Path()
}

// loadConfig never fails: a broken or missing config degrades to defaults
// with a warning, matching the dispatcher's best-effort posture.
func loadConfig() *config.Config {
	path, err := configPath()
	if err != nil {
		log.Warn("Could not resolve config path, using defaults", "error", err)
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Warn("Could not load config, using defaults", "path", path, "error", err)
	}
	return cfg
}

// hookLogging redirects the logger to the configured log file so hook
// output never pollutes the host tool's stderr. The returned closer is a
// no-op when the file can't be opened.
func hookLogging(cfg *config.Config) io.Closer {
	path := cfg.LogPath()
	os.MkdirAll(filepath.Dir(path), 0o755)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return io.NopCloser(nil)
	}
	log.SetOutput(f)
	return f
}
