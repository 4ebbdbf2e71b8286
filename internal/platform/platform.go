// Package platform detects the host environment (native Windows, WSL,
// plain Linux, macOS) and resolves the filesystem paths that depend on it.
package platform

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

// Kind identifies the host environment variant.
type Kind int

const (
	KindLinux Kind = iota
	KindWSL
	KindWindows
	KindDarwin
)

func (k Kind) String() string {
	switch k {
	case KindWSL:
		return "WSL"
	case KindWindows:
		return "Windows"
	case KindDarwin:
		return "macOS"
	default:
		return "Linux"
	}
}

// Info describes the detected environment.
type Info struct {
	Kind          Kind
	KernelRelease string
}

// Detect inspects the running system. Detection never fails hard: if the
// kernel release can't be read we warn and assume plain Linux.
func Detect() Info {
	release := ""
	if runtime.GOOS == "linux" {
		var err error
		release, err = kernelRelease()
		if err != nil {
			log.Warn("could not read kernel release, assuming plain Linux", "error", err)
		}
	}
	return Info{
		Kind:          DetectKind(runtime.GOOS, release),
		KernelRelease: release,
	}
}

// DetectKind classifies an OS/kernel-release pair. WSL kernels carry a
// "microsoft" vendor marker in the release string.
func DetectKind(goos, release string) Kind {
	switch goos {
	case "windows":
		return KindWindows
	case "darwin":
		return KindDarwin
	case "linux":
		if strings.Contains(strings.ToLower(release), "microsoft") {
			return KindWSL
		}
		return KindLinux
	default:
		return KindLinux
	}
}

func kernelRelease() (string, error) {
	var lastErr error
	for _, p := range []string{"/proc/sys/kernel/osrelease", "/proc/version"} {
		data, err := os.ReadFile(p)
		if err == nil {
			return strings.TrimSpace(string(data)), nil
		}
		lastErr = err
	}
	return "", lastErr
}

// WindowsInterop reports whether audio and speech go through the Windows
// side (natively or via powershell.exe from WSL).
func (i Info) WindowsInterop() bool {
	return i.Kind == KindWindows || i.Kind == KindWSL
}

// SharedTempDir returns a scratch directory for synthesized audio. On WSL
// this lives on the Windows filesystem so the Windows media player can
// read it; elsewhere the normal temp dir is used.
func (i Info) SharedTempDir() string {
	if i.Kind == KindWSL {
		dir := "/mnt/c/temp"
		if err := os.MkdirAll(dir, 0o755); err == nil {
			return dir
		}
	}
	return os.TempDir()
}

// ToWindowsPath translates a WSL path to its Windows form via wslpath.
// On failure (or outside WSL) the input is returned unchanged; callers use
// the result for display and PowerShell interop, never for correctness.
func (i Info) ToWindowsPath(path string) string {
	if i.Kind != KindWSL {
		return path
	}
	out, err := exec.Command("wslpath", "-w", path).Output()
	if err != nil {
		log.Debug("wslpath translation failed", "path", path, "error", err)
		return path
	}
	return strings.TrimSpace(string(out))
}

// SettingsPath returns the Claude Code settings file for the current user.
func SettingsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".claude", "settings.json"), nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
