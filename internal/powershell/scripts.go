// Package powershell holds the PowerShell scripts talkback runs for speech
// and playback on the Windows side, plus a small runner that works both
// natively and from inside WSL (powershell.exe is on the WSL PATH).
package powershell

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// SAPIScript speaks $text through the legacy System.Speech synthesizer.
// Callers prepend variable assignments ($text, optionally $voice/$rate).
const SAPIScript = "Add-Type -AssemblyName System.Speech\n" +
	"$synth = New-Object System.Speech.Synthesis.SpeechSynthesizer\n" +
	"\n" +
	"# Set voice if provided\n" +
	"if ($voice) {\n" +
	"    try {\n" +
	"        $synth.SelectVoice($voice)\n" +
	"    } catch {\n" +
	"        Write-Error \"Voice '$voice' not found. Available voices: $($synth.GetInstalledVoices().VoiceInfo.Name -join ', ')\"\n" +
	"        exit 1\n" +
	"    }\n" +
	"}\n" +
	"\n" +
	"# Set rate if provided (-10 to 10)\n" +
	"if ($rate -ne $null) {\n" +
	"    $synth.Rate = $rate\n" +
	"}\n" +
	"\n" +
	"# Speak the text\n" +
	"$synth.Speak($text)"

// MediaPlayerScript plays the audio file at $path through the Windows
// media stack. The poll loop caps playback at roughly 60 seconds.
const MediaPlayerScript = "Add-Type -AssemblyName presentationCore\n" +
	"$player = New-Object System.Windows.Media.MediaPlayer\n" +
	"$player.Open($path)\n" +
	"Start-Sleep -Milliseconds 500\n" +
	"$player.Play()\n" +
	"$elapsed = 0\n" +
	"while ($player.Position -lt $player.NaturalDuration.TimeSpan -and $elapsed -lt 600) {\n" +
	"    Start-Sleep -Milliseconds 100\n" +
	"    $elapsed++\n" +
	"}\n" +
	"$player.Close()"

// SAPIVoiceListScript prints installed SAPI voice names, one per line.
const SAPIVoiceListScript = "Add-Type -AssemblyName System.Speech\n" +
	"$synth = New-Object System.Speech.Synthesis.SpeechSynthesizer\n" +
	"$synth.GetInstalledVoices() | ForEach-Object { $_.VoiceInfo.Name }"

// Exe is the interpreter binary. The .exe suffix resolves from both
// native Windows and WSL.
const Exe = "powershell.exe"

// Available reports whether powershell.exe can be found.
func Available() bool {
	_, err := exec.LookPath(Exe)
	return err == nil
}

// Run executes preamble+script with -NoProfile and returns combined output.
func Run(ctx context.Context, preamble, script string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, Exe, "-NoProfile", "-Command", preamble+script)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return output, fmt.Errorf("powershell failed: %v - %s", err, strings.TrimSpace(string(output)))
	}
	return output, nil
}

// Quote escapes s for a single-quoted PowerShell string literal.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
