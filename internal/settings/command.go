package settings

import "strings"

// CommandBuilder renders the hook command string for one platform's shell
// quoting rules. The command embeds an absolute path to the talkback
// binary plus the hook subcommand.
type CommandBuilder interface {
	HookCommand(exe, subcommand string) string
}

// PosixCommandBuilder quotes for sh-style shells (Linux, WSL, macOS).
type PosixCommandBuilder struct{}

func (PosixCommandBuilder) HookCommand(exe, subcommand string) string {
	return posixQuote(exe) + " " + subcommand
}

// WindowsCommandBuilder quotes for cmd.exe.
type WindowsCommandBuilder struct{}

func (WindowsCommandBuilder) HookCommand(exe, subcommand string) string {
	return `"` + exe + `" ` + subcommand
}

func posixQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t'\"\\$&|;<>()*?[]#~`!") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
