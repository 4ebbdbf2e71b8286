// Package settings reads and mutates Claude Code's settings.json. Only the
// hooks subtree is owned by talkback; everything else in the document must
// survive install/uninstall untouched.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Trigger events registered by talkback, and their per-handler timeouts
// (seconds) enforced by Claude Code.
const (
	EventStop        = "Stop"
	EventPostToolUse = "PostToolUse"

	StopTimeout        = 30
	PostToolUseTimeout = 10
)

// Handler describes a command Claude Code runs when a hook fires.
type Handler struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Timeout int    `json:"timeout,omitempty"`
}

// Matcher is one entry in a hook event's handler list.
type Matcher struct {
	Matcher string    `json:"matcher"`
	Hooks   []Handler `json:"hooks"`
}

// Document is the full settings file. Keys talkback doesn't own are kept
// as raw decoded JSON so they round-trip unchanged.
type Document map[string]any

// HookCommands holds the platform-specific command strings to register.
type HookCommands struct {
	Stop        string
	PostToolUse string
}

// Load reads the settings document. A missing file yields an empty
// document; malformed JSON is a hard error so no mutation ever happens on
// top of a file we can't faithfully rewrite.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	return doc, nil
}

// Backup copies the current settings file to <path>.backup, overwriting
// any previous backup. Returns the backup path, or "" when there was
// nothing to back up.
func Backup(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read settings for backup: %w", err)
	}
	backup := path + ".backup"
	if err := os.WriteFile(backup, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	return backup, nil
}

// InstallHooks registers the Stop and PostToolUse handlers, overwriting
// any prior talkback registration so repeated installs don't accumulate
// entries. Other hook events are left alone.
func (d Document) InstallHooks(cmds HookCommands) error {
	hooks, err := d.hooksMap()
	if err != nil {
		return err
	}
	hooks[EventStop] = commandEntry(cmds.Stop, StopTimeout)
	hooks[EventPostToolUse] = commandEntry(cmds.PostToolUse, PostToolUseTimeout)
	return nil
}

// RemoveHooks deletes the two talkback events from the hooks subtree and
// reports which were actually present. Other events, and every other key
// in the document, are untouched.
func (d Document) RemoveHooks() ([]string, error) {
	raw, ok := d["hooks"]
	if !ok {
		return nil, nil
	}
	hooks, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("settings hooks key is not an object")
	}
	var removed []string
	for _, event := range []string{EventStop, EventPostToolUse} {
		if _, ok := hooks[event]; ok {
			delete(hooks, event)
			removed = append(removed, event)
		}
	}
	return removed, nil
}

// Save writes the document with stable 2-space indentation, creating the
// parent directory if needed. The write goes through a temp file in the
// same directory followed by a rename.
func Save(d Document, path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp settings file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp settings file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace settings: %w", err)
	}
	return nil
}

func (d Document) hooksMap() (map[string]any, error) {
	raw, ok := d["hooks"]
	if !ok {
		hooks := map[string]any{}
		d["hooks"] = hooks
		return hooks, nil
	}
	hooks, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("settings hooks key is not an object")
	}
	return hooks, nil
}

func commandEntry(command string, timeout int) []Matcher {
	return []Matcher{{
		Matcher: "",
		Hooks: []Handler{{
			Type:    "command",
			Command: command,
			Timeout: timeout,
		}},
	}}
}
