// Package announce turns tool-completion events into short spoken status
// lines — a narration of what Claude is doing.
package announce

import (
	"fmt"
	"path/filepath"
	"strings"
)

// friendlyCommands maps common command names to spoken descriptions.
var friendlyCommands = map[string]string{
	"npm":    "NPM command",
	"git":    "Git command",
	"python": "Python script",
	"node":   "Node script",
	"pip":    "Pip command",
	"mkdir":  "Created directory",
	"cd":     "Changed directory",
	"ls":     "Listed files",
	"cat":    "Read file",
	"rm":     "Removed file",
	"mv":     "Moved file",
	"cp":     "Copied file",
	"pytest": "Tests",
	"jest":   "Tests",
	"go":     "Go command",
}

// ForTool generates the announcement for a completed tool invocation.
func ForTool(toolName string, toolInput map[string]any, toolResponse any) string {
	switch toolName {
	case "Read":
		return "Read file " + fileName(stringField(toolInput, "file_path"))
	case "Write":
		return "Wrote file " + fileName(stringField(toolInput, "file_path"))
	case "Edit":
		return "Edited file " + fileName(stringField(toolInput, "file_path"))
	case "Bash":
		return bashAnnouncement(toolInput, toolResponse)
	case "Glob":
		return fmt.Sprintf("Found %d files", countResults(toolResponse))
	case "Grep":
		return fmt.Sprintf("Searched for pattern, found %d matches", countResults(toolResponse))
	case "WebSearch":
		return "Completed web search"
	case "WebFetch":
		return "Fetched web content"
	case "Task":
		return "Subagent task completed"
	case "TodoWrite":
		return "Updated task list"
	default:
		return toolName + " completed"
	}
}

// SummarizeResult produces a speakable summary of a tool's output,
// truncated to maxLen. Bash output gets its last lines, with a preference
// for test-summary lines when one is present.
func SummarizeResult(toolName string, toolResponse any, maxLen int) string {
	response := responseString(toolResponse)
	if response == "" {
		return ""
	}

	if toolName == "Bash" {
		lines := strings.Split(strings.TrimSpace(response), "\n")
		if len(lines) <= 3 {
			return truncate(response, maxLen)
		}
		lower := strings.ToLower(response)
		if strings.Contains(lower, "passed") || strings.Contains(lower, "failed") {
			start := len(lines) - 5
			if start < 0 {
				start = 0
			}
			for _, line := range lines[start:] {
				l := strings.ToLower(line)
				if strings.Contains(l, "passed") || strings.Contains(l, "failed") {
					return truncate(line, maxLen)
				}
			}
		}
		return truncate(strings.Join(lines[len(lines)-3:], " "), maxLen)
	}

	return truncate(response, maxLen)
}

func bashAnnouncement(toolInput map[string]any, toolResponse any) string {
	command := stringField(toolInput, "command")
	first := "command"
	if fields := strings.Fields(command); len(fields) > 0 {
		first = fields[0]
	}

	base := filepath.Base(first)
	friendly, ok := friendlyCommands[base]
	if !ok {
		friendly = base + " command"
	}

	response := strings.ToLower(responseString(toolResponse))
	if strings.Contains(response, "error") || strings.Contains(response, "failed") {
		return friendly + " completed with errors"
	}
	return friendly + " completed"
}

func fileName(path string) string {
	if path == "" {
		return "a file"
	}
	return filepath.Base(path)
}

func countResults(response any) int {
	switch v := response.(type) {
	case nil:
		return 0
	case []any:
		return len(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		return len(strings.Split(s, "\n"))
	default:
		return 0
	}
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func responseString(response any) string {
	switch v := response.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
