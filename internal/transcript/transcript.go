// Package transcript extracts assistant messages from Claude Code's
// session transcript (JSONL, one event per line).
package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineSize bounds a single transcript line; assistant turns with large
// tool output can get long.
const maxLineSize = 10 * 1024 * 1024

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// event covers both transcript shapes seen in the wild: a typed wrapper
// with a nested message, and a bare role/content pair.
type event struct {
	Type    string          `json:"type"`
	Role    string          `json:"role"`
	Message struct {
		Content json.RawMessage `json:"content"`
	} `json:"message"`
	Content json.RawMessage `json:"content"`
}

// LastAssistantMessage scans the transcript at path and returns the text
// of the final assistant turn. Malformed lines are skipped, not fatal.
func LastAssistantMessage(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open transcript: %w", err)
	}
	defer f.Close()
	return lastAssistant(f)
}

func lastAssistant(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var last string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var ev event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			continue
		}

		var raw json.RawMessage
		switch {
		case ev.Type == "assistant":
			raw = ev.Message.Content
		case ev.Role == "assistant":
			raw = ev.Content
		default:
			continue
		}

		if text := contentText(raw); text != "" {
			last = text
		}
	}
	if err := scanner.Err(); err != nil {
		return last, fmt.Errorf("failed to scan transcript: %w", err)
	}
	return last, nil
}

// contentText flattens a content value that is either a plain string or a
// list of typed blocks (text blocks joined by newlines, others ignored).
func contentText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return ""
	}
	var parts []string
	for _, elem := range elems {
		// Blocks are usually typed objects, occasionally bare strings.
		var block contentBlock
		if err := json.Unmarshal(elem, &block); err == nil {
			if block.Type == "text" && block.Text != "" {
				parts = append(parts, block.Text)
			}
			continue
		}
		var s string
		if err := json.Unmarshal(elem, &s); err == nil && s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}
