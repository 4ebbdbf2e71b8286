package announce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForTool(t *testing.T) {
	tests := []struct {
		name     string
		tool     string
		input    map[string]any
		response any
		expected string
	}{
		{
			"read with path",
			"Read", map[string]any{"file_path": "/home/u/project/main.go"}, nil,
			"Read file main.go",
		},
		{
			"read without path",
			"Read", nil, nil,
			"Read file a file",
		},
		{
			"write",
			"Write", map[string]any{"file_path": "/tmp/notes.md"}, nil,
			"Wrote file notes.md",
		},
		{
			"edit",
			"Edit", map[string]any{"file_path": "cmd/root.go"}, nil,
			"Edited file root.go",
		},
		{
			"glob counts list results",
			"Glob", nil, []any{"a.go", "b.go", "c.go"},
			"Found 3 files",
		},
		{
			"grep counts line results",
			"Grep", nil, "one match\nanother match",
			"Searched for pattern, found 2 matches",
		},
		{
			"grep empty results",
			"Grep", nil, "",
			"Searched for pattern, found 0 matches",
		},
		{"web search", "WebSearch", nil, nil, "Completed web search"},
		{"web fetch", "WebFetch", nil, nil, "Fetched web content"},
		{"task", "Task", nil, nil, "Subagent task completed"},
		{"todo write", "TodoWrite", nil, nil, "Updated task list"},
		{"unknown tool", "NotebookRead", nil, nil, "NotebookRead completed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ForTool(tt.tool, tt.input, tt.response))
		})
	}
}

func TestBashAnnouncement(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		response any
		expected string
	}{
		{"git", "git status", "clean", "Git command completed"},
		{"npm", "npm install left-pad", "", "NPM command completed"},
		{"pytest", "pytest -x tests/", "3 passed", "Tests completed"},
		{"go", "go vet ./...", "", "Go command completed"},
		{"absolute path stripped", "/usr/bin/python app.py", "", "Python script completed"},
		{"unknown command", "terraform plan", "", "terraform command completed"},
		{"empty command", "", "", "command command completed"},
		{"error in output", "git push", "error: failed to push some refs", "Git command completed with errors"},
		{"failed in output", "make build", "build FAILED", "make command completed with errors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForTool("Bash", map[string]any{"command": tt.command}, tt.response)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSummarizeResult(t *testing.T) {
	tests := []struct {
		name     string
		tool     string
		response any
		maxLen   int
		expected string
	}{
		{"empty response", "Bash", nil, 200, ""},
		{"short bash output kept whole", "Bash", "a\nb\nc", 200, "a\nb\nc"},
		{
			"test summary line preferred",
			"Bash",
			"collecting...\nrunning test_a\nrunning test_b\nmore noise\n2 passed in 0.41s",
			200,
			"2 passed in 0.41s",
		},
		{
			"long output falls back to last lines",
			"Bash",
			"one\ntwo\nthree\nfour\nfive",
			200,
			"three four five",
		},
		{"non-bash passed through", "Read", "package main", 200, "package main"},
		{"truncated to max", "Read", "abcdefghij", 4, "abcd"},
		{"multibyte cut at rune boundary", "Read", "日本語のテキストです", 4, "日本語の"},
		{"zero max means no limit", "Read", "abcdefghij", 0, "abcdefghij"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SummarizeResult(tt.tool, tt.response, tt.maxLen))
		})
	}
}
