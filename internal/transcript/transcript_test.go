package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTranscript(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transcript.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func TestLastAssistantMessageTypedEvents(t *testing.T) {
	path := writeTranscript(t,
		`{"type":"user","message":{"content":"run the tests"}}`,
		`{"type":"assistant","message":{"content":[{"type":"text","text":"On it."}]}}`,
		`{"type":"assistant","message":{"content":[{"type":"tool_use","id":"t1","name":"Bash"},{"type":"text","text":"All tests pass."}]}}`,
	)

	text, err := LastAssistantMessage(path)
	require.NoError(t, err)
	assert.Equal(t, "All tests pass.", text)
}

func TestLastAssistantMessageRoleEvents(t *testing.T) {
	path := writeTranscript(t,
		`{"role":"user","content":"hello"}`,
		`{"role":"assistant","content":"first reply"}`,
		`{"role":"assistant","content":"final reply"}`,
	)

	text, err := LastAssistantMessage(path)
	require.NoError(t, err)
	assert.Equal(t, "final reply", text)
}

func TestLastAssistantMessageSkipsMalformedLines(t *testing.T) {
	path := writeTranscript(t,
		`{"role":"assistant","content":"kept"}`,
		`{not json at all`,
		``,
		`plain text line`,
	)

	text, err := LastAssistantMessage(path)
	require.NoError(t, err)
	assert.Equal(t, "kept", text)
}

func TestLastAssistantMessageMissingFile(t *testing.T) {
	_, err := LastAssistantMessage(filepath.Join(t.TempDir(), "nope.jsonl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open transcript")
}

func TestLastAssistantMessageNoAssistantTurns(t *testing.T) {
	path := writeTranscript(t,
		`{"role":"user","content":"only me here"}`,
		`{"type":"system","message":{"content":"booted"}}`,
	)

	text, err := LastAssistantMessage(path)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestContentText(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"plain string", `"hello there"`, "hello there"},
		{"single text block", `[{"type":"text","text":"block one"}]`, "block one"},
		{
			"text blocks joined",
			`[{"type":"text","text":"one"},{"type":"text","text":"two"}]`,
			"one\ntwo",
		},
		{
			"non-text blocks ignored",
			`[{"type":"tool_use","id":"t1"},{"type":"text","text":"spoken"}]`,
			"spoken",
		},
		{"bare string elements", `["a","b"]`, "a\nb"},
		{"empty list", `[]`, ""},
		{"empty raw", ``, ""},
		{"number", `42`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, contentText([]byte(tt.raw)))
		})
	}
}
