package hook

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadStopEvent(t *testing.T) {
	in, err := Read(strings.NewReader(`{
		"session_id": "abc123",
		"transcript_path": "/home/u/.claude/projects/p/abc123.jsonl",
		"stop_hook_active": false,
		"hook_event_name": "Stop"
	}`))
	require.NoError(t, err)
	assert.Equal(t, "abc123", in.SessionID)
	assert.Equal(t, "/home/u/.claude/projects/p/abc123.jsonl", in.TranscriptPath)
	assert.False(t, in.StopHookActive)
}

func TestReadPostToolUseEvent(t *testing.T) {
	in, err := Read(strings.NewReader(`{
		"session_id": "abc123",
		"tool_name": "Bash",
		"tool_input": {"command": "go vet ./..."},
		"tool_response": "ok"
	}`))
	require.NoError(t, err)
	assert.Equal(t, "Bash", in.ToolName)
	assert.Equal(t, "go vet ./...", in.ToolInput["command"])
	assert.Equal(t, "ok", in.ToolResponse)
}

func TestReadMalformedInput(t *testing.T) {
	_, err := Read(strings.NewReader(`{"tool_name": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse hook input")
}
