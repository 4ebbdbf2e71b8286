// Package hook models the JSON payload Claude Code writes to a hook's
// stdin when a trigger event fires.
package hook

import (
	"encoding/json"
	"fmt"
	"io"
)

// Input is the hook event payload. Stop events carry the transcript path;
// PostToolUse events carry the tool fields. Unknown fields are ignored.
type Input struct {
	SessionID      string         `json:"session_id"`
	TranscriptPath string         `json:"transcript_path"`
	// StopHookActive is set when Claude Code is already continuing as a
	// result of a Stop hook; speaking again here would recurse.
	StopHookActive bool           `json:"stop_hook_active"`
	ToolName       string         `json:"tool_name"`
	ToolInput      map[string]any `json:"tool_input"`
	ToolResponse   any            `json:"tool_response"`
}

// Read decodes a hook payload from stdin.
func Read(r io.Reader) (*Input, error) {
	var in Input
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("failed to parse hook input: %w", err)
	}
	return &in, nil
}
