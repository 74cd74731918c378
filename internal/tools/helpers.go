// Package tools implements the MCP tool handlers for Forge.
//
// Each tool is a struct that receives its dependencies (dispatcher,
// planner, chat service, store) and exposes a Definition for registration
// plus a Handle compatible with mcp-go's CallToolRequest signature. The
// tool definitions are the catalog the AI sees; all argument validation
// beyond JSON shape happens in the packages behind the handlers.
package tools

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/forgehq/forge/internal/dispatch"
	"github.com/mark3labs/mcp-go/mcp"
)

// envelope is the uniform response shape for every Forge tool.
type envelope struct {
	Success bool   `json:"success"`
	Tool    string `json:"tool_name"`
	Result  any    `json:"result,omitempty"`
	Message string `json:"message,omitempty"`
}

// jsonResult renders an envelope as a JSON tool result.
func jsonResult(env envelope) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling tool result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errorResult maps an execution error to a tool result. Dispatch errors
// carry a user-safe kind and message and become tool errors; anything
// else is an internal failure and propagates as a Go error.
func errorResult(err error) (*mcp.CallToolResult, error) {
	var derr *dispatch.Error
	if errors.As(err, &derr) {
		return mcp.NewToolResultError(fmt.Sprintf("[%s] %s", derr.Kind, derr.Message)), nil
	}
	return nil, err
}

// dispatchCall runs one dispatcher tool from an MCP request. project_id is
// pulled out of the argument bag; everything else passes through to the
// dispatcher untouched so its decoding and allow-lists stay authoritative.
func dispatchCall(d *dispatch.Dispatcher, tool string, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("project_id", "")
	if projectID == "" {
		return mcp.NewToolResultError(fmt.Sprintf("%s requires a 'project_id' argument", tool)), nil
	}

	args := make(map[string]any)
	for k, v := range req.GetArguments() {
		if k == "project_id" {
			continue
		}
		args[k] = v
	}

	res, err := d.Execute(dispatch.Invocation{Tool: tool, Arguments: args}, projectID)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(envelope{
		Success: res.Success,
		Tool:    res.Tool,
		Result:  res.Payload,
		Message: res.Message,
	})
}
