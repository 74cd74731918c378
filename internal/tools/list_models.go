package tools

import (
	"context"

	"github.com/forgehq/forge/internal/oracle"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListModelsTool handles the forge_list_models MCP tool.
type ListModelsTool struct{}

// NewListModelsTool creates a ListModelsTool.
func NewListModelsTool() *ListModelsTool {
	return &ListModelsTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *ListModelsTool) Definition() mcp.Tool {
	return mcp.NewTool("forge_list_models",
		mcp.WithDescription(
			"List the available AI model presets (powerful, fast, efficient) "+
				"and which tier is the default.",
		),
	)
}

// Handle processes the forge_list_models tool call.
func (t *ListModelsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(envelope{
		Success: true,
		Tool:    "forge_list_models",
		Result: map[string]any{
			"models":  oracle.Presets(),
			"default": oracle.DefaultPreset,
		},
	})
}
