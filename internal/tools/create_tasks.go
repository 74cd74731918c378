package tools

import (
	"context"

	"github.com/forgehq/forge/internal/dispatch"
	"github.com/mark3labs/mcp-go/mcp"
)

// CreateTasksTool handles the forge_create_tasks MCP tool. Creation is
// best-effort: invalid items are reported per index and never roll back
// the items that did persist.
type CreateTasksTool struct {
	dispatcher *dispatch.Dispatcher
}

// NewCreateTasksTool creates a CreateTasksTool with the given dispatcher.
func NewCreateTasksTool(d *dispatch.Dispatcher) *CreateTasksTool {
	return &CreateTasksTool{dispatcher: d}
}

// Definition returns the MCP tool definition for registration.
func (t *CreateTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("forge_create_tasks",
		mcp.WithDescription(
			"Create one or more tasks in a project. Each task gets an "+
				"Eisenhower quadrant derived from its priority (urgency) and "+
				"importance: q1 urgent+important, q2 important, q3 urgent, "+
				"q4 neither. Items that fail validation are reported by index; "+
				"the rest are still created.",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project to create the tasks in."),
		),
		mcp.WithArray("tasks",
			mcp.Required(),
			mcp.Description(
				"Task items. Each item: title (required), description, "+
					"priority (high/medium/low), importance (high/medium/low), "+
					"difficulty, due_date (YYYY-MM-DD).",
			),
			mcp.Items(map[string]any{"type": "object"}),
		),
	)
}

// Handle processes the forge_create_tasks tool call.
func (t *CreateTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return dispatchCall(t.dispatcher, "create_tasks", req)
}
