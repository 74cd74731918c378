package tools

import (
	"context"

	"github.com/forgehq/forge/internal/dispatch"
	"github.com/mark3labs/mcp-go/mcp"
)

// ModifyTaskTool handles the forge_modify_task MCP tool.
type ModifyTaskTool struct {
	dispatcher *dispatch.Dispatcher
}

// NewModifyTaskTool creates a ModifyTaskTool with the given dispatcher.
func NewModifyTaskTool(d *dispatch.Dispatcher) *ModifyTaskTool {
	return &ModifyTaskTool{dispatcher: d}
}

// Definition returns the MCP tool definition for registration.
func (t *ModifyTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("forge_modify_task",
		mcp.WithDescription(
			"Update fields on an existing task. Only title, description, "+
				"status, priority, quadrant, difficulty, and due_date can "+
				"change; unknown fields are ignored. The task must belong to "+
				"the given project.",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project the task belongs to."),
		),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("ID of the task to update."),
		),
		mcp.WithString("title", mcp.Description("New title.")),
		mcp.WithString("description", mcp.Description("New description.")),
		mcp.WithString("status", mcp.Description("todo, in_progress, or done.")),
		mcp.WithString("priority", mcp.Description("high, medium, or low.")),
		mcp.WithString("quadrant", mcp.Description("q1, q2, q3, or q4.")),
		mcp.WithString("difficulty", mcp.Description("New difficulty.")),
		mcp.WithString("due_date", mcp.Description("Due date as YYYY-MM-DD.")),
	)
}

// Handle processes the forge_modify_task tool call.
func (t *ModifyTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return dispatchCall(t.dispatcher, "modify_task", req)
}
