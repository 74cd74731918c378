package tools

import (
	"context"

	"github.com/forgehq/forge/internal/dispatch"
	"github.com/mark3labs/mcp-go/mcp"
)

// CreateMockupTool handles the forge_create_mockup MCP tool. Mockups are
// HTML files; they always land in the Mockups category regardless of what
// the caller asks for.
type CreateMockupTool struct {
	dispatcher *dispatch.Dispatcher
}

// NewCreateMockupTool creates a CreateMockupTool with the given dispatcher.
func NewCreateMockupTool(d *dispatch.Dispatcher) *CreateMockupTool {
	return &CreateMockupTool{dispatcher: d}
}

// Definition returns the MCP tool definition for registration.
func (t *CreateMockupTool) Definition() mcp.Tool {
	return mcp.NewTool("forge_create_mockup",
		mcp.WithDescription(
			"Create a new UI mockup in a project. Content should be a single "+
				"self-contained HTML file. Mockups are always stored under the "+
				"Mockups category.",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project to create the mockup in."),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Mockup name, e.g. 'Dashboard v1'."),
		),
		mcp.WithString("content",
			mcp.Description("Self-contained HTML for the mockup."),
		),
	)
}

// Handle processes the forge_create_mockup tool call.
func (t *CreateMockupTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return dispatchCall(t.dispatcher, "create_mockup", req)
}
