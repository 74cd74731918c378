package tools

import (
	"context"

	"github.com/forgehq/forge/internal/dispatch"
	"github.com/mark3labs/mcp-go/mcp"
)

// CreateDocumentTool handles the forge_create_document MCP tool.
type CreateDocumentTool struct {
	dispatcher *dispatch.Dispatcher
}

// NewCreateDocumentTool creates a CreateDocumentTool with the given dispatcher.
func NewCreateDocumentTool(d *dispatch.Dispatcher) *CreateDocumentTool {
	return &CreateDocumentTool{dispatcher: d}
}

// Definition returns the MCP tool definition for registration.
func (t *CreateDocumentTool) Definition() mcp.Tool {
	return mcp.NewTool("forge_create_document",
		mcp.WithDescription(
			"Create a new document in a project. Documents hold specs, notes, "+
				"research, or any project text, organized by category.",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project to create the document in."),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Document name, e.g. 'API Specification'."),
		),
		mcp.WithString("content",
			mcp.Description("Initial document content. Markdown is typical."),
		),
		mcp.WithString("category",
			mcp.Description("Folder category, e.g. 'Docs', 'Research'. Defaults to Docs."),
		),
	)
}

// Handle processes the forge_create_document tool call.
func (t *CreateDocumentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return dispatchCall(t.dispatcher, "create_document", req)
}
