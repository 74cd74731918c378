package tools

import (
	"context"

	"github.com/forgehq/forge/internal/dispatch"
	"github.com/mark3labs/mcp-go/mcp"
)

// ModifyDocumentTool handles the forge_modify_document MCP tool. This is
// also how a reviewed forge_edit_file patch gets committed: pass the
// modified content back here.
type ModifyDocumentTool struct {
	dispatcher *dispatch.Dispatcher
}

// NewModifyDocumentTool creates a ModifyDocumentTool with the given dispatcher.
func NewModifyDocumentTool(d *dispatch.Dispatcher) *ModifyDocumentTool {
	return &ModifyDocumentTool{dispatcher: d}
}

// Definition returns the MCP tool definition for registration.
func (t *ModifyDocumentTool) Definition() mcp.Tool {
	return mcp.NewTool("forge_modify_document",
		mcp.WithDescription(
			"Update fields on an existing document or mockup. Only name, "+
				"content, category, and type can change; unknown fields are "+
				"ignored. The file must belong to the given project.",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project the file belongs to."),
		),
		mcp.WithString("file_id",
			mcp.Required(),
			mcp.Description("ID of the file to update."),
		),
		mcp.WithString("name", mcp.Description("New file name.")),
		mcp.WithString("content", mcp.Description("New full content.")),
		mcp.WithString("category", mcp.Description("New folder category.")),
		mcp.WithString("type", mcp.Description("doc or mockup.")),
	)
}

// Handle processes the forge_modify_document tool call.
func (t *ModifyDocumentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return dispatchCall(t.dispatcher, "modify_document", req)
}
