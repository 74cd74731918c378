package tools

import (
	"context"

	"github.com/forgehq/forge/internal/planner"
	"github.com/mark3labs/mcp-go/mcp"
)

// EditFileTool handles the forge_edit_file MCP tool. It runs the planner's
// edit protocol and returns the proposed patch for review; the stored file
// is not modified until the caller commits via forge_modify_document.
type EditFileTool struct {
	planner *planner.Planner
}

// NewEditFileTool creates an EditFileTool with the given planner.
func NewEditFileTool(p *planner.Planner) *EditFileTool {
	return &EditFileTool{planner: p}
}

// Definition returns the MCP tool definition for registration.
func (t *EditFileTool) Definition() mcp.Tool {
	return mcp.NewTool("forge_edit_file",
		mcp.WithDescription(
			"Edit a stored document or mockup with AI assistance. Returns the "+
				"original and modified content side by side for diff review; "+
				"nothing is saved until forge_modify_document commits the change. "+
				"Edit types: 'rewrite' regenerates the whole file, 'insert' adds "+
				"new content at the best location, 'replace' rewrites only the "+
				"relevant section.",
		),
		mcp.WithString("file_id",
			mcp.Required(),
			mcp.Description("ID of the file to edit."),
		),
		mcp.WithString("instructions",
			mcp.Required(),
			mcp.Description("What to change, in plain language."),
		),
		mcp.WithString("project_id",
			mcp.Description("Project the file must belong to. If set, a file from another project is rejected."),
		),
		mcp.WithString("edit_type",
			mcp.Description("One of: rewrite, insert, replace. Defaults to rewrite."),
		),
	)
}

// Handle processes the forge_edit_file tool call.
func (t *EditFileTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	editType := req.GetString("edit_type", string(planner.OpRewrite))

	result, err := t.planner.EditFile(ctx, planner.EditRequest{
		FileID:       req.GetString("file_id", ""),
		ProjectID:    req.GetString("project_id", ""),
		Operation:    planner.Operation(editType),
		Instructions: req.GetString("instructions", ""),
	})
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(envelope{
		Success: true,
		Tool:    "forge_edit_file",
		Result:  result,
		Message: result.Summary,
	})
}
