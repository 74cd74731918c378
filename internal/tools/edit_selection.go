package tools

import (
	"context"

	"github.com/forgehq/forge/internal/chat"
	"github.com/mark3labs/mcp-go/mcp"
)

// EditSelectionTool handles the forge_edit_selection MCP tool: an inline
// rewrite of a selected snippet, returning only the edited selection.
type EditSelectionTool struct {
	chat *chat.Service
}

// NewEditSelectionTool creates an EditSelectionTool with the given chat service.
func NewEditSelectionTool(c *chat.Service) *EditSelectionTool {
	return &EditSelectionTool{chat: c}
}

// Definition returns the MCP tool definition for registration.
func (t *EditSelectionTool) Definition() mcp.Tool {
	return mcp.NewTool("forge_edit_selection",
		mcp.WithDescription(
			"Rewrite a selected piece of text per an instruction. Returns "+
				"only the edited selection, matched to the style and "+
				"indentation of the surrounding context.",
		),
		mcp.WithString("selected_text",
			mcp.Required(),
			mcp.Description("The exact text to edit."),
		),
		mcp.WithString("instruction",
			mcp.Required(),
			mcp.Description("How to change the selection."),
		),
		mcp.WithString("context_before",
			mcp.Description("Text immediately before the selection."),
		),
		mcp.WithString("context_after",
			mcp.Description("Text immediately after the selection."),
		),
		mcp.WithString("file_type",
			mcp.Description("Language or format of the text, e.g. javascript, markdown. Defaults to javascript."),
		),
	)
}

// Handle processes the forge_edit_selection tool call.
func (t *EditSelectionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	edited, err := t.chat.EditSelection(ctx, chat.SelectionRequest{
		Selection:     req.GetString("selected_text", ""),
		ContextBefore: req.GetString("context_before", ""),
		ContextAfter:  req.GetString("context_after", ""),
		Instruction:   req.GetString("instruction", ""),
		FileType:      req.GetString("file_type", ""),
	})
	if err != nil {
		return errorResult(err)
	}

	return mcp.NewToolResultText(edited), nil
}
