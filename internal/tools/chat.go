package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgehq/forge/internal/chat"
	"github.com/forgehq/forge/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// ChatTool handles the forge_chat MCP tool. It loads the project's files
// and tasks as grounding context before asking the assistant.
type ChatTool struct {
	chat  *chat.Service
	store *store.Store
}

// NewChatTool creates a ChatTool with the given chat service and store.
func NewChatTool(c *chat.Service, s *store.Store) *ChatTool {
	return &ChatTool{chat: c, store: s}
}

// Definition returns the MCP tool definition for registration.
func (t *ChatTool) Definition() mcp.Tool {
	return mcp.NewTool("forge_chat",
		mcp.WithDescription(
			"Ask the project assistant a question. The assistant sees the "+
				"project's documents and tasks and answers in that context. "+
				"Pass prior turns in 'history' to continue a conversation.",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project to ground the conversation in."),
		),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("The user's message."),
		),
		mcp.WithArray("history",
			mcp.Description("Prior conversation turns. Each item: role (user/assistant), content."),
			mcp.Items(map[string]any{"type": "object"}),
		),
	)
}

// Handle processes the forge_chat tool call.
func (t *ChatTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("project_id", "")
	if projectID == "" {
		return mcp.NewToolResultError("forge_chat requires a 'project_id' argument"), nil
	}
	message := req.GetString("message", "")
	if message == "" {
		return mcp.NewToolResultError("forge_chat requires a 'message' argument"), nil
	}

	project, err := t.store.GetProject(projectID)
	if errors.Is(err, store.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("project %q not found", projectID)), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}
	files, err := t.store.ListFiles(projectID)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	tasks, err := t.store.ListTasks(projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}

	reply, err := t.chat.Respond(ctx, parseHistory(req), message, chat.ProjectContext{
		Project: project,
		Files:   files,
		Tasks:   tasks,
	})
	if err != nil {
		return errorResult(err)
	}

	return mcp.NewToolResultText(reply), nil
}

// parseHistory decodes the optional history argument. Malformed entries
// are skipped rather than failing the whole call.
func parseHistory(req mcp.CallToolRequest) []chat.Message {
	raw, ok := req.GetArguments()["history"].([]any)
	if !ok {
		return nil
	}

	history := make([]chat.Message, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		role, _ := m["role"].(string)
		content, _ := m["content"].(string)
		if content == "" {
			continue
		}
		history = append(history, chat.Message{Role: role, Content: content})
	}
	return history
}
