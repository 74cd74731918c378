// Package prompts implements MCP prompt handlers for Forge.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the forge-start MCP prompt.
// It guides the AI to create a new project and plan its first documents.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("forge-start",
		mcp.WithPromptDescription(
			"Start a new Forge project. Creates the project with its "+
				"starter documents, then plans the first tasks with you.",
		),
		mcp.WithArgument("project_name",
			mcp.ArgumentDescription("Name of your project"),
		),
	)
}

// Handle processes the forge-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	projectName := "my-project"
	if args := req.Params.Arguments; args != nil {
		if name, ok := args["project_name"]; ok && name != "" {
			projectName = name
		}
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Start Forge project: %s", projectName),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to start a new project called '%s' in Forge.\n\n"+
						"Please:\n"+
						"1. Run `forge_create_project` with name='%s'\n"+
						"2. Ask me to describe what I'm building\n"+
						"3. Fill in the starter documents (overview, requirements) from my description using `forge_edit_file`\n"+
						"4. Run `forge_create_tasks` to break the work into prioritized tasks\n"+
						"5. Summarize the project state and suggest what to tackle first",
					projectName, projectName,
				)),
			},
		},
	}, nil
}
