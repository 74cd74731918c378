package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatusPrompt handles the forge-status MCP prompt.
// It instructs the AI to read and present the current project state.
type StatusPrompt struct{}

// NewStatusPrompt creates a StatusPrompt.
func NewStatusPrompt() *StatusPrompt {
	return &StatusPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StatusPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("forge-status",
		mcp.WithPromptDescription(
			"Check the state of your Forge projects: documents, mockups, "+
				"tasks by quadrant, and what to do next.",
		),
	)
}

// Handle processes the forge-status prompt request.
func (p *StatusPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Forge Project Status",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please read the `forge://projects` resource to see my projects.\n\n" +
						"Then:\n" +
						"1. Show each project with its documents and task counts\n" +
						"2. Highlight urgent+important (q1) tasks that are still open\n" +
						"3. Tell me exactly what I should work on next",
				),
			},
		},
	}, nil
}
