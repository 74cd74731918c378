package tools

import (
	"context"
	"fmt"

	"github.com/forgehq/forge/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// CreateProjectTool handles the forge_create_project MCP tool. New
// projects are seeded with the starter document set unless the caller
// opts out.
type CreateProjectTool struct {
	store *store.Store
}

// NewCreateProjectTool creates a CreateProjectTool with the given store.
func NewCreateProjectTool(s *store.Store) *CreateProjectTool {
	return &CreateProjectTool{store: s}
}

// Definition returns the MCP tool definition for registration.
func (t *CreateProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("forge_create_project",
		mcp.WithDescription(
			"Create a new project. By default the project is seeded with "+
				"starter documents (overview, requirements, architecture, "+
				"notes, roadmap); pass seed_template=false to start empty.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Project name."),
		),
		mcp.WithString("difficulty",
			mcp.Description("easy, medium, or hard. Defaults to medium."),
		),
		mcp.WithArray("tags",
			mcp.Description("Free-form tags for the project."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithBoolean("seed_template",
			mcp.Description("Seed the starter documents. Defaults to true."),
		),
	)
}

// Handle processes the forge_create_project tool call.
func (t *CreateProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("forge_create_project requires a 'name' argument"), nil
	}

	project := &store.Project{
		Name:       name,
		Difficulty: req.GetString("difficulty", ""),
		Tags:       parseTags(req),
	}
	if err := t.store.CreateProject(project); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	seed := true
	if v, ok := req.GetArguments()["seed_template"].(bool); ok {
		seed = v
	}
	if seed {
		if err := t.store.SeedProject(project.ID); err != nil {
			return nil, fmt.Errorf("seeding project: %w", err)
		}
	}

	return jsonResult(envelope{
		Success: true,
		Tool:    "forge_create_project",
		Result:  project,
		Message: fmt.Sprintf("Created project %q", project.Name),
	})
}

func parseTags(req mcp.CallToolRequest) []string {
	raw, ok := req.GetArguments()["tags"].([]any)
	if !ok {
		return nil
	}
	tags := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			tags = append(tags, s)
		}
	}
	return tags
}
