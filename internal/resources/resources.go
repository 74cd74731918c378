// Package resources implements MCP resource handlers for Forge.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (forge://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/forgehq/forge/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handler manages Forge resource endpoints.
type Handler struct {
	store *store.Store
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(s *store.Store) *Handler {
	return &Handler{store: s}
}

// projectSummary is one project in the forge://projects listing.
type projectSummary struct {
	store.Project
	FileCount int `json:"file_count"`
	TaskCount int `json:"task_count"`
}

// ProjectsResource returns the MCP resource definition for the project list.
func (h *Handler) ProjectsResource() mcp.Resource {
	return mcp.NewResource(
		"forge://projects",
		"Forge Projects",
		mcp.WithResourceDescription("All projects with their document and task counts"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleProjects returns the project list as JSON.
func (h *Handler) HandleProjects(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	projects, err := h.store.ListProjects()
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}

	summaries := make([]projectSummary, 0, len(projects))
	for _, p := range projects {
		files, err := h.store.ListFiles(p.ID)
		if err != nil {
			return errorResource(req.Params.URI, err.Error()), nil
		}
		tasks, err := h.store.ListTasks(p.ID)
		if err != nil {
			return errorResource(req.Params.URI, err.Error()), nil
		}
		summaries = append(summaries, projectSummary{
			Project:   p,
			FileCount: len(files),
			TaskCount: len(tasks),
		})
	}

	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling projects: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
