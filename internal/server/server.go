// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations and
// injects them into the tools/prompts/resources that depend on
// abstractions. No business logic lives here, only wiring.
package server

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/forgehq/forge/internal/chat"
	"github.com/forgehq/forge/internal/dispatch"
	"github.com/forgehq/forge/internal/oracle"
	"github.com/forgehq/forge/internal/planner"
	"github.com/forgehq/forge/internal/prompts"
	"github.com/forgehq/forge/internal/resources"
	"github.com/forgehq/forge/internal/store"
	"github.com/forgehq/forge/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function closes the record store's database
// connection and must be called on shutdown (typically via defer).
// It is always non-nil and safe to call.
func New(ctx context.Context) (*server.MCPServer, func(), error) {
	// --- Create shared dependencies ---

	recordStore, err := store.New(store.DefaultConfig())
	if err != nil {
		return nil, noop, fmt.Errorf("opening record store: %w", err)
	}
	cleanup := func() {
		if err := recordStore.Close(); err != nil {
			log.Printf("WARNING: record store close: %v", err)
		}
	}

	dispatcher := dispatch.New(recordStore)

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"forge",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register project and record tools ---

	createProjectTool := tools.NewCreateProjectTool(recordStore)
	s.AddTool(createProjectTool.Definition(), createProjectTool.Handle)

	createDocumentTool := tools.NewCreateDocumentTool(dispatcher)
	s.AddTool(createDocumentTool.Definition(), createDocumentTool.Handle)

	createMockupTool := tools.NewCreateMockupTool(dispatcher)
	s.AddTool(createMockupTool.Definition(), createMockupTool.Handle)

	createTasksTool := tools.NewCreateTasksTool(dispatcher)
	s.AddTool(createTasksTool.Definition(), createTasksTool.Handle)

	modifyTaskTool := tools.NewModifyTaskTool(dispatcher)
	s.AddTool(modifyTaskTool.Definition(), modifyTaskTool.Handle)

	modifyDocumentTool := tools.NewModifyDocumentTool(dispatcher)
	s.AddTool(modifyDocumentTool.Definition(), modifyDocumentTool.Handle)

	listModelsTool := tools.NewListModelsTool()
	s.AddTool(listModelsTool.Definition(), listModelsTool.Handle)

	// --- Register AI tools ---
	//
	// The AI layer is an independent subsystem: without a GEMINI_API_KEY
	// the record tools keep working. We log a warning and skip AI tool
	// registration, the server is still fully functional for project
	// and task management.

	if gemini, gemErr := newOracle(ctx); gemErr != nil {
		log.Printf("WARNING: AI tools disabled: %v", gemErr)
	} else {
		log.Printf("AI tools enabled with model %s", gemini.Model())

		editPlanner := planner.New(recordStore, gemini)
		editFileTool := tools.NewEditFileTool(editPlanner)
		s.AddTool(editFileTool.Definition(), editFileTool.Handle)

		chatService := chat.New(gemini)
		chatTool := tools.NewChatTool(chatService, recordStore)
		s.AddTool(chatTool.Definition(), chatTool.Handle)

		editSelectionTool := tools.NewEditSelectionTool(chatService)
		s.AddTool(editSelectionTool.Definition(), editSelectionTool.Handle)
	}

	// --- Register prompts ---

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	statusPrompt := prompts.NewStatusPrompt()
	s.AddPrompt(statusPrompt.Definition(), statusPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(recordStore)
	s.AddResource(resourceHandler.ProjectsResource(), resourceHandler.HandleProjects)

	return s, cleanup, nil
}

// newOracle builds the Gemini client from the environment. FORGE_MODEL
// selects a preset tier (powerful, fast, efficient); unknown or unset
// values fall back to the default tier.
func newOracle(ctx context.Context) (*oracle.Gemini, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	cfg := oracle.DefaultConfig(apiKey)
	if preset := os.Getenv("FORGE_MODEL"); preset != "" {
		cfg.Model = oracle.ModelID(preset)
	}
	return oracle.NewGemini(ctx, cfg)
}

// noop is a no-op cleanup function used when setup fails before the
// store is open.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use Forge effectively.
func serverInstructions() string {
	return `You have access to Forge, a project workspace MCP server.

## WHAT FORGE HOLDS

Each project contains:
- Documents: specs, notes, research, organized by category
- Mockups: self-contained HTML UI sketches
- Tasks: prioritized work items placed on an Eisenhower matrix
  (q1 urgent+important, q2 important, q3 urgent, q4 neither)

## WHEN TO USE FORGE

Proactively suggest Forge when the user:
- Starts planning a new project or feature
- Wants to capture requirements, research, or design notes
- Asks to break work into tasks or prioritize a backlog
- Wants a UI mockup to react to

## HOW TO EDIT DOCUMENTS

Prefer forge_edit_file over rewriting content yourself:
- 'rewrite' regenerates the whole file
- 'insert' adds new content at the best location
- 'replace' rewrites only the relevant section
The tool returns the original and modified content for review. Show the
user what changed, and only after they approve, commit the new content
with forge_modify_document.

## GOOD HABITS

- Create tasks with both priority and importance so the quadrant is right
- Keep document categories tidy: Docs, Research, Mockups
- Use forge_chat when the user asks questions about their own project`
}
