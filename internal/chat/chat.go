// Package chat is the project assistant: free-form Q&A grounded in the
// project's files and tasks, plus inline editing of a selected snippet.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/forgehq/forge/internal/dispatch"
	"github.com/forgehq/forge/internal/oracle"
	"github.com/forgehq/forge/internal/planner"
	"github.com/forgehq/forge/internal/store"
)

const (
	// maxFileContext caps how much of each file is embedded in the
	// system prompt.
	maxFileContext = 2000
	// maxSelectionContext caps the surrounding context sent with a
	// selection edit.
	maxSelectionContext = 1500
)

// Message is one turn of conversation history.
type Message struct {
	Role    string `json:"role"` // user, assistant
	Content string `json:"content"`
}

// ProjectContext is the project state the assistant answers from.
type ProjectContext struct {
	Project *store.Project
	Files   []store.File
	Tasks   []store.Task
}

// Service answers project questions and performs selection edits.
type Service struct {
	oracle oracle.Client
}

// New creates a chat Service.
func New(o oracle.Client) *Service {
	return &Service{oracle: o}
}

// Respond answers a user message given the conversation history and the
// project's current files and tasks.
func (s *Service) Respond(ctx context.Context, history []Message, message string, pc ProjectContext) (string, error) {
	var b strings.Builder

	b.WriteString("You are Forge AI, an expert software architect and coding assistant.\n")
	if pc.Project != nil {
		fmt.Fprintf(&b, "You are helping a developer with their project: %s.\nStatus: %s\n",
			pc.Project.Name, pc.Project.Status)
	}
	b.WriteString("\nCONTEXT:\nThe user has shared the following project context with you. " +
		"Use it to answer questions accurately.\n\n")
	b.WriteString("FILES:\n" + formatFiles(pc.Files) + "\n\n")
	b.WriteString("TASKS:\n" + formatTasks(pc.Tasks) + "\n\n")
	b.WriteString("INSTRUCTIONS:\n" +
		"- Be concise, technical, and helpful.\n" +
		"- If writing code, use Markdown code blocks.\n" +
		"- If the user asks about a specific file, refer to its content.\n")

	b.WriteString("\nCONVERSATION:\n")
	for _, msg := range history {
		role := "User"
		if msg.Role != "user" {
			role = "Assistant"
		}
		fmt.Fprintf(&b, "%s: %s\n", role, msg.Content)
	}
	fmt.Fprintf(&b, "User: %s\nAssistant:", message)

	reply, err := s.oracle.Generate(ctx, b.String())
	if err != nil {
		return "", dispatch.WrapError(dispatch.KindOracleFailure, err, "chat generation failed")
	}
	return strings.TrimSpace(reply), nil
}

// SelectionRequest is an inline edit of a selected portion of a file.
type SelectionRequest struct {
	Selection     string
	ContextBefore string
	ContextAfter  string
	Instruction   string
	FileType      string // e.g. javascript, markdown
}

// EditSelection rewrites the selected text per the instruction, using the
// surrounding context to match style and indentation. Only the edited
// selection is returned, never the whole file.
func (s *Service) EditSelection(ctx context.Context, req SelectionRequest) (string, error) {
	if strings.TrimSpace(req.Selection) == "" {
		return "", dispatch.Errorf(dispatch.KindMissingArgument, "edit_selection requires a non-empty selection")
	}
	if strings.TrimSpace(req.Instruction) == "" {
		return "", dispatch.Errorf(dispatch.KindMissingArgument, "edit_selection requires an instruction")
	}

	fileType := req.FileType
	if fileType == "" {
		fileType = "javascript"
	}

	prompt := fmt.Sprintf(
		"You are an expert code editor. The user has selected a portion of code "+
			"and wants you to modify it.\n\n"+
			"RULES:\n"+
			"- Return ONLY the edited code, no explanations or markdown formatting\n"+
			"- Maintain the same indentation style as the original\n"+
			"- Keep the code style consistent with the surrounding context\n"+
			"- If the instruction is unclear, make reasonable assumptions\n"+
			"- For the file type: %s\n\n"+
			"CONTEXT BEFORE SELECTION:\n```\n%s\n```\n\n"+
			"SELECTED TEXT TO EDIT:\n```\n%s\n```\n\n"+
			"CONTEXT AFTER SELECTION:\n```\n%s\n```\n\n"+
			"Edit the selected code according to this instruction: %s\n\n"+
			"Return only the edited code, nothing else.",
		fileType,
		tail(req.ContextBefore, maxSelectionContext),
		req.Selection,
		head(req.ContextAfter, maxSelectionContext),
		req.Instruction,
	)

	reply, err := s.oracle.Generate(ctx, prompt)
	if err != nil {
		return "", dispatch.WrapError(dispatch.KindOracleFailure, err, "selection edit failed")
	}
	return planner.StripCodeFence(strings.TrimSpace(reply)), nil
}

func formatFiles(files []store.File) string {
	if len(files) == 0 {
		return "No files referenced."
	}
	var b strings.Builder
	for i, f := range files {
		if i > 0 {
			b.WriteByte('\n')
		}
		content := f.Content
		suffix := ""
		if len(content) > maxFileContext {
			content = content[:maxFileContext]
			suffix = "..."
		}
		fmt.Fprintf(&b, "- %s (%s):\n```\n%s%s\n```", f.Name, f.Type, content, suffix)
	}
	return b.String()
}

func formatTasks(tasks []store.Task) string {
	if len(tasks) == 0 {
		return "No tasks."
	}
	var b strings.Builder
	for i, t := range tasks {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- [%s] %s (Priority: %s)", t.Status, t.Title, t.Priority)
	}
	return b.String()
}

// tail returns at most n trailing bytes of s.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// head returns at most n leading bytes of s.
func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
