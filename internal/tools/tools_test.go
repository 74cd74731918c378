package tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/forgehq/forge/internal/chat"
	"github.com/forgehq/forge/internal/dispatch"
	"github.com/forgehq/forge/internal/planner"
	"github.com/forgehq/forge/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Test helpers ---

// newTestStore opens a store in a temp dir, cleaned up with the test.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(store.Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("setup: open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// newTestProject creates a project to hang records off.
func newTestProject(t *testing.T, s *store.Store) *store.Project {
	t.Helper()
	p := &store.Project{Name: "test-project"}
	if err := s.CreateProject(p); err != nil {
		t.Fatalf("setup: create project: %v", err)
	}
	return p
}

// stubOracle replays canned replies in order.
type stubOracle struct {
	replies []string
	calls   int
}

func (o *stubOracle) Generate(ctx context.Context, prompt string) (string, error) {
	if o.calls >= len(o.replies) {
		return "", nil
	}
	reply := o.replies[o.calls]
	o.calls++
	return reply, nil
}

// isErrorResult checks if the result is a tool error.
func isErrorResult(result *mcp.CallToolResult) bool {
	return result != nil && result.IsError
}

// getResultText extracts the text content from a CallToolResult.
func getResultText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// decodeEnvelope parses the JSON envelope a tool returned.
func decodeEnvelope(t *testing.T, result *mcp.CallToolResult) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal([]byte(getResultText(result)), &env); err != nil {
		t.Fatalf("decode envelope: %v\ntext: %s", err, getResultText(result))
	}
	return env
}

// --- CreateProjectTool ---

func TestCreateProjectTool_Handle_Success(t *testing.T) {
	s := newTestStore(t)
	tool := NewCreateProjectTool(s)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"name": "forge-app",
		"tags": []any{"go", "mcp"},
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	env := decodeEnvelope(t, result)
	if !env.Success {
		t.Error("envelope should report success")
	}
	if env.Tool != "forge_create_project" {
		t.Errorf("tool_name = %s, want forge_create_project", env.Tool)
	}

	projects, err := s.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("got %d projects, want 1", len(projects))
	}

	// Seeding is on by default.
	files, err := s.ListFiles(projects[0].ID)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if len(files) == 0 {
		t.Error("new project should have starter documents")
	}
}

func TestCreateProjectTool_Handle_NoSeed(t *testing.T) {
	s := newTestStore(t)
	tool := NewCreateProjectTool(s)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"name":          "bare-app",
		"seed_template": false,
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	projects, _ := s.ListProjects()
	files, _ := s.ListFiles(projects[0].ID)
	if len(files) != 0 {
		t.Errorf("seed_template=false should leave project empty, got %d files", len(files))
	}
}

func TestCreateProjectTool_Handle_MissingName(t *testing.T) {
	s := newTestStore(t)
	tool := NewCreateProjectTool(s)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("should return error when name is missing")
	}
}

// --- CreateDocumentTool ---

func TestCreateDocumentTool_Handle_Success(t *testing.T) {
	s := newTestStore(t)
	p := newTestProject(t, s)
	tool := NewCreateDocumentTool(dispatch.New(s))

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"project_id": p.ID,
		"name":       "API Spec",
		"content":    "# API\n\nEndpoints go here.",
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	env := decodeEnvelope(t, result)
	if env.Tool != "create_document" {
		t.Errorf("tool_name = %s, want create_document", env.Tool)
	}

	files, _ := s.ListFiles(p.ID)
	if len(files) != 1 || files[0].Name != "API Spec" {
		t.Errorf("document not persisted: %+v", files)
	}
}

func TestCreateDocumentTool_Handle_MissingProjectID(t *testing.T) {
	s := newTestStore(t)
	tool := NewCreateDocumentTool(dispatch.New(s))

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"name": "Orphan Doc",
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("should return error when project_id is missing")
	}
}

func TestCreateDocumentTool_Handle_MissingName(t *testing.T) {
	s := newTestStore(t)
	p := newTestProject(t, s)
	tool := NewCreateDocumentTool(dispatch.New(s))

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"project_id": p.ID,
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("should return error when name is missing")
	}
	if !strings.Contains(getResultText(result), "name") {
		t.Errorf("error should mention 'name': %s", getResultText(result))
	}
}

func TestCreateDocumentTool_Handle_UnknownProject(t *testing.T) {
	s := newTestStore(t)
	tool := NewCreateDocumentTool(dispatch.New(s))

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"project_id": "no-such-project",
		"name":       "Doc",
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("should return error for unknown project")
	}
	if !strings.Contains(getResultText(result), string(dispatch.KindArtifactNotFound)) {
		t.Errorf("error should carry the not-found kind: %s", getResultText(result))
	}
}

// --- CreateMockupTool ---

func TestCreateMockupTool_Handle_ForcesMockupType(t *testing.T) {
	s := newTestStore(t)
	p := newTestProject(t, s)
	tool := NewCreateMockupTool(dispatch.New(s))

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"project_id": p.ID,
		"name":       "Dashboard",
		"content":    "<html><body>hi</body></html>",
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	files, _ := s.ListFiles(p.ID)
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1", len(files))
	}
	if files[0].Type != store.FileTypeMockup {
		t.Errorf("type = %s, want mockup", files[0].Type)
	}
	if files[0].Category != "Mockups" {
		t.Errorf("category = %s, want Mockups", files[0].Category)
	}
}

// --- CreateTasksTool ---

func TestCreateTasksTool_Handle_BestEffort(t *testing.T) {
	s := newTestStore(t)
	p := newTestProject(t, s)
	tool := NewCreateTasksTool(dispatch.New(s))

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"project_id": p.ID,
		"tasks": []any{
			map[string]any{"title": "Ship MVP", "priority": "high", "importance": "high"},
			map[string]any{"description": "no title here"},
			map[string]any{"title": "Write docs", "priority": "low", "importance": "low"},
		},
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	text := getResultText(result)
	if !strings.Contains(text, "Ship MVP") || !strings.Contains(text, "Write docs") {
		t.Errorf("result should list created tasks: %s", text)
	}
	if !strings.Contains(text, "q1") || !strings.Contains(text, "q4") {
		t.Errorf("result should carry derived quadrants: %s", text)
	}

	tasks, _ := s.ListTasks(p.ID)
	if len(tasks) != 2 {
		t.Errorf("got %d tasks, want 2 (invalid item skipped)", len(tasks))
	}
}

func TestCreateTasksTool_Handle_MissingTasks(t *testing.T) {
	s := newTestStore(t)
	p := newTestProject(t, s)
	tool := NewCreateTasksTool(dispatch.New(s))

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"project_id": p.ID,
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("should return error when tasks list is missing")
	}
}

// --- ModifyTaskTool ---

func TestModifyTaskTool_Handle_Success(t *testing.T) {
	s := newTestStore(t)
	p := newTestProject(t, s)
	task := &store.Task{ProjectID: p.ID, Title: "Old title"}
	if err := s.CreateTask(task); err != nil {
		t.Fatalf("setup: create task: %v", err)
	}

	tool := NewModifyTaskTool(dispatch.New(s))

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"project_id": p.ID,
		"task_id":    task.ID,
		"status":     "done",
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	got, _ := s.GetTask(task.ID)
	if got.Status != "done" {
		t.Errorf("status = %s, want done", got.Status)
	}
}

func TestModifyTaskTool_Handle_WrongProject(t *testing.T) {
	s := newTestStore(t)
	p := newTestProject(t, s)
	other := &store.Project{Name: "other-project"}
	if err := s.CreateProject(other); err != nil {
		t.Fatalf("setup: create project: %v", err)
	}
	task := &store.Task{ProjectID: other.ID, Title: "Theirs"}
	if err := s.CreateTask(task); err != nil {
		t.Fatalf("setup: create task: %v", err)
	}

	tool := NewModifyTaskTool(dispatch.New(s))

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"project_id": p.ID,
		"task_id":    task.ID,
		"status":     "done",
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("should return error when task belongs to another project")
	}
	if !strings.Contains(getResultText(result), string(dispatch.KindProjectMismatch)) {
		t.Errorf("error should carry the mismatch kind: %s", getResultText(result))
	}
}

// --- ModifyDocumentTool ---

func TestModifyDocumentTool_Handle_Success(t *testing.T) {
	s := newTestStore(t)
	p := newTestProject(t, s)
	f := &store.File{ProjectID: p.ID, Name: "Notes", Content: "old"}
	if err := s.CreateFile(f); err != nil {
		t.Fatalf("setup: create file: %v", err)
	}

	tool := NewModifyDocumentTool(dispatch.New(s))

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"project_id": p.ID,
		"file_id":    f.ID,
		"content":    "new content",
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	got, _ := s.GetFile(f.ID)
	if got.Content != "new content" {
		t.Errorf("content = %q, want %q", got.Content, "new content")
	}
}

// --- EditFileTool ---

func TestEditFileTool_Handle_Rewrite(t *testing.T) {
	s := newTestStore(t)
	p := newTestProject(t, s)
	f := &store.File{ProjectID: p.ID, Name: "Spec", Content: "Line one\nLine two"}
	if err := s.CreateFile(f); err != nil {
		t.Fatalf("setup: create file: %v", err)
	}

	oracle := &stubOracle{replies: []string{"Rewritten content"}}
	tool := NewEditFileTool(planner.New(s, oracle))

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"file_id":      f.ID,
		"project_id":   p.ID,
		"edit_type":    "rewrite",
		"instructions": "Rewrite it all",
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	text := getResultText(result)
	if !strings.Contains(text, "Rewritten content") {
		t.Errorf("result should contain the modified content: %s", text)
	}
	if !strings.Contains(text, "Line one") {
		t.Errorf("result should carry the original content for diffing: %s", text)
	}

	// The planner proposes; it never writes the store.
	got, _ := s.GetFile(f.ID)
	if got.Content != "Line one\nLine two" {
		t.Errorf("stored content should be unchanged, got %q", got.Content)
	}
}

func TestEditFileTool_Handle_DefaultsToRewrite(t *testing.T) {
	s := newTestStore(t)
	p := newTestProject(t, s)
	f := &store.File{ProjectID: p.ID, Name: "Spec", Content: "body"}
	if err := s.CreateFile(f); err != nil {
		t.Fatalf("setup: create file: %v", err)
	}

	oracle := &stubOracle{replies: []string{"fresh"}}
	tool := NewEditFileTool(planner.New(s, oracle))

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"file_id":      f.ID,
		"instructions": "Redo it",
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}
	if oracle.calls != 1 {
		t.Errorf("rewrite should make exactly one oracle call, made %d", oracle.calls)
	}
}

func TestEditFileTool_Handle_UnknownFile(t *testing.T) {
	s := newTestStore(t)
	oracle := &stubOracle{}
	tool := NewEditFileTool(planner.New(s, oracle))

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"file_id":      "no-such-file",
		"instructions": "Edit it",
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("should return error for unknown file")
	}
	if oracle.calls != 0 {
		t.Errorf("validation failures must not reach the oracle, made %d calls", oracle.calls)
	}
}

func TestEditFileTool_Handle_InvalidEditType(t *testing.T) {
	s := newTestStore(t)
	p := newTestProject(t, s)
	f := &store.File{ProjectID: p.ID, Name: "Spec", Content: "body"}
	if err := s.CreateFile(f); err != nil {
		t.Fatalf("setup: create file: %v", err)
	}

	tool := NewEditFileTool(planner.New(s, &stubOracle{}))

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"file_id":      f.ID,
		"edit_type":    "obliterate",
		"instructions": "Edit it",
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("should return error for invalid edit_type")
	}
}

// --- ChatTool ---

func TestChatTool_Handle_Success(t *testing.T) {
	s := newTestStore(t)
	p := newTestProject(t, s)

	tool := NewChatTool(chat.New(&stubOracle{replies: []string{"Here is my answer."}}), s)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"project_id": p.ID,
		"message":    "What should I build first?",
		"history": []any{
			map[string]any{"role": "user", "content": "Hi"},
			map[string]any{"role": "assistant", "content": "Hello!"},
		},
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}
	if got := getResultText(result); got != "Here is my answer." {
		t.Errorf("reply = %q, want the oracle's answer", got)
	}
}

func TestChatTool_Handle_UnknownProject(t *testing.T) {
	s := newTestStore(t)
	tool := NewChatTool(chat.New(&stubOracle{}), s)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"project_id": "no-such-project",
		"message":    "Hello?",
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("should return error for unknown project")
	}
}

func TestChatTool_Handle_MissingMessage(t *testing.T) {
	s := newTestStore(t)
	p := newTestProject(t, s)
	tool := NewChatTool(chat.New(&stubOracle{}), s)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"project_id": p.ID,
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("should return error when message is missing")
	}
}

// --- EditSelectionTool ---

func TestEditSelectionTool_Handle_Success(t *testing.T) {
	tool := NewEditSelectionTool(chat.New(&stubOracle{replies: []string{"const x = 2;"}}))

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"selected_text": "var x = 2;",
		"instruction":   "use const",
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}
	if got := getResultText(result); got != "const x = 2;" {
		t.Errorf("edited = %q, want %q", got, "const x = 2;")
	}
}

func TestEditSelectionTool_Handle_MissingSelection(t *testing.T) {
	tool := NewEditSelectionTool(chat.New(&stubOracle{}))

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"instruction": "use const",
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("should return error when selection is missing")
	}
}

// --- ListModelsTool ---

func TestListModelsTool_Handle(t *testing.T) {
	tool := NewListModelsTool()

	result, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	text := getResultText(result)
	for _, tier := range []string{"powerful", "fast", "efficient"} {
		if !strings.Contains(text, tier) {
			t.Errorf("result should list the %s tier: %s", tier, text)
		}
	}
	if !strings.Contains(text, "gemini-flash-latest") {
		t.Errorf("result should carry concrete model ids: %s", text)
	}
}
