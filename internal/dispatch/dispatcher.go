// Package dispatch validates and executes AI tool invocations as project
// mutations.
//
// Each invocation names a tool and carries a loosely-typed argument bag.
// The dispatcher decodes the bag into a concrete per-tool struct, enforces
// that referenced records belong to the claimed project, derives dependent
// fields (task quadrants), and performs the mutation through the record
// store. All validation happens before the first write.
package dispatch

import (
	"errors"
	"fmt"

	"github.com/forgehq/forge/internal/store"
)

// Store is the slice of the record store the dispatcher needs.
type Store interface {
	GetProject(id string) (*store.Project, error)
	TouchProject(id string) error
	CreateFile(f *store.File) error
	GetFile(id string) (*store.File, error)
	UpdateFile(id string, fields map[string]any) error
	CreateTask(t *store.Task) error
	GetTask(id string) (*store.Task, error)
	UpdateTask(id string, fields map[string]any) error
}

// Field allow-lists for the modify tools. Anything outside these is
// silently dropped before it reaches the store.
var (
	documentFields = []string{"name", "content", "category", "type"}
	taskFields     = []string{"title", "description", "status", "priority", "quadrant", "difficulty", "due_date"}
)

// Dispatcher executes tool invocations against the record store.
type Dispatcher struct {
	store Store
}

// New creates a Dispatcher backed by the given store.
func New(s Store) *Dispatcher {
	return &Dispatcher{store: s}
}

// Execute validates and runs one invocation scoped to a project. It
// returns a Result on success and a *Error (wrapped in the error) on any
// validation or execution failure.
func (d *Dispatcher) Execute(inv Invocation, projectID string) (*Result, error) {
	switch inv.Tool {
	case "create_document":
		return d.createFile(inv, projectID, false)
	case "create_mockup":
		return d.createFile(inv, projectID, true)
	case "create_tasks":
		return d.createTasks(inv, projectID)
	case "modify_document":
		return d.modifyDocument(inv, projectID)
	case "modify_task":
		return d.modifyTask(inv, projectID)
	default:
		return nil, Errorf(KindUnknownTool, "unknown tool %q", inv.Tool)
	}
}

func (d *Dispatcher) requireProject(projectID string) error {
	_, err := d.store.GetProject(projectID)
	if errors.Is(err, store.ErrNotFound) {
		return Errorf(KindArtifactNotFound, "project %q not found", projectID)
	}
	if err != nil {
		return fmt.Errorf("dispatch: load project: %w", err)
	}
	return nil
}

func (d *Dispatcher) createFile(inv Invocation, projectID string, mockup bool) (*Result, error) {
	args, derr := decodeCreateFileArgs(inv.Tool, inv.Arguments)
	if derr != nil {
		return nil, derr
	}
	if err := d.requireProject(projectID); err != nil {
		return nil, err
	}

	f := &store.File{
		ProjectID: projectID,
		Name:      args.Name,
		Content:   args.Content,
		Category:  args.Category,
		Type:      store.FileTypeDoc,
	}
	if mockup {
		f.Type = store.FileTypeMockup
		f.Category = "Mockups"
	}

	if err := d.store.CreateFile(f); err != nil {
		return nil, fmt.Errorf("dispatch: create file: %w", err)
	}
	if err := d.store.TouchProject(projectID); err != nil {
		return nil, fmt.Errorf("dispatch: touch project: %w", err)
	}

	return &Result{
		Success: true,
		Tool:    inv.Tool,
		Payload: CreatedFile{FileID: f.ID, Name: f.Name},
		Message: fmt.Sprintf("Created %q", f.Name),
	}, nil
}

func (d *Dispatcher) createTasks(inv Invocation, projectID string) (*Result, error) {
	args, derr := decodeCreateTasksArgs(inv.Arguments)
	if derr != nil {
		return nil, derr
	}
	if err := d.requireProject(projectID); err != nil {
		return nil, err
	}

	// Best-effort: each item stands alone, a failure on item N leaves
	// items 1..N-1 committed.
	payload := CreateTasksPayload{}
	for i, item := range args.Items {
		if item.Title == "" {
			payload.Failed = append(payload.Failed, TaskFailure{
				Index: i, Reason: "task requires a 'title'",
			})
			continue
		}

		task := &store.Task{
			ProjectID:   projectID,
			Title:       item.Title,
			Description: item.Description,
			Priority:    normalizeLevel(item.Priority),
			Quadrant:    Quadrant(item.Priority, item.Importance),
			Difficulty:  item.Difficulty,
		}
		if item.DueDate != "" {
			due := item.DueDate
			task.DueDate = &due
		}

		if err := d.store.CreateTask(task); err != nil {
			payload.Failed = append(payload.Failed, TaskFailure{
				Index: i, Reason: fmt.Sprintf("store write failed: %v", err),
			})
			continue
		}
		payload.Created = append(payload.Created, CreatedTask{
			TaskID: task.ID, Title: task.Title, Quadrant: task.Quadrant,
		})
	}

	if len(payload.Created) == 0 {
		return nil, Errorf(KindMissingArgument,
			"no tasks could be created: every item was invalid (%d failures)", len(payload.Failed))
	}
	if err := d.store.TouchProject(projectID); err != nil {
		return nil, fmt.Errorf("dispatch: touch project: %w", err)
	}

	msg := fmt.Sprintf("Created %d task(s)", len(payload.Created))
	if len(payload.Failed) > 0 {
		msg = fmt.Sprintf("%s, %d item(s) failed", msg, len(payload.Failed))
	}
	return &Result{Success: true, Tool: inv.Tool, Payload: payload, Message: msg}, nil
}

func (d *Dispatcher) modifyDocument(inv Invocation, projectID string) (*Result, error) {
	args, derr := decodeModifyArgs(inv.Tool, "file_id", documentFields, inv.Arguments)
	if derr != nil {
		return nil, derr
	}

	f, err := d.store.GetFile(args.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, Errorf(KindArtifactNotFound, "file %q not found", args.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("dispatch: load file: %w", err)
	}
	if f.ProjectID != projectID {
		return nil, Errorf(KindProjectMismatch, "file %q belongs to a different project", args.ID)
	}

	if err := d.store.UpdateFile(args.ID, args.Fields); err != nil {
		return nil, fmt.Errorf("dispatch: update file: %w", err)
	}
	if err := d.store.TouchProject(projectID); err != nil {
		return nil, fmt.Errorf("dispatch: touch project: %w", err)
	}

	return &Result{
		Success: true,
		Tool:    inv.Tool,
		Payload: ModifiedRecord{ID: args.ID, Updated: fieldNames(args.Fields)},
		Message: fmt.Sprintf("Updated file %q", f.Name),
	}, nil
}

func (d *Dispatcher) modifyTask(inv Invocation, projectID string) (*Result, error) {
	args, derr := decodeModifyArgs(inv.Tool, "task_id", taskFields, inv.Arguments)
	if derr != nil {
		return nil, derr
	}

	task, err := d.store.GetTask(args.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, Errorf(KindArtifactNotFound, "task %q not found", args.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("dispatch: load task: %w", err)
	}
	if task.ProjectID != projectID {
		return nil, Errorf(KindProjectMismatch, "task %q belongs to a different project", args.ID)
	}

	if err := d.store.UpdateTask(args.ID, args.Fields); err != nil {
		return nil, fmt.Errorf("dispatch: update task: %w", err)
	}
	if err := d.store.TouchProject(projectID); err != nil {
		return nil, fmt.Errorf("dispatch: touch project: %w", err)
	}

	return &Result{
		Success: true,
		Tool:    inv.Tool,
		Payload: ModifiedRecord{ID: args.ID, Updated: fieldNames(args.Fields)},
		Message: fmt.Sprintf("Updated task %q", task.Title),
	}, nil
}

func fieldNames(fields map[string]any) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	return names
}
