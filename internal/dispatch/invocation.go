package dispatch

import (
	"fmt"
	"strings"
)

// Invocation is a structured intent asserted by the AI layer: a tool name
// plus a loosely-typed argument bag. The dispatcher decodes the bag into a
// concrete per-tool argument struct before doing anything with it.
type Invocation struct {
	Tool      string         `json:"tool_name"`
	Arguments map[string]any `json:"arguments"`
}

// Result is the outcome of a successfully executed invocation.
type Result struct {
	Success bool   `json:"success"`
	Tool    string `json:"tool_name"`
	Payload any    `json:"result"`
	Message string `json:"message"`
}

// CreatedFile is the payload of create_document / create_mockup.
type CreatedFile struct {
	FileID string `json:"file_id"`
	Name   string `json:"name"`
}

// CreatedTask describes one task created by create_tasks.
type CreatedTask struct {
	TaskID   string `json:"task_id"`
	Title    string `json:"title"`
	Quadrant string `json:"quadrant"`
}

// TaskFailure describes one task item that could not be created.
type TaskFailure struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// CreateTasksPayload is the payload of create_tasks. Creation is
// best-effort: a failure on one item never rolls back the others, so both
// lists can be non-empty at once.
type CreateTasksPayload struct {
	Created []CreatedTask `json:"created"`
	Failed  []TaskFailure `json:"failed,omitempty"`
}

// ModifiedRecord is the payload of modify_task / modify_document.
type ModifiedRecord struct {
	ID      string   `json:"id"`
	Updated []string `json:"updated_fields"`
}

// ─── Per-tool argument structs ───────────────────────────────────────────────

type createFileArgs struct {
	Name     string
	Content  string
	Category string
}

func decodeCreateFileArgs(tool string, args map[string]any) (createFileArgs, *Error) {
	name := stringArg(args, "name")
	if name == "" {
		return createFileArgs{}, Errorf(KindMissingArgument, "%s requires a 'name' argument", tool)
	}
	return createFileArgs{
		Name:     name,
		Content:  stringArg(args, "content"),
		Category: stringArg(args, "category"),
	}, nil
}

type taskItem struct {
	Title       string
	Description string
	Priority    string
	Importance  string
	Difficulty  string
	DueDate     string
}

type createTasksArgs struct {
	Items []taskItem
}

func decodeCreateTasksArgs(args map[string]any) (createTasksArgs, *Error) {
	raw, ok := args["tasks"]
	if !ok {
		return createTasksArgs{}, Errorf(KindMissingArgument, "create_tasks requires a 'tasks' list")
	}

	list, ok := raw.([]any)
	if !ok || len(list) == 0 {
		return createTasksArgs{}, Errorf(KindMissingArgument, "create_tasks requires a non-empty 'tasks' list")
	}

	items := make([]taskItem, 0, len(list))
	for _, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			// Shape errors are reported per item at execution time; keep
			// the slot so indexes stay aligned with the input.
			items = append(items, taskItem{})
			continue
		}
		items = append(items, taskItem{
			Title:       stringArg(m, "title"),
			Description: stringArg(m, "description"),
			Priority:    stringArg(m, "priority"),
			Importance:  stringArg(m, "importance"),
			Difficulty:  stringArg(m, "difficulty"),
			DueDate:     stringArg(m, "due_date"),
		})
	}
	return createTasksArgs{Items: items}, nil
}

type modifyArgs struct {
	ID     string
	Fields map[string]any
}

// decodeModifyArgs pulls the target id out of the bag and keeps only the
// allow-listed fields. Unknown fields are dropped, not errored.
func decodeModifyArgs(tool, idKey string, allowed []string, args map[string]any) (modifyArgs, *Error) {
	id := stringArg(args, idKey)
	if id == "" {
		return modifyArgs{}, Errorf(KindMissingArgument, "%s requires a '%s' argument", tool, idKey)
	}

	fields := make(map[string]any)
	for _, name := range allowed {
		if v, ok := args[name]; ok {
			fields[name] = v
		}
	}
	return modifyArgs{ID: id, Fields: fields}, nil
}

func stringArg(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}
