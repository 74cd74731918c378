// Package store is the record store for projects, files, and tasks.
//
// It is deliberately dumb persistence: keyed reads and writes over SQLite,
// no business rules. Validation, ownership checks, and derived fields all
// live with the callers — the store only guarantees durability and a
// NotFound sentinel.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

// Config holds store configuration.
type Config struct {
	DataDir string
}

// DefaultConfig returns the default store configuration. The database
// lives under FORGE_DATA_DIR when set, otherwise ~/.forge.
func DefaultConfig() Config {
	if dir := os.Getenv("FORGE_DATA_DIR"); dir != "" {
		return Config{DataDir: dir}
	}
	home, _ := os.UserHomeDir()
	return Config{DataDir: filepath.Join(home, ".forge")}
}

// Store is the SQLite-backed record store.
type Store struct {
	db *sql.DB
}

// New creates the data directory if needed, opens SQLite with WAL mode,
// and runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "forge.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("store: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("store: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS projects (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			status      TEXT NOT NULL DEFAULT 'planning',
			tags        TEXT NOT NULL DEFAULT '[]',
			difficulty  TEXT NOT NULL DEFAULT 'medium',
			created_at  TEXT NOT NULL,
			last_edited TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS files (
			id          TEXT PRIMARY KEY,
			project_id  TEXT NOT NULL,
			name        TEXT NOT NULL,
			type        TEXT NOT NULL DEFAULT 'doc',
			category    TEXT NOT NULL DEFAULT 'Docs',
			content     TEXT NOT NULL DEFAULT '',
			priority    INTEGER NOT NULL DEFAULT 5,
			created_at  TEXT NOT NULL,
			last_edited TEXT NOT NULL,
			FOREIGN KEY (project_id) REFERENCES projects(id)
		);

		CREATE INDEX IF NOT EXISTS idx_files_project ON files(project_id);

		CREATE TABLE IF NOT EXISTS tasks (
			id           TEXT PRIMARY KEY,
			project_id   TEXT NOT NULL,
			title        TEXT NOT NULL,
			description  TEXT NOT NULL DEFAULT '',
			status       TEXT NOT NULL DEFAULT 'todo',
			priority     TEXT NOT NULL DEFAULT 'medium',
			quadrant     TEXT NOT NULL DEFAULT 'q4',
			difficulty   TEXT NOT NULL DEFAULT 'medium',
			linked_files TEXT NOT NULL DEFAULT '[]',
			due_date     TEXT,
			created_at   TEXT NOT NULL,
			FOREIGN KEY (project_id) REFERENCES projects(id)
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// ─── Projects ────────────────────────────────────────────────────────────────

// CreateProject inserts a project, assigning its id and timestamps.
func (s *Store) CreateProject(p *Project) error {
	p.ID = uuid.NewString()
	p.CreatedAt = now()
	p.LastEdited = p.CreatedAt
	if p.Status == "" {
		p.Status = "planning"
	}
	if p.Difficulty == "" {
		p.Difficulty = "medium"
	}

	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return fmt.Errorf("store: marshal tags: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO projects (id, name, status, tags, difficulty, created_at, last_edited)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Status, string(tags), p.Difficulty, p.CreatedAt, p.LastEdited,
	)
	if err != nil {
		return fmt.Errorf("store: insert project: %w", err)
	}
	return nil
}

// GetProject reads a project by id. Returns ErrNotFound if it doesn't exist.
func (s *Store) GetProject(id string) (*Project, error) {
	row := s.db.QueryRow(
		`SELECT id, name, status, tags, difficulty, created_at, last_edited
		 FROM projects WHERE id = ?`, id,
	)

	var p Project
	var tags string
	err := row.Scan(&p.ID, &p.Name, &p.Status, &tags, &p.Difficulty, &p.CreatedAt, &p.LastEdited)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get project: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
		return nil, fmt.Errorf("store: parse project tags: %w", err)
	}
	return &p, nil
}

// ListProjects returns all projects, most recently edited first.
func (s *Store) ListProjects() ([]Project, error) {
	rows, err := s.db.Query(
		`SELECT id, name, status, tags, difficulty, created_at, last_edited
		 FROM projects ORDER BY last_edited DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("store: list projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		var tags string
		if err := rows.Scan(&p.ID, &p.Name, &p.Status, &tags, &p.Difficulty, &p.CreatedAt, &p.LastEdited); err != nil {
			return nil, fmt.Errorf("store: scan project: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
			return nil, fmt.Errorf("store: parse project tags: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// TouchProject updates a project's last_edited timestamp.
func (s *Store) TouchProject(id string) error {
	res, err := s.db.Exec(`UPDATE projects SET last_edited = ? WHERE id = ?`, now(), id)
	if err != nil {
		return fmt.Errorf("store: touch project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProject removes a project and everything it owns.
func (s *Store) DeleteProject(id string) error {
	res, err := s.db.Exec(`DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if _, err := s.db.Exec(`DELETE FROM files WHERE project_id = ?`, id); err != nil {
		return fmt.Errorf("store: delete project files: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM tasks WHERE project_id = ?`, id); err != nil {
		return fmt.Errorf("store: delete project tasks: %w", err)
	}
	return nil
}

// ─── Files ───────────────────────────────────────────────────────────────────

// CreateFile inserts a file, assigning its id and timestamps.
func (s *Store) CreateFile(f *File) error {
	f.ID = uuid.NewString()
	f.CreatedAt = now()
	f.LastEdited = f.CreatedAt
	if f.Type == "" {
		f.Type = FileTypeDoc
	}
	if f.Category == "" {
		f.Category = "Docs"
	}
	if f.Priority == 0 {
		f.Priority = 5
	}

	_, err := s.db.Exec(
		`INSERT INTO files (id, project_id, name, type, category, content, priority, created_at, last_edited)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.ProjectID, f.Name, f.Type, f.Category, f.Content, f.Priority, f.CreatedAt, f.LastEdited,
	)
	if err != nil {
		return fmt.Errorf("store: insert file: %w", err)
	}
	return nil
}

// GetFile reads a file by id. Returns ErrNotFound if it doesn't exist.
func (s *Store) GetFile(id string) (*File, error) {
	row := s.db.QueryRow(
		`SELECT id, project_id, name, type, category, content, priority, created_at, last_edited
		 FROM files WHERE id = ?`, id,
	)

	var f File
	err := row.Scan(&f.ID, &f.ProjectID, &f.Name, &f.Type, &f.Category, &f.Content, &f.Priority, &f.CreatedAt, &f.LastEdited)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get file: %w", err)
	}
	return &f, nil
}

// ListFiles returns all files belonging to a project.
func (s *Store) ListFiles(projectID string) ([]File, error) {
	rows, err := s.db.Query(
		`SELECT id, project_id, name, type, category, content, priority, created_at, last_edited
		 FROM files WHERE project_id = ? ORDER BY name`, projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("store: list files: %w", err)
	}
	defer rows.Close()

	var files []File
	for rows.Next() {
		var f File
		if err := rows.Scan(&f.ID, &f.ProjectID, &f.Name, &f.Type, &f.Category, &f.Content, &f.Priority, &f.CreatedAt, &f.LastEdited); err != nil {
			return nil, fmt.Errorf("store: scan file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// fileColumns maps patchable field names to their columns. Anything not
// listed here is ignored by UpdateFile.
var fileColumns = map[string]string{
	"name":     "name",
	"content":  "content",
	"category": "category",
	"type":     "type",
}

// UpdateFile applies a partial update to a file. Unknown field names are
// silently dropped; last_edited is always refreshed.
func (s *Store) UpdateFile(id string, fields map[string]any) error {
	set := "last_edited = ?"
	args := []any{now()}
	for name, col := range fileColumns {
		if v, ok := fields[name]; ok {
			set += ", " + col + " = ?"
			args = append(args, v)
		}
	}
	args = append(args, id)

	res, err := s.db.Exec(`UPDATE files SET `+set+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("store: update file: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteFile removes a file by id.
func (s *Store) DeleteFile(id string) error {
	res, err := s.db.Exec(`DELETE FROM files WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete file: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ─── Tasks ───────────────────────────────────────────────────────────────────

// CreateTask inserts a task, assigning its id and creation timestamp.
func (s *Store) CreateTask(t *Task) error {
	t.ID = uuid.NewString()
	t.CreatedAt = now()
	if t.Status == "" {
		t.Status = "todo"
	}
	if t.Priority == "" {
		t.Priority = "medium"
	}
	if t.Difficulty == "" {
		t.Difficulty = "medium"
	}

	linked, err := json.Marshal(t.LinkedFiles)
	if err != nil {
		return fmt.Errorf("store: marshal linked files: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO tasks (id, project_id, title, description, status, priority, quadrant, difficulty, linked_files, due_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.ProjectID, t.Title, t.Description, t.Status, t.Priority, t.Quadrant, t.Difficulty, string(linked), t.DueDate, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("store: insert task: %w", err)
	}
	return nil
}

// GetTask reads a task by id. Returns ErrNotFound if it doesn't exist.
func (s *Store) GetTask(id string) (*Task, error) {
	row := s.db.QueryRow(
		`SELECT id, project_id, title, description, status, priority, quadrant, difficulty, linked_files, due_date, created_at
		 FROM tasks WHERE id = ?`, id,
	)

	var t Task
	var linked string
	err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.Quadrant, &t.Difficulty, &linked, &t.DueDate, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get task: %w", err)
	}
	if err := json.Unmarshal([]byte(linked), &t.LinkedFiles); err != nil {
		return nil, fmt.Errorf("store: parse linked files: %w", err)
	}
	return &t, nil
}

// ListTasks returns all tasks belonging to a project.
func (s *Store) ListTasks(projectID string) ([]Task, error) {
	rows, err := s.db.Query(
		`SELECT id, project_id, title, description, status, priority, quadrant, difficulty, linked_files, due_date, created_at
		 FROM tasks WHERE project_id = ? ORDER BY created_at`, projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("store: list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		var linked string
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.Quadrant, &t.Difficulty, &linked, &t.DueDate, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: scan task: %w", err)
		}
		if err := json.Unmarshal([]byte(linked), &t.LinkedFiles); err != nil {
			return nil, fmt.Errorf("store: parse linked files: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// taskColumns maps patchable field names to their columns. Anything not
// listed here is ignored by UpdateTask.
var taskColumns = map[string]string{
	"title":       "title",
	"description": "description",
	"status":      "status",
	"priority":    "priority",
	"quadrant":    "quadrant",
	"difficulty":  "difficulty",
	"due_date":    "due_date",
}

// UpdateTask applies a partial update to a task. Unknown field names are
// silently dropped.
func (s *Store) UpdateTask(id string, fields map[string]any) error {
	set := ""
	var args []any
	for name, col := range taskColumns {
		if v, ok := fields[name]; ok {
			if set != "" {
				set += ", "
			}
			set += col + " = ?"
			args = append(args, v)
		}
	}
	if set == "" {
		// Nothing patchable; still report missing ids.
		_, err := s.GetTask(id)
		return err
	}
	args = append(args, id)

	res, err := s.db.Exec(`UPDATE tasks SET `+set+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("store: update task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTask removes a task by id.
func (s *Store) DeleteTask(id string) error {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
