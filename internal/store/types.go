package store

// Project is a user workspace that owns files and tasks.
type Project struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Status     string   `json:"status"`     // planning, building, shipped
	Tags       []string `json:"tags"`
	Difficulty string   `json:"difficulty"` // low, medium, high
	CreatedAt  string   `json:"created_at"`
	LastEdited string   `json:"last_edited"`
}

// File is a stored text artifact: a document or a UI mockup.
type File struct {
	ID         string `json:"id"`
	ProjectID  string `json:"project_id"`
	Name       string `json:"name"`
	Type       string `json:"type"`     // doc, mockup
	Category   string `json:"category"` // Docs, Mockups, ...
	Content    string `json:"content"`
	Priority   int    `json:"priority"` // 1-10, 10 is highest
	CreatedAt  string `json:"created_at"`
	LastEdited string `json:"last_edited"`
}

// File type values.
const (
	FileTypeDoc    = "doc"
	FileTypeMockup = "mockup"
)

// Task is a unit of work within a project.
type Task struct {
	ID          string   `json:"id"`
	ProjectID   string   `json:"project_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`   // todo, in-progress, done
	Priority    string   `json:"priority"` // low, medium, high
	Quadrant    string   `json:"quadrant"` // q1..q4
	Difficulty  string   `json:"difficulty"`
	LinkedFiles []string `json:"linked_files"`
	DueDate     *string  `json:"due_date,omitempty"`
	CreatedAt   string   `json:"created_at"`
}
