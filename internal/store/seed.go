package store

// starterDocs are created for every new project so users don't face an
// empty workspace.
var starterDocs = []File{
	{Name: "Project-Overview.md", Category: "Docs", Type: FileTypeDoc,
		Content: "# Project Overview\n\n## Core Concept\n\n## Target User\n\n## Key Features"},
	{Name: "Implementation-Plan.md", Category: "Docs", Type: FileTypeDoc,
		Content: "# Implementation Plan\n\n## Phase 1\n\n## Phase 2"},
	{Name: "Technical-Stack.md", Category: "Docs", Type: FileTypeDoc,
		Content: "# Technical Stack\n\n- Frontend:\n- Backend:\n- Database:"},
	{Name: "App-Structure.md", Category: "Docs", Type: FileTypeDoc,
		Content: "# App Structure\n\n- /app\n  - /src"},
	{Name: "UI-Guidelines.md", Category: "Docs", Type: FileTypeDoc,
		Content: "# UI Guidelines\n\n- Colors:\n- Typography:"},
}

// SeedProject creates the starter document set for a freshly created
// project. Best-effort is not acceptable here: any failure is returned so
// the caller can surface a broken workspace immediately.
func (s *Store) SeedProject(projectID string) error {
	for _, tmpl := range starterDocs {
		f := tmpl
		f.ProjectID = projectID
		if err := s.CreateFile(&f); err != nil {
			return err
		}
	}
	return nil
}
