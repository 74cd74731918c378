// Package planner turns a free-text edit instruction into a reviewable
// patch against a stored file.
//
// For insert and replace operations the planner runs a two-stage protocol
// with the text-generation oracle: first locate (which line, or which line
// range), then generate (only the new content). The parsed location is an
// explicit intermediate value, so each stage is testable with a stub
// oracle. Rewrite is a single oracle call.
//
// The planner never writes the store. It returns the original and
// modified content side by side; committing the change is the caller's
// decision.
package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/forgehq/forge/internal/dispatch"
	"github.com/forgehq/forge/internal/oracle"
	"github.com/forgehq/forge/internal/patch"
	"github.com/forgehq/forge/internal/store"
)

// Operation is the kind of edit to perform.
type Operation string

const (
	OpRewrite Operation = "rewrite"
	OpInsert  Operation = "insert"
	OpReplace Operation = "replace"
)

// ValidateOperation returns an error if the operation is not recognized.
func ValidateOperation(op Operation) error {
	switch op {
	case OpRewrite, OpInsert, OpReplace:
		return nil
	}
	return fmt.Errorf("invalid edit operation %q: must be one of: rewrite, insert, replace", op)
}

// EditRequest describes one edit: which file, what to do, how.
type EditRequest struct {
	FileID       string
	ProjectID    string
	Operation    Operation
	Instructions string
}

// PatchResult is the unit returned for diff review. OriginalContent is
// exactly what the store held when the request was read; it is never
// mutated in place.
type PatchResult struct {
	FileID          string    `json:"file_id"`
	FileName        string    `json:"file_name"`
	OriginalContent string    `json:"original_content"`
	ModifiedContent string    `json:"modified_content"`
	Operation       Operation `json:"edit_type"`
	Summary         string    `json:"edit_summary"`
}

// Store is the slice of the record store the planner needs: read-only
// access to files.
type Store interface {
	GetFile(id string) (*store.File, error)
}

// Planner orchestrates the locate/generate protocol for one edit request.
type Planner struct {
	store  Store
	oracle oracle.Client
}

// New creates a Planner.
func New(s Store, o oracle.Client) *Planner {
	return &Planner{store: s, oracle: o}
}

// EditFile runs the edit protocol and returns the resulting patch. All
// validation happens before the first oracle call; an oracle failure
// aborts the whole operation with nothing written anywhere.
func (p *Planner) EditFile(ctx context.Context, req EditRequest) (*PatchResult, error) {
	if strings.TrimSpace(req.Instructions) == "" {
		return nil, dispatch.Errorf(dispatch.KindMissingArgument, "edit requires non-empty instructions")
	}
	if err := ValidateOperation(req.Operation); err != nil {
		return nil, dispatch.Errorf(dispatch.KindMissingArgument, "%v", err)
	}

	f, err := p.store.GetFile(req.FileID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, dispatch.Errorf(dispatch.KindArtifactNotFound, "file %q not found", req.FileID)
	}
	if err != nil {
		return nil, fmt.Errorf("planner: load file: %w", err)
	}
	if req.ProjectID != "" && f.ProjectID != req.ProjectID {
		return nil, dispatch.Errorf(dispatch.KindProjectMismatch, "file %q belongs to a different project", req.FileID)
	}

	var modified string
	switch req.Operation {
	case OpRewrite:
		modified, err = p.rewrite(ctx, f, req.Instructions)
	case OpInsert:
		modified, err = p.insert(ctx, f, req.Instructions)
	case OpReplace:
		modified, err = p.replace(ctx, f, req.Instructions)
	}
	if err != nil {
		return nil, err
	}

	return &PatchResult{
		FileID:          f.ID,
		FileName:        f.Name,
		OriginalContent: f.Content,
		ModifiedContent: modified,
		Operation:       req.Operation,
		Summary:         summarize(req.Instructions),
	}, nil
}

// rewrite asks the oracle for the whole new file in one shot.
func (p *Planner) rewrite(ctx context.Context, f *store.File, instructions string) (string, error) {
	reply, err := p.generate(ctx, rewritePrompt(f, instructions))
	if err != nil {
		return "", err
	}
	return reply, nil
}

// insert locates the best insertion point, then generates only the new
// content and splices it in.
func (p *Planner) insert(ctx context.Context, f *store.File, instructions string) (string, error) {
	numbered := patch.NumberLines(f.Content)

	locReply, err := p.generate(ctx, locateInsertPrompt(f, numbered, instructions))
	if err != nil {
		return "", err
	}
	// A malformed location degrades to append-at-end; it never aborts.
	loc := ParseLocation(locReply, ModePoint, patch.LineCount(f.Content))

	insertion, err := p.generate(ctx, generateInsertPrompt(f, loc.AfterLine, instructions))
	if err != nil {
		return "", err
	}

	return patch.ApplyInsert(f.Content, loc.AfterLine, insertion), nil
}

// replace locates the target line range, shows the oracle the text it is
// replacing, then splices in the generated replacement.
func (p *Planner) replace(ctx context.Context, f *store.File, instructions string) (string, error) {
	numbered := patch.NumberLines(f.Content)

	locReply, err := p.generate(ctx, locateReplacePrompt(f, numbered, instructions))
	if err != nil {
		return "", err
	}
	loc := ParseLocation(locReply, ModeRange, patch.LineCount(f.Content))

	current := patch.ExtractRange(f.Content, loc.StartLine, loc.EndLine)
	replacement, err := p.generate(ctx, generateReplacePrompt(f, current, instructions))
	if err != nil {
		return "", err
	}

	return patch.ApplyReplace(f.Content, loc.StartLine, loc.EndLine, replacement), nil
}

// generate runs one oracle call and cleans up the reply.
func (p *Planner) generate(ctx context.Context, prompt string) (string, error) {
	reply, err := p.oracle.Generate(ctx, prompt)
	if err != nil {
		return "", dispatch.WrapError(dispatch.KindOracleFailure, err, "text generation failed")
	}
	return StripCodeFence(strings.TrimSpace(reply)), nil
}

// summarize truncates instructions for the patch summary.
func summarize(instructions string) string {
	instructions = strings.TrimSpace(instructions)
	const max = 100
	if len(instructions) <= max {
		return instructions
	}
	return instructions[:max] + "..."
}
