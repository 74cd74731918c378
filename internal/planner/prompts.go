package planner

import (
	"fmt"

	"github.com/forgehq/forge/internal/store"
)

// kindGuidance returns the style constraints that differ between plain
// documents and UI mockups. This is the only place artifact kind may
// influence an edit — the location math and patch application are
// identical for both.
func kindGuidance(fileType string) string {
	if fileType == store.FileTypeMockup {
		return "The file is a UI mockup. Produce complete, self-contained markup: " +
			"every component you emit must include its styling and close all tags. " +
			"Match the visual language of the existing mockup."
	}
	return "The file is a text document. Match its tone, heading structure, and " +
		"formatting conventions."
}

func rewritePrompt(f *store.File, instructions string) string {
	return fmt.Sprintf(
		"You are editing the file %q.\n%s\n\n"+
			"CURRENT CONTENT:\n%s\n\n"+
			"INSTRUCTION: %s\n\n"+
			"Rewrite the entire file according to the instruction. "+
			"Return ONLY the full new file content — no explanations, no markdown fences.",
		f.Name, kindGuidance(f.Type), f.Content, instructions,
	)
}

func locateInsertPrompt(f *store.File, numbered, instructions string) string {
	return fmt.Sprintf(
		"You are editing the file %q. The content is shown with 1-based line numbers.\n\n"+
			"%s\n\n"+
			"INSTRUCTION: %s\n\n"+
			"Choose the best line to insert the new content AFTER. "+
			"Reply with a JSON object only, in this exact shape:\n"+
			`{"insert_after_line": <line number>, "reason": "<one sentence>"}`,
		f.Name, numbered, instructions,
	)
}

func locateReplacePrompt(f *store.File, numbered, instructions string) string {
	return fmt.Sprintf(
		"You are editing the file %q. The content is shown with 1-based line numbers.\n\n"+
			"%s\n\n"+
			"INSTRUCTION: %s\n\n"+
			"Choose the inclusive line range that should be replaced. "+
			"Reply with a JSON object only, in this exact shape:\n"+
			`{"start_line": <first line>, "end_line": <last line>, "reason": "<one sentence>"}`,
		f.Name, numbered, instructions,
	)
}

func generateInsertPrompt(f *store.File, afterLine int, instructions string) string {
	return fmt.Sprintf(
		"You are editing the file %q.\n%s\n\n"+
			"CURRENT CONTENT:\n%s\n\n"+
			"INSTRUCTION: %s\n\n"+
			"Generate ONLY the new content to insert after line %d. "+
			"Do not repeat existing content. No explanations, no markdown fences.",
		f.Name, kindGuidance(f.Type), f.Content, instructions, afterLine,
	)
}

func generateReplacePrompt(f *store.File, current, instructions string) string {
	return fmt.Sprintf(
		"You are editing the file %q.\n%s\n\n"+
			"FULL CONTENT FOR CONTEXT:\n%s\n\n"+
			"SECTION BEING REPLACED:\n%s\n\n"+
			"INSTRUCTION: %s\n\n"+
			"Generate ONLY the replacement for that section. "+
			"Do not repeat surrounding content. No explanations, no markdown fences.",
		f.Name, kindGuidance(f.Type), f.Content, current, instructions,
	)
}
