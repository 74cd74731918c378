package planner

import (
	"encoding/json"
	"strings"
)

// LocateMode selects which JSON shape the model was asked to produce.
type LocateMode string

const (
	// ModePoint expects {"insert_after_line": N}.
	ModePoint LocateMode = "point"
	// ModeRange expects {"start_line": N, "end_line": M}.
	ModeRange LocateMode = "range"
)

// LocateAnswer is a parsed edit location. Exactly one of the point or
// range fields is meaningful, selected by Mode.
type LocateAnswer struct {
	Mode      LocateMode
	AfterLine int
	StartLine int
	EndLine   int
	Rationale string
}

// locateReply mirrors the JSON shape requested from the model. Pointer
// fields distinguish "absent" from zero.
type locateReply struct {
	InsertAfterLine *int   `json:"insert_after_line"`
	StartLine       *int   `json:"start_line"`
	EndLine         *int   `json:"end_line"`
	Reason          string `json:"reason"`
}

// ParseLocation parses a model's location reply. The model is asked for a
// bare JSON object but routinely wraps it in a fenced code block or adds
// prose, so parsing is best-effort: on any failure the answer degrades to
// a safe default (append at end for point mode, replace everything for
// range mode) instead of aborting the edit.
func ParseLocation(oracleText string, mode LocateMode, lineCount int) LocateAnswer {
	fallback := LocateAnswer{Mode: mode, AfterLine: lineCount, StartLine: 1, EndLine: lineCount}

	cleaned := StripCodeFence(strings.TrimSpace(oracleText))
	var reply locateReply
	if err := json.Unmarshal([]byte(cleaned), &reply); err != nil {
		return fallback
	}

	answer := fallback
	answer.Rationale = reply.Reason

	switch mode {
	case ModePoint:
		if reply.InsertAfterLine == nil {
			return answer
		}
		answer.AfterLine = *reply.InsertAfterLine
	case ModeRange:
		if reply.StartLine == nil || reply.EndLine == nil {
			return answer
		}
		answer.StartLine = *reply.StartLine
		answer.EndLine = *reply.EndLine
	}
	return answer
}

// StripCodeFence removes a surrounding markdown code fence, if present.
// Models wrap replies in ``` blocks no matter how firmly the prompt says
// not to.
func StripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if strings.HasPrefix(lines[0], "```") {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
