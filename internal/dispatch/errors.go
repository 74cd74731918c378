package dispatch

import (
	"errors"
	"fmt"
)

// Kind classifies a tool execution failure. Every error that crosses the
// dispatcher boundary carries one, so callers can react without parsing
// message text.
type Kind string

const (
	// KindArtifactNotFound: the referenced file, task, or project does not exist.
	KindArtifactNotFound Kind = "artifact_not_found"
	// KindProjectMismatch: the record exists but belongs to a different
	// project. Kept distinct from not-found so a caller can't probe for
	// records across projects.
	KindProjectMismatch Kind = "project_mismatch"
	// KindUnknownTool: the tool name is not in the catalog.
	KindUnknownTool Kind = "unknown_tool"
	// KindMissingArgument: a required argument is absent or empty.
	KindMissingArgument Kind = "missing_required_argument"
	// KindOracleFailure: the text-generation call failed or timed out.
	KindOracleFailure Kind = "oracle_call_failure"
)

// Error is a tool execution failure with a machine-readable kind and a
// human-readable message. The message is safe to show to users — internal
// error text stays wrapped underneath.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Errorf creates an Error with a formatted message.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError creates an Error that preserves its cause for errors.Is/As
// while presenting only the given message.
func WrapError(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), cause: cause}
}

// KindOf extracts the Kind from an error chain. The second return is
// false when the chain carries no dispatch error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
