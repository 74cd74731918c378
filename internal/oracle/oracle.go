// Package oracle provides the text-generation client used for document
// editing and project chat.
//
// The rest of the system depends only on the Client interface — a single
// prompt-in, text-out operation with no structured output guarantee. Any
// JSON a caller asks the model for is advisory and must be defensively
// parsed on the way back.
package oracle

import "context"

// Client generates free text for a prompt. Implementations must honor
// context cancellation: a hung upstream call is bounded by the caller's
// deadline, never by the implementation hanging forever.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
