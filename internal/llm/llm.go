// Package llm provides the text-completion collaborator consumed by the
// generation pipeline.
package llm

import "context"

// Completer produces a text completion for a prompt. The pipeline treats
// the call as blocking with no internal retry; retry policy belongs to the
// implementation, not the pipeline.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
