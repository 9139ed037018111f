package repositories

import "context"

// ModelRepository is a hosted text-generation model with fixed decoding parameters.
type ModelRepository interface {
	// Name returns the model backend identifier (e.g. "bedrock").
	Name() string

	// Invoke blocks until the model returns a completion for the prompt.
	Invoke(ctx context.Context, prompt string) (string, error)
}
