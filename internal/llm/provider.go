// Package llm drafts optional research notes from extracted records.
// Notes are strictly separated from the core: they are generated after
// extraction, validation and scoring, and never feed back into any of
// them. The prompt contains only facts present on the record, so the
// model cannot introduce outside genealogy.
package llm

import (
	"context"
	"fmt"

	"github.com/okkonen/kinship/internal/model"
)

// Provider is one note-drafting backend
type Provider interface {
	// Name returns the provider name
	Name() string

	// Draft generates a research note for a record
	Draft(ctx context.Context, req DraftRequest) (*DraftResponse, error)
}

// DraftRequest is the input for note drafting
type DraftRequest struct {
	// Record is the validated record; the prompt is built from its fields only
	Record *model.Record

	// Prompt overrides the default prompt when non-empty
	Prompt string

	// Model is the provider-specific model name
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// DraftResponse is the provider's output
type DraftResponse struct {
	Text       string
	Model      string
	TokensUsed int
}

// NewProvider builds the configured provider. A custom BaseURL covers
// OpenAI-compatible local endpoints, so "openai" is the only backend.
func NewProvider(cfg model.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
}
