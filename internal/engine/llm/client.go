// Package llm provides LLM-powered explanations for diagnostics.
package llm

import (
	"context"
)

// Advice is an LLM-generated explanation for a single diagnostic.
type Advice struct {
	File        string `json:"file"`
	Line        int    `json:"line"`
	Code        string `json:"code,omitempty"`
	Explanation string `json:"explanation"`
	Fix         string `json:"fix,omitempty"`
}

// Client abstracts LLM API interaction for testability.
type Client interface {
	// Explain sends a prompt to the LLM and returns per-diagnostic advice.
	Explain(ctx context.Context, prompt string) ([]Advice, error)
}
