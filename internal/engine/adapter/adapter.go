// Package adapter wires a configured tool to its runner and parser, turning
// one tool invocation into one structured result.
package adapter

import (
	"context"

	"github.com/tsgate/tsgate/internal/engine/formatter"
)

// Adapter represents a single wrapped tool that can be executed.
type Adapter interface {
	// Execute runs the tool and returns the result.
	Execute(ctx context.Context) (*formatter.ToolResult, error)
}
