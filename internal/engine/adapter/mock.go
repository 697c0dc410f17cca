package adapter

import (
	"context"

	"github.com/tsgate/tsgate/internal/engine/formatter"
)

// MockAdapter is a test double for Adapter.
type MockAdapter struct {
	Result *formatter.ToolResult
	Err    error
}

func (m *MockAdapter) Execute(_ context.Context) (*formatter.ToolResult, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}
