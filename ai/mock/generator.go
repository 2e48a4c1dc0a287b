package mock

import (
	"context"
	"fmt"
)

// MockSummaryGenerator is a test double for ai.SummaryGenerator.
// It allows custom behavior injection via function fields.
type MockSummaryGenerator struct {
	// GenerateSummaryFunc is called by GenerateSummary if set.
	// If nil, uses default canned behavior.
	GenerateSummaryFunc func(ctx context.Context, prompt string) (string, error)

	callCount int
}

// NewMockSummaryGenerator creates a mock generator with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockSummaryGenerator() *MockSummaryGenerator {
	return &MockSummaryGenerator{}
}

// GenerateSummary returns a deterministic canned summary.
func (m *MockSummaryGenerator) GenerateSummary(ctx context.Context, prompt string) (string, error) {
	m.callCount++

	if m.GenerateSummaryFunc != nil {
		return m.GenerateSummaryFunc(ctx, prompt)
	}

	return fmt.Sprintf("Mock summary for prompt of %d characters.", len(prompt)), nil
}

// CallCount returns the number of times GenerateSummary was called.
func (m *MockSummaryGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockSummaryGenerator) Reset() {
	m.callCount = 0
	m.GenerateSummaryFunc = nil
}
