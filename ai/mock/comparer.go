package mock

import "context"

// MockContentComparer is a test double for ai.ContentComparer.
// It allows custom behavior injection via function fields.
type MockContentComparer struct {
	// CompareContentsFunc is called by CompareContents if set.
	// If nil, uses default exact-match behavior.
	CompareContentsFunc func(ctx context.Context, first, second string) (float32, error)

	callCount int
}

// NewMockContentComparer creates a mock comparer with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockContentComparer() *MockContentComparer {
	return &MockContentComparer{}
}

// CompareContents rates two texts. Default behavior: 1 for identical text,
// 0 otherwise.
func (m *MockContentComparer) CompareContents(ctx context.Context, first, second string) (float32, error) {
	m.callCount++

	if m.CompareContentsFunc != nil {
		return m.CompareContentsFunc(ctx, first, second)
	}

	if first == second {
		return 1, nil
	}
	return 0, nil
}

// CallCount returns the number of times CompareContents was called.
func (m *MockContentComparer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockContentComparer) Reset() {
	m.callCount = 0
	m.CompareContentsFunc = nil
}
