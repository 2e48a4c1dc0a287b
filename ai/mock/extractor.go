package mock

import (
	"context"
	"strings"

	"github.com/joblens/joblens/ai"
)

// MockMetadataExtractor is a test double for ai.MetadataExtractor.
// It allows custom behavior injection via function fields.
type MockMetadataExtractor struct {
	// ExtractMetadataFunc is called by ExtractMetadata if set.
	// If nil, uses default heuristic extraction.
	ExtractMetadataFunc func(ctx context.Context, text string) (*ai.ListingMetadata, error)

	// ClassifyFieldFunc is called by ClassifyField if set.
	// If nil, always returns "Other".
	ClassifyFieldFunc func(ctx context.Context, text string) (string, error)

	// ExtractSkillsFunc is called by ExtractSkills if set.
	// If nil, reuses the default metadata heuristic.
	ExtractSkillsFunc func(ctx context.Context, text string) ([]string, error)

	callCount int
}

// NewMockMetadataExtractor creates a mock extractor with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockMetadataExtractor() *MockMetadataExtractor {
	return &MockMetadataExtractor{}
}

// ExtractMetadata extracts simple mock metadata from text.
// Default behavior: the first line becomes the title, capitalized words
// become skills, and the field is always "Other".
func (m *MockMetadataExtractor) ExtractMetadata(ctx context.Context, text string) (*ai.ListingMetadata, error) {
	m.callCount++

	if m.ExtractMetadataFunc != nil {
		return m.ExtractMetadataFunc(ctx, text)
	}

	meta := &ai.ListingMetadata{Field: "Other"}

	lines := strings.SplitN(strings.TrimSpace(text), "\n", 2)
	if len(lines) > 0 {
		meta.Title = strings.TrimSpace(lines[0])
	}

	meta.Skills = heuristicSkills(text)

	return meta, nil
}

// heuristicSkills treats up to five capitalized words as skills.
func heuristicSkills(text string) []string {
	skills := make([]string, 0, 5)
	for _, word := range strings.Fields(text) {
		word = strings.Trim(word, ".,!?;:\"'()[]{}")
		if len(word) > 1 && word[0] >= 'A' && word[0] <= 'Z' {
			skills = append(skills, word)
		}
		if len(skills) >= 5 {
			break
		}
	}
	return skills
}

// ClassifyField returns "Other" unless a custom function is set.
func (m *MockMetadataExtractor) ClassifyField(ctx context.Context, text string) (string, error) {
	m.callCount++

	if m.ClassifyFieldFunc != nil {
		return m.ClassifyFieldFunc(ctx, text)
	}
	return "Other", nil
}

// ExtractSkills extracts capitalized words as skills unless a custom function is set.
func (m *MockMetadataExtractor) ExtractSkills(ctx context.Context, text string) ([]string, error) {
	m.callCount++

	if m.ExtractSkillsFunc != nil {
		return m.ExtractSkillsFunc(ctx, text)
	}
	return heuristicSkills(text), nil
}

// CallCount returns the total number of extractor calls.
func (m *MockMetadataExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockMetadataExtractor) Reset() {
	m.callCount = 0
	m.ExtractMetadataFunc = nil
	m.ClassifyFieldFunc = nil
	m.ExtractSkillsFunc = nil
}
