// Copyright 2025 Joblens Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/joblens/joblens/ai"
)

// MetadataExtractor implements ai.MetadataExtractor using OpenAI-compatible chat APIs.
type MetadataExtractor struct {
	client   llms.Model
	maxChars int
	logger   *slog.Logger
}

// listingMetadata is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type listingMetadata struct {
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	Location string   `json:"location"`
	Field    string   `json:"field"`
	Skills   []string `json:"skills"`
}

// newMetadataExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newMetadataExtractor(config *ai.Config) (*MetadataExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &MetadataExtractor{
		client:   client,
		maxChars: config.MaxContentChars,
		logger:   slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewMetadataExtractor creates a new metadata extractor using the provided configuration.
//
// Returns ai.MetadataExtractor interface to enforce abstraction.
func NewMetadataExtractor(config *ai.Config) (ai.MetadataExtractor, error) {
	return newMetadataExtractor(config)
}

// ExtractMetadata extracts structured job metadata from listing text using an LLM.
// The field classification is validated against ai.JobFields; anything outside
// the list maps to "Other".
func (e *MetadataExtractor) ExtractMetadata(ctx context.Context, text string) (*ai.ListingMetadata, error) {
	text = truncateContent(text, e.maxChars)

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildMetadataPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result listingMetadata
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return &ai.ListingMetadata{}, nil
		}

		responseText := repairJSON(stripCodeFences(response.Choices[0].Content))

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			e.logger.Warn("error parsing extractor response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("failed to parse extractor response after retries", "err", lastErr)
		return nil, lastErr
	}

	extracted := &ai.ListingMetadata{
		Title:    strings.TrimSpace(result.Title),
		Company:  strings.TrimSpace(result.Company),
		Location: strings.TrimSpace(result.Location),
		Field:    strings.TrimSpace(result.Field),
		Skills:   cleanSkills(result.Skills),
	}

	if extracted.Field != "" && !slices.Contains(ai.JobFields, extracted.Field) {
		e.logger.Warn("field not in predefined list, using Other", "field", extracted.Field)
		extracted.Field = "Other"
	}

	e.logger.Debug("extracted metadata",
		"title", extracted.Title,
		"field", extracted.Field,
		"skills", len(extracted.Skills))
	return extracted, nil
}

// ClassifyField classifies listing text into one of ai.JobFields.
// Responses outside the list map to "Other".
func (e *MetadataExtractor) ClassifyField(ctx context.Context, text string) (string, error) {
	text = truncateContent(text, e.maxChars)

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildClassifyPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.1))
	if err != nil {
		e.logger.Error("failed to classify field", "err", err)
		return "", err
	}
	if len(response.Choices) < 1 {
		return "Other", nil
	}

	field := strings.TrimSpace(response.Choices[0].Content)
	if !slices.Contains(ai.JobFields, field) {
		e.logger.Warn("classified field not in predefined list, using Other", "field", field)
		field = "Other"
	}
	return field, nil
}

// ExtractSkills extracts the required skills as a JSON array of strings.
// A response that does not parse yields no skills rather than an error.
func (e *MetadataExtractor) ExtractSkills(ctx context.Context, text string) ([]string, error) {
	text = truncateContent(text, e.maxChars)

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(skillsPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.1))
	if err != nil {
		e.logger.Error("failed to extract skills", "err", err)
		return nil, err
	}
	if len(response.Choices) < 1 {
		return nil, nil
	}

	responseText := stripCodeFences(response.Choices[0].Content)
	// Models occasionally wrap the array in prose; keep just the brackets.
	if start, end := strings.Index(responseText, "["), strings.LastIndex(responseText, "]"); start >= 0 && end > start {
		responseText = responseText[start : end+1]
	}

	var skills []string
	if err := json.Unmarshal([]byte(repairJSON(responseText)), &skills); err != nil {
		e.logger.Warn("error parsing skills response", "response", responseText, "err", err)
		return nil, nil
	}
	return cleanSkills(skills), nil
}

// cleanSkills trims skill names and drops empties.
func cleanSkills(skills []string) []string {
	cleaned := make([]string, 0, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill != "" {
			cleaned = append(cleaned, skill)
		}
	}
	return cleaned
}
