package openai

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/joblens/joblens/ai"
)

// ContentComparer implements ai.ContentComparer using OpenAI-compatible chat APIs.
type ContentComparer struct {
	client   llms.Model
	maxChars int
	logger   *slog.Logger
}

// newContentComparer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newContentComparer(config *ai.Config) (*ContentComparer, error) {
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

	return &ContentComparer{
		client:   client,
		maxChars: config.MaxContentChars,
		logger:   slog.Default().With("component", "openai-comparer"),
	}, nil
}

// NewContentComparer creates a new content comparer using the provided configuration.
//
// Returns ai.ContentComparer interface to enforce abstraction.
func NewContentComparer(config *ai.Config) (ai.ContentComparer, error) {
	return newContentComparer(config)
}

// CompareContents rates the similarity of two listings on a 0 to 1 scale.
// An unparseable model response counts as 0, not as an error, so a flaky
// model response never flags a listing as a duplicate.
func (c *ContentComparer) CompareContents(ctx context.Context, first, second string) (float32, error) {
	first = truncateContent(first, c.maxChars)
	second = truncateContent(second, c.maxChars)

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(comparisonPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildComparisonInput(first, second)),
			},
		},
	}

	response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.1))
	if err != nil {
		c.logger.Error("failed to generate comparison", "err", err)
		return 0, err
	}

	if len(response.Choices) < 1 {
		c.logger.Debug("no choices returned from model")
		return 0, nil
	}

	text := strings.TrimSpace(response.Choices[0].Content)
	score, err := strconv.ParseFloat(text, 32)
	if err != nil {
		c.logger.Warn("failed to parse similarity score", "response", text)
		return 0, nil
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return float32(score), nil
}
