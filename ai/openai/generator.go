package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/joblens/joblens/ai"
)

// SummaryGenerator implements ai.SummaryGenerator using OpenAI-compatible chat APIs.
type SummaryGenerator struct {
	client llms.Model
	logger *slog.Logger
}

// newSummaryGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newSummaryGenerator(config *ai.Config) (*SummaryGenerator, error) {
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

	return &SummaryGenerator{
		client: client,
		logger: slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewSummaryGenerator creates a new summary generator using the provided configuration.
//
// Returns ai.SummaryGenerator interface to enforce abstraction.
func NewSummaryGenerator(config *ai.Config) (ai.SummaryGenerator, error) {
	return newSummaryGenerator(config)
}

// GenerateSummary generates a short prose summary for the given prompt.
func (g *SummaryGenerator) GenerateSummary(ctx context.Context, prompt string) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(summarySystemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := g.client.GenerateContent(ctx, content, llms.WithTemperature(0.2))
	if err != nil {
		g.logger.Error("failed to generate summary", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		g.logger.Debug("no choices returned from model")
		return "", nil
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}
