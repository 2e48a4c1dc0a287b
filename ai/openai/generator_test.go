package openai

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type capturingModel struct {
	messages []llms.MessageContent
}

func (m *capturingModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.messages = messages
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: " A summary. "}},
	}, nil
}

func (m *capturingModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return "", nil
}

func TestGenerateSummarySendsSystemRole(t *testing.T) {
	model := &capturingModel{}
	generator := &SummaryGenerator{client: model, logger: slog.Default()}

	summary, err := generator.GenerateSummary(context.Background(), "Summarize these listings.")
	require.NoError(t, err)
	assert.Equal(t, "A summary.", summary)

	require.Len(t, model.messages, 2)
	assert.Equal(t, llms.ChatMessageTypeSystem, model.messages[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[1].Role)

	part, ok := model.messages[0].Parts[0].(llms.TextContent)
	require.True(t, ok)
	assert.Equal(t, summarySystemPrompt, part.Text)
}
