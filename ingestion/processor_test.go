package ingestion

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joblens/joblens/ai"
	"github.com/joblens/joblens/ai/mock"
	"github.com/joblens/joblens/storage/badger"
)

func setupProcessor(t *testing.T, opts ...Option) (*Processor, *badger.Repositories, *mock.MockProvider) {
	t.Helper()

	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	provider := mock.NewMockProvider().(*mock.MockProvider)
	processor, err := NewProcessor(repos.Listings, repos.Embeddings, provider, opts...)
	require.NoError(t, err)
	t.Cleanup(processor.Release)

	return processor, repos, provider
}

func rawListing(url string) RawListing {
	return RawListing{
		URL:     url,
		Source:  "test",
		Title:   "Backend Engineer",
		Company: "Acme",
		Content: "Backend Engineer at Acme. Requires Go and Kubernetes.",
	}
}

func TestNewProcessor(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	provider := mock.NewMockProvider()

	t.Run("valid", func(t *testing.T) {
		p, err := NewProcessor(repos.Listings, repos.Embeddings, provider)
		require.NoError(t, err)
		p.Release()
	})

	t.Run("nil dependencies", func(t *testing.T) {
		_, err := NewProcessor(nil, repos.Embeddings, provider)
		assert.ErrorIs(t, err, ErrListingRepositoryRequired)

		_, err = NewProcessor(repos.Listings, nil, provider)
		assert.ErrorIs(t, err, ErrEmbeddingRepositoryRequired)

		_, err = NewProcessor(repos.Listings, repos.Embeddings, nil)
		assert.ErrorIs(t, err, ErrAIProviderRequired)
	})
}

func TestProcessStoresListingWithEmbedding(t *testing.T) {
	processor, repos, provider := setupProcessor(t)
	ctx := context.Background()

	provider.GetMockExtractor().ExtractMetadataFunc = func(ctx context.Context, text string) (*ai.ListingMetadata, error) {
		return &ai.ListingMetadata{
			Title:    "Senior Backend Engineer",
			Company:  "Acme",
			Location: "Berlin",
			Field:    "Backend Engineering",
			Skills:   []string{"Go", "Kubernetes"},
		}, nil
	}

	result, err := processor.Process(ctx, rawListing("https://jobs.example.com/1"))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Succeeded)
	assert.Zero(t, result.Failed)

	stored, err := repos.Listings.GetListingByURL(ctx, "https://jobs.example.com/1")
	require.NoError(t, err)
	assert.Equal(t, "Senior Backend Engineer", stored.Title)
	assert.Equal(t, "Backend Engineering", stored.Field)
	assert.Equal(t, []string{"Go", "Kubernetes"}, stored.Skills)
	assert.NotZero(t, stored.EmbeddingId)

	embedding, err := repos.Embeddings.GetEmbeddingByListing(ctx, stored.Id)
	require.NoError(t, err)
	assert.Equal(t, stored.EmbeddingId, embedding.Id)
	assert.NotEmpty(t, embedding.Vector)
}

func TestProcessIdempotentByURL(t *testing.T) {
	processor, _, _ := setupProcessor(t)
	ctx := context.Background()

	first, err := processor.Process(ctx, rawListing("https://jobs.example.com/same"))
	require.NoError(t, err)
	assert.Equal(t, 1, first.Succeeded)

	second, err := processor.Process(ctx, rawListing("https://jobs.example.com/same"))
	require.NoError(t, err)
	assert.Equal(t, 1, second.Skipped)
	assert.Zero(t, second.Succeeded)
}

func TestProcessFillsGapsFromRawListing(t *testing.T) {
	processor, repos, provider := setupProcessor(t)
	ctx := context.Background()

	extractor := provider.GetMockExtractor()
	extractor.ExtractMetadataFunc = func(ctx context.Context, text string) (*ai.ListingMetadata, error) {
		return &ai.ListingMetadata{}, nil
	}
	extractor.ClassifyFieldFunc = func(ctx context.Context, text string) (string, error) {
		return "Backend Engineering", nil
	}
	extractor.ExtractSkillsFunc = func(ctx context.Context, text string) ([]string, error) {
		return []string{"Go"}, nil
	}

	_, err := processor.Process(ctx, rawListing("https://jobs.example.com/gaps"))
	require.NoError(t, err)

	stored, err := repos.Listings.GetListingByURL(ctx, "https://jobs.example.com/gaps")
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", stored.Title) // from the raw listing
	assert.Equal(t, "Acme", stored.Company)
	assert.Equal(t, "Backend Engineering", stored.Field) // classify fallback
	assert.Equal(t, []string{"Go"}, stored.Skills)       // skills fallback
}

func TestProcessCountsFailures(t *testing.T) {
	processor, _, provider := setupProcessor(t)
	ctx := context.Background()

	provider.GetMockExtractor().ExtractMetadataFunc = func(ctx context.Context, text string) (*ai.ListingMetadata, error) {
		return nil, errors.New("model unavailable")
	}

	result, err := processor.Process(ctx,
		rawListing("https://jobs.example.com/fail"),
		RawListing{Source: "test", Content: "no url"},
		RawListing{URL: "https://jobs.example.com/empty", Source: "test"},
	)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Processed)
	assert.Equal(t, 3, result.Failed)
	assert.Zero(t, result.Succeeded)
}

func TestProcessStoresListingWhenEmbeddingFails(t *testing.T) {
	processor, repos, provider := setupProcessor(t)
	ctx := context.Background()

	provider.GetMockEmbedder().EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedding service down")
	}

	result, err := processor.Process(ctx, rawListing("https://jobs.example.com/novec"))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Succeeded)

	stored, err := repos.Listings.GetListingByURL(ctx, "https://jobs.example.com/novec")
	require.NoError(t, err)
	assert.Zero(t, stored.EmbeddingId)
}

type stubCollector struct {
	name     string
	listings []RawListing
	err      error
}

func (c *stubCollector) Name() string { return c.name }

func (c *stubCollector) Collect(ctx context.Context) ([]RawListing, error) {
	return c.listings, c.err
}

func TestCollectAndProcess(t *testing.T) {
	processor, _, _ := setupProcessor(t)
	ctx := context.Background()

	healthy := &stubCollector{
		name: "healthy",
		listings: []RawListing{
			rawListing("https://jobs.example.com/c1"),
			rawListing("https://jobs.example.com/c2"),
		},
	}
	broken := &stubCollector{name: "broken", err: errors.New("upstream timeout")}

	result, err := processor.CollectAndProcess(ctx, healthy, broken)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Collected)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 2, result.Succeeded)
}

func TestProcessConcurrentBatch(t *testing.T) {
	processor, repos, _ := setupProcessor(t, WithPoolSize(4))
	ctx := context.Background()

	raw := make([]RawListing, 0, 20)
	for i := 0; i < 20; i++ {
		raw = append(raw, rawListing(fmt.Sprintf("https://jobs.example.com/batch-%d", i)))
	}

	result, err := processor.Process(ctx, raw...)
	require.NoError(t, err)
	assert.Equal(t, 20, result.Processed)
	assert.Equal(t, 20, result.Succeeded)

	counts, err := repos.Listings.CountListings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, counts.Total)
}
func TestProcessAllDrainsInBatches(t *testing.T) {
	processor, repos, _ := setupProcessor(t)
	ctx := context.Background()

	raw := make([]RawListing, 0, 25)
	for i := 0; i < 25; i++ {
		raw = append(raw, rawListing(fmt.Sprintf("https://jobs.example.com/all-%d", i)))
	}

	result, err := processor.ProcessAll(ctx, 10, raw...)
	require.NoError(t, err)
	assert.Equal(t, 25, result.Processed)
	assert.Equal(t, 25, result.Succeeded)

	counts, err := repos.Listings.CountListings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25, counts.Total)
}
