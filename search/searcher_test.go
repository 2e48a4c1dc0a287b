package search

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joblens/joblens/ai/mock"
	"github.com/joblens/joblens/core"
	"github.com/joblens/joblens/storage"
	"github.com/joblens/joblens/storage/badger"
)

func setupSearcher(t *testing.T, opts ...Option) (*Searcher, *badger.Repositories, *mock.MockEmbedder) {
	t.Helper()

	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	embedder := mock.NewMockEmbedder()
	searcher, err := NewSearcher(repos.Listings, repos.Embeddings, repos.Clusters, embedder, opts...)
	require.NoError(t, err)

	return searcher, repos, embedder
}

func addSearchListing(t *testing.T, repos *badger.Repositories, url, title string, vector []float32) *core.Listing {
	t.Helper()
	ctx := context.Background()

	added, err := repos.Listings.AddListings(ctx, &core.Listing{
		URL:   url,
		Title: title,
	})
	require.NoError(t, err)

	if vector != nil {
		_, err = repos.Embeddings.AddEmbeddings(ctx, &core.Embedding{
			ListingId: added[0].Id,
			Vector:    vector,
		})
		require.NoError(t, err)
	}

	return added[0]
}

func fixedQueryVector(embedder *mock.MockEmbedder, vector []float32) {
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return vector, nil
	}
}

func TestNewSearcher(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	embedder := mock.NewMockEmbedder()

	t.Run("valid", func(t *testing.T) {
		s, err := NewSearcher(repos.Listings, repos.Embeddings, repos.Clusters, embedder)
		require.NoError(t, err)
		assert.InDelta(t, DefaultThreshold, s.threshold, 1e-6)
	})

	t.Run("nil dependencies", func(t *testing.T) {
		_, err := NewSearcher(nil, repos.Embeddings, repos.Clusters, embedder)
		assert.ErrorIs(t, err, ErrListingRepositoryRequired)

		_, err = NewSearcher(repos.Listings, nil, repos.Clusters, embedder)
		assert.ErrorIs(t, err, ErrEmbeddingRepositoryRequired)

		_, err = NewSearcher(repos.Listings, repos.Embeddings, nil, embedder)
		assert.ErrorIs(t, err, ErrClusterRepositoryRequired)

		_, err = NewSearcher(repos.Listings, repos.Embeddings, repos.Clusters, nil)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("invalid threshold", func(t *testing.T) {
		_, err := NewSearcher(repos.Listings, repos.Embeddings, repos.Clusters, embedder, WithThreshold(0))
		assert.ErrorIs(t, err, ErrInvalidThreshold)
	})
}

func TestSearchRanksByScore(t *testing.T) {
	searcher, repos, embedder := setupSearcher(t)
	ctx := context.Background()

	exact := addSearchListing(t, repos, "https://jobs.example.com/exact", "Exact", []float32{1, 0, 0})
	near := addSearchListing(t, repos, "https://jobs.example.com/close", "Close", []float32{0.8, 0.6, 0})
	addSearchListing(t, repos, "https://jobs.example.com/far", "Far", []float32{0, 1, 0})

	fixedQueryVector(embedder, []float32{1, 0, 0})

	results, err := searcher.Search(ctx, "backend go developer", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, exact.Id, results[0].Listing.Id)
	assert.InDelta(t, 1.0, results[0].Score, 1e-4)
	assert.Equal(t, near.Id, results[1].Listing.Id)
	assert.InDelta(t, 0.8, results[1].Score, 1e-4)
}

func TestSearchRespectsLimit(t *testing.T) {
	searcher, repos, embedder := setupSearcher(t)
	ctx := context.Background()

	top := addSearchListing(t, repos, "https://jobs.example.com/a", "A", []float32{1, 0})
	addSearchListing(t, repos, "https://jobs.example.com/b", "B", []float32{0.8, 0.6})

	fixedQueryVector(embedder, []float32{1, 0})

	results, err := searcher.Search(ctx, "query", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, top.Id, results[0].Listing.Id)
}

func TestSearchEmptyQuery(t *testing.T) {
	searcher, _, _ := setupSearcher(t)

	_, err := searcher.Search(context.Background(), "   ", 10)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestSearchSkipsUnresolvableListing(t *testing.T) {
	searcher, repos, embedder := setupSearcher(t)
	ctx := context.Background()

	resolvable := addSearchListing(t, repos, "https://jobs.example.com/ok", "OK", []float32{1, 0})

	// A vector whose listing record does not exist.
	_, err := repos.Embeddings.AddEmbeddings(ctx, &core.Embedding{
		ListingId: core.ID(99999),
		Vector:    []float32{1, 0},
	})
	require.NoError(t, err)

	fixedQueryVector(embedder, []float32{1, 0})

	results, err := searcher.Search(ctx, "query", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, resolvable.Id, results[0].Listing.Id)
}

func TestSearchSkipsMalformedVectors(t *testing.T) {
	searcher, repos, embedder := setupSearcher(t)
	ctx := context.Background()

	good := addSearchListing(t, repos, "https://jobs.example.com/good", "Good", []float32{1, 0})
	addSearchListing(t, repos, "https://jobs.example.com/short", "Wrong dims", []float32{1})
	addSearchListing(t, repos, "https://jobs.example.com/zero", "Zero magnitude", []float32{0, 0})

	fixedQueryVector(embedder, []float32{1, 0})

	results, err := searcher.Search(ctx, "engineer", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, good.Id, results[0].Listing.Id)
}

func TestSearchQueryTemplates(t *testing.T) {
	searcher, _, embedder := setupSearcher(t)
	ctx := context.Background()

	var captured string
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		captured = text
		return []float32{1, 0}, nil
	}

	_, err := searcher.SearchBySkills(ctx, []string{"Go", "Kubernetes"}, 10)
	require.NoError(t, err)
	assert.Equal(t, "Job requiring skills in: Go, Kubernetes", captured)

	_, err = searcher.SearchByCompany(ctx, "Acme", "Backend Engineer", 10)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer position at Acme", captured)

	_, err = searcher.SearchByField(ctx, "Robotics", 10)
	require.NoError(t, err)
	assert.Equal(t, "Job in Robotics field", captured)

	_, err = searcher.SearchBySkills(ctx, nil, 10)
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = searcher.SearchByCompany(ctx, "", "Backend Engineer", 10)
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = searcher.SearchByField(ctx, "", 10)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestFindSimilar(t *testing.T) {
	searcher, repos, embedder := setupSearcher(t)
	ctx := context.Background()

	reference := addSearchListing(t, repos, "https://jobs.example.com/ref", "Reference", []float32{1, 0, 0})
	near := addSearchListing(t, repos, "https://jobs.example.com/near", "Near", []float32{0.8, 0.6, 0})
	addSearchListing(t, repos, "https://jobs.example.com/far", "Far", []float32{0, 0, 1})

	results, err := searcher.FindSimilar(ctx, reference.Id, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, near.Id, results[0].Listing.Id)

	// The stored vector is used directly, no embedding call.
	assert.Equal(t, 0, embedder.CallCount())
}

func TestFindSimilarWithoutEmbedding(t *testing.T) {
	searcher, repos, _ := setupSearcher(t)
	ctx := context.Background()

	listing := addSearchListing(t, repos, "https://jobs.example.com/plain", "Plain", nil)

	_, err := searcher.FindSimilar(ctx, listing.Id, 5)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestClusterListings(t *testing.T) {
	searcher, repos, _ := setupSearcher(t)
	ctx := context.Background()

	members := make([]core.ID, 0, 4)
	for i := 0; i < 4; i++ {
		listing := addSearchListing(t, repos,
			fmt.Sprintf("https://jobs.example.com/member-%d", i),
			fmt.Sprintf("Member %d", i), nil)
		members = append(members, listing.Id)
	}

	stored, err := repos.Clusters.ReplaceClusters(ctx, &core.Cluster{
		Name:       "Backend Engineering Jobs",
		ListingIds: members,
	})
	require.NoError(t, err)
	require.Len(t, stored, 1)

	t.Run("all members score 1.0", func(t *testing.T) {
		results, err := searcher.ClusterListings(ctx, stored[0].Id, 10)
		require.NoError(t, err)
		require.Len(t, results, 4)
		for _, result := range results {
			assert.InDelta(t, 1.0, result.Score, 1e-6)
		}
	})

	t.Run("limit applies", func(t *testing.T) {
		results, err := searcher.ClusterListings(ctx, stored[0].Id, 2)
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("unknown cluster", func(t *testing.T) {
		_, err := searcher.ClusterListings(ctx, core.ID(424242), 10)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestSearchMonitorCallbacks(t *testing.T) {
	searcher, repos, embedder := setupSearcher(t)
	ctx := context.Background()

	addSearchListing(t, repos, "https://jobs.example.com/hit", "Hit", []float32{1, 0})
	fixedQueryVector(embedder, []float32{1, 0})

	monitor := &recordingMonitor{}
	results, err := searcher.SearchWithMonitor(ctx, "query", 10, monitor)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "query", monitor.query)
	assert.Equal(t, 2, monitor.dimensions)
	assert.Len(t, monitor.ranked, 1)
	assert.Len(t, monitor.finished, 1)
}

type recordingMonitor struct {
	query      string
	dimensions int
	ranked     []uint64
	skipped    []uint64
	finished   []*core.SearchResult
}

var _ SearchMonitor = (*recordingMonitor)(nil)

func (m *recordingMonitor) Start(query string)            { m.query = query }
func (m *recordingMonitor) AfterQueryEmbedding(dims int)  { m.dimensions = dims }
func (m *recordingMonitor) AfterRanking(ids []uint64)     { m.ranked = ids }
func (m *recordingMonitor) ListingSkipped(id uint64, _ string) {
	m.skipped = append(m.skipped, id)
}
func (m *recordingMonitor) Finish(results []*core.SearchResult) { m.finished = results }
