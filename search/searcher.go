package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joblens/joblens/ai"
	"github.com/joblens/joblens/core"
	"github.com/joblens/joblens/similarity"
	"github.com/joblens/joblens/storage"
)

const (
	// DefaultThreshold is the minimum similarity score for a vector match.
	DefaultThreshold = 0.7

	// DefaultLimit is the result cap when the caller passes limit <= 0.
	DefaultLimit = 10

	// DefaultSimilarLimit is the default cap for FindSimilar results.
	DefaultSimilarLimit = 5
)

// Searcher provides semantic search over job listings.
type Searcher struct {
	listings   storage.ListingRepository
	embeddings storage.EmbeddingRepository
	clusters   storage.ClusterRepository
	embedder   ai.Embedder
	threshold  float32
	logger     *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithThreshold sets the similarity threshold for vector search modes.
// Default is DefaultThreshold.
func WithThreshold(threshold float32) Option {
	return func(s *Searcher) error {
		if threshold <= 0 || threshold > 1 {
			return ErrInvalidThreshold
		}
		s.threshold = threshold
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	listings storage.ListingRepository,
	embeddings storage.EmbeddingRepository,
	clusters storage.ClusterRepository,
	embedder ai.Embedder,
	opts ...Option,
) (*Searcher, error) {
	if listings == nil {
		return nil, ErrListingRepositoryRequired
	}
	if embeddings == nil {
		return nil, ErrEmbeddingRepositoryRequired
	}
	if clusters == nil {
		return nil, ErrClusterRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		listings:   listings,
		embeddings: embeddings,
		clusters:   clusters,
		embedder:   embedder,
		threshold:  DefaultThreshold,
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search finds listings semantically similar to a free-text query.
// Returns up to limit results ranked by descending score.
func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]*core.SearchResult, error) {
	return s.SearchWithMonitor(ctx, query, limit, nil)
}

// SearchWithMonitor is Search with stage callbacks for operator tooling.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, limit int, monitor SearchMonitor) ([]*core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	monitor.Start(query)

	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}
	monitor.AfterQueryEmbedding(len(vector))

	return s.rankAndResolve(ctx, vector, limit, 0, monitor)
}

// SearchBySkills finds listings requiring the given skills.
func (s *Searcher) SearchBySkills(ctx context.Context, skills []string, limit int) ([]*core.SearchResult, error) {
	if len(skills) == 0 {
		return nil, ErrEmptyQuery
	}
	return s.Search(ctx, "Job requiring skills in: "+strings.Join(skills, ", "), limit)
}

// SearchByCompany finds listings for a role at a company.
func (s *Searcher) SearchByCompany(ctx context.Context, company, role string, limit int) ([]*core.SearchResult, error) {
	if company == "" || role == "" {
		return nil, ErrEmptyQuery
	}
	return s.Search(ctx, fmt.Sprintf("%s position at %s", role, company), limit)
}

// SearchByField finds listings in an engineering field.
func (s *Searcher) SearchByField(ctx context.Context, field string, limit int) ([]*core.SearchResult, error) {
	if field == "" {
		return nil, ErrEmptyQuery
	}
	return s.Search(ctx, fmt.Sprintf("Job in %s field", field), limit)
}

// FindSimilar finds listings similar to a reference listing, using its stored
// vector directly without an embedding call. The reference listing itself is
// excluded from the results.
func (s *Searcher) FindSimilar(ctx context.Context, listingID core.ID, limit int) ([]*core.SearchResult, error) {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	embedding, err := s.embeddings.GetEmbeddingByListing(ctx, listingID)
	if err != nil {
		return nil, err
	}

	// Rank one past the limit so dropping the reference listing still fills it.
	results, err := s.rankAndResolve(ctx, embedding.Vector, limit+1, listingID, &noopMonitor{})
	if err != nil {
		return nil, err
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// ClusterListings returns the members of a cluster. Membership is not a
// vector match, so every result carries a fixed score of 1.0 and only the
// limit applies, not the similarity threshold.
func (s *Searcher) ClusterListings(ctx context.Context, clusterID core.ID, limit int) ([]*core.SearchResult, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	cluster, err := s.clusters.GetCluster(ctx, clusterID)
	if err != nil {
		return nil, err
	}

	memberIds := cluster.ListingIds
	if len(memberIds) > limit {
		memberIds = memberIds[:limit]
	}

	listings, err := s.listings.GetListings(ctx, memberIds...)
	if err != nil {
		return nil, err
	}
	if len(listings) < len(memberIds) {
		s.logger.Warn("cluster references missing listings",
			"cluster", clusterID, "missing", len(memberIds)-len(listings))
	}

	results := make([]*core.SearchResult, 0, len(listings))
	for _, listing := range listings {
		results = append(results, &core.SearchResult{Listing: listing, Score: 1.0})
	}
	return results, nil
}

// rankAndResolve ranks every stored vector against the query via
// similarity.Rank, resolves the matching listings, and returns them in
// descending score order. Malformed vectors and unresolvable listing
// references are logged and skipped.
func (s *Searcher) rankAndResolve(ctx context.Context, query []float32, limit int, exclude core.ID, monitor SearchMonitor) ([]*core.SearchResult, error) {
	vectors, err := s.embeddings.ListVectors(ctx)
	if err != nil {
		s.logger.Error("error listing stored vectors", "err", err)
		return nil, err
	}

	candidates := make([]similarity.Candidate, 0, len(vectors))
	for _, v := range vectors {
		if v.ListingId == exclude && exclude != 0 {
			continue
		}
		if !rankable(query, v.Vector) {
			s.logger.Warn("skipping malformed vector", "listing", v.ListingId)
			monitor.ListingSkipped(uint64(v.ListingId), "malformed vector")
			continue
		}
		candidates = append(candidates, similarity.Candidate{Id: uint64(v.ListingId), Vector: v.Vector})
	}

	matches, err := similarity.Rank(query, candidates, s.threshold, limit)
	if err != nil {
		return nil, err
	}

	rankedIds := make([]uint64, 0, len(matches))
	for _, m := range matches {
		rankedIds = append(rankedIds, m.Id)
	}
	monitor.AfterRanking(rankedIds)

	results := make([]*core.SearchResult, 0, len(matches))
	for _, match := range matches {
		listing, err := s.listings.GetListing(ctx, core.ID(match.Id))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				s.logger.Warn("skipping match without a listing record", "listing", match.Id)
				monitor.ListingSkipped(match.Id, "listing not found")
				continue
			}
			return nil, err
		}
		results = append(results, &core.SearchResult{Listing: listing, Score: match.Score})
	}

	monitor.Finish(results)
	return results, nil
}

// rankable reports whether a stored vector can be scored against the query:
// same dimensions and nonzero magnitude. Rank fails on any bad candidate, so
// bad vectors are filtered out here and reported per listing instead.
func rankable(query, v []float32) bool {
	if len(v) == 0 || len(v) != len(query) {
		return false
	}
	for _, x := range v {
		if x != 0 {
			return true
		}
	}
	return false
}
