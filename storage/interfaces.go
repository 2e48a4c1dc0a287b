package storage

import (
	"context"
	"time"

	"github.com/joblens/joblens/core"
)

// ListingCounts groups the corpus composition counters returned by
// ListingRepository.CountListings.
type ListingCounts struct {
	Total     int
	Active    int // neither expired nor duplicate
	Expired   int
	Duplicate int
}

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ListingRepository provides operations for managing processed job listings.
type ListingRepository interface {
	Repository

	// AddListings adds one or more listings to storage.
	// IDs are content-derived from the listing URL; inserting a listing whose
	// URL already exists updates the stored record in place (upsert).
	// Sets CreatedAt/UpdatedAt timestamps if not already set.
	AddListings(ctx context.Context, listings ...*core.Listing) ([]*core.Listing, error)

	// UpdateListings updates existing listings and bumps UpdatedAt.
	// Returns ErrNotFound if any listing doesn't exist.
	UpdateListings(ctx context.Context, listings ...*core.Listing) ([]*core.Listing, error)

	// GetListing retrieves a single listing by ID.
	// Returns ErrNotFound if the listing doesn't exist.
	GetListing(ctx context.Context, id core.ID) (*core.Listing, error)

	// GetListings retrieves multiple listings by their IDs.
	// Returns only the listings that exist (no error for missing listings).
	GetListings(ctx context.Context, ids ...core.ID) ([]*core.Listing, error)

	// GetListingByURL retrieves a listing by its URL.
	// Returns ErrNotFound if no listing has the URL.
	GetListingByURL(ctx context.Context, url string) (*core.Listing, error)

	// ListActive retrieves all listings that are neither expired nor
	// duplicates, ordered by CreatedAt ascending.
	ListActive(ctx context.Context) ([]*core.Listing, error)

	// ListActiveOldestFirst retrieves up to limit active listings ordered by
	// CreatedAt ascending. Used by the corpus size cap.
	ListActiveOldestFirst(ctx context.Context, limit int) ([]*core.Listing, error)

	// ListCreatedBefore retrieves every listing created strictly before the
	// cutoff, regardless of lifecycle flags, ordered by CreatedAt ascending.
	ListCreatedBefore(ctx context.Context, cutoff time.Time) ([]*core.Listing, error)

	// ListRecent retrieves the limit most recent listings by CreatedAt
	// descending, regardless of lifecycle flags.
	ListRecent(ctx context.Context, limit int) ([]*core.Listing, error)

	// CountListings returns corpus composition counters.
	CountListings(ctx context.Context) (ListingCounts, error)

	// CountByField aggregates active listings by engineering field.
	// Listings with an empty field are excluded.
	CountByField(ctx context.Context) (map[string]int, error)

	// CreatedAtBounds returns the oldest and newest listing CreatedAt values.
	// Both are zero when the corpus is empty.
	CreatedAtBounds(ctx context.Context) (oldest, newest time.Time, err error)
}

// EmbeddingRepository provides operations for managing listing embeddings.
// Embeddings are immutable; replacing a listing's vector means inserting a
// new embedding with a fresh identifier.
type EmbeddingRepository interface {
	Repository

	// AddEmbeddings adds one or more embeddings to storage.
	// Generates new IDs from a sequence and sets CreatedAt if unset.
	AddEmbeddings(ctx context.Context, embeddings ...*core.Embedding) ([]*core.Embedding, error)

	// GetEmbedding retrieves a single embedding by ID.
	// Returns ErrNotFound if the embedding doesn't exist.
	GetEmbedding(ctx context.Context, id core.ID) (*core.Embedding, error)

	// GetEmbeddingByListing retrieves the current embedding for a listing.
	// Returns ErrNotFound if the listing has no embedding.
	GetEmbeddingByListing(ctx context.Context, listingID core.ID) (*core.Embedding, error)

	// ListVectors retrieves the current (listing id, vector) pair for every
	// embedded listing. Re-embedding a listing replaces its entry. Order is
	// unspecified.
	ListVectors(ctx context.Context) ([]core.ListingVector, error)
}

// ClusterRepository provides operations for managing clusters and their
// summaries.
type ClusterRepository interface {
	Repository

	// ReplaceClusters atomically replaces the whole cluster set: existing
	// clusters and their summaries are dropped, the given clusters are
	// inserted with fresh sequence IDs and timestamps.
	ReplaceClusters(ctx context.Context, clusters ...*core.Cluster) ([]*core.Cluster, error)

	// GetCluster retrieves a single cluster by ID.
	// Returns ErrNotFound if the cluster doesn't exist.
	GetCluster(ctx context.Context, id core.ID) (*core.Cluster, error)

	// ListClusters retrieves all clusters ordered by ID.
	ListClusters(ctx context.Context) ([]*core.Cluster, error)

	// CountClusters returns the number of stored clusters.
	CountClusters(ctx context.Context) (int, error)

	// UpsertSummary inserts or replaces the summary for a cluster.
	// At most one summary exists per cluster.
	UpsertSummary(ctx context.Context, summary *core.ClusterSummary) (*core.ClusterSummary, error)

	// GetSummary retrieves the summary for a cluster.
	// Returns ErrNotFound if the cluster has no summary.
	GetSummary(ctx context.Context, clusterID core.ID) (*core.ClusterSummary, error)

	// ListSummaries retrieves all cluster summaries ordered by cluster ID.
	ListSummaries(ctx context.Context) ([]*core.ClusterSummary, error)
}

// ReportRepository provides append-only storage for update reports.
type ReportRepository interface {
	Repository

	// AddReport persists an update report. Reports are immutable once
	// written; there is no update operation.
	AddReport(ctx context.Context, report *core.UpdateReport) (*core.UpdateReport, error)

	// GetLatestReport retrieves the most recently written report.
	// Returns ErrNotFound when no report exists.
	GetLatestReport(ctx context.Context) (*core.UpdateReport, error)

	// ListReports retrieves up to limit reports, most recent first.
	ListReports(ctx context.Context, limit int) ([]*core.UpdateReport, error)
}
