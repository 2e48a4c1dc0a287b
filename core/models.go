package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Listing IDs are content-derived from the listing URL; embedding, cluster,
// and report IDs come from database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ExpireReasonSizeLimit marks listings expired by the corpus size cap rather
// than by age.
const ExpireReasonSizeLimit = "database_size_limit"

// Listing represents a processed job listing.
// Lifecycle flags are soft-delete tombstones: listings are never hard-deleted,
// since update reports and duplicate back-references depend on expired and
// duplicate records remaining queryable.
type Listing struct {
	Id            ID
	URL           string
	Source        string
	Title         string
	Company       string
	Location      string
	Field         string   // engineering field, e.g. "Robotics"
	Skills        []string // required skills, ordered as extracted
	Content       string   // free-text listing content (truncated for embedding)
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CollectedAt   time.Time
	Expired       bool
	ExpiredReason string
	IsDuplicate   bool
	DuplicateOf   ID // surviving listing id; 0 unless IsDuplicate
	ClusterId     ID // 0 until assigned by the cluster builder
	EmbeddingId   ID // 0 until an embedding is stored
}

// Active reports whether the listing is part of the live corpus.
func (l *Listing) Active() bool {
	return !l.Expired && !l.IsDuplicate
}

// Embedding holds the vector for a single listing. Embeddings are never
// mutated; content changes are handled by inserting a replacement with a new
// identifier.
type Embedding struct {
	Id        ID
	ListingId ID
	Vector    []float32
	CreatedAt time.Time
}

// ClusterMetadata is the deterministic identity derived from a cluster's
// first five members.
type ClusterMetadata struct {
	DominantField string
	Companies     []string // up to 5 distinct non-empty company names
	TopSkills     []string // union of up to 10 skills
}

// Cluster is a density-based group of listings. Clusters are recomputed
// wholesale on every build, never updated incrementally.
type Cluster struct {
	Id         ID
	Label      int // density label from the clustering pass
	Name       string
	Size       int
	ListingIds []ID
	Metadata   ClusterMetadata
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ClusterSummary is the narrative description of a cluster, at most one per
// cluster, upserted on regeneration.
type ClusterSummary struct {
	ClusterId     ID
	Name          string
	Summary       string
	SampleSize    int
	TotalListings int
	Metadata      ClusterMetadata
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DatabaseStats is a point-in-time snapshot of corpus composition.
type DatabaseStats struct {
	TotalListings     int
	ActiveListings    int
	ExpiredListings   int
	DuplicateListings int
	Clusters          int
	NewestListing     time.Time
	OldestListing     time.Time
	GeneratedAt       time.Time
}

// UpdateReport records one lifecycle maintainer run. Reports are append-only
// and immutable once written.
type UpdateReport struct {
	Id             ID
	UpdateTime     time.Time
	ExpiredCount   int
	DuplicateCount int
	CollectedCount int
	ProcessedCount int
	ClusterCount   int
	SummaryCount   int
	RemovedCount   int
	ActiveListings int
	Stats          DatabaseStats
	Error          string // non-empty when the run aborted before completing
}

// SearchResult pairs a listing with its relevance score.
type SearchResult struct {
	Listing *Listing
	Score   float32
}

// ListingVector pairs a listing id with its embedding vector for batch
// similarity operations.
type ListingVector struct {
	ListingId ID
	Vector    []float32
}
