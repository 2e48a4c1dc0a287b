package ingestion

import (
	"context"
	"time"
)

// RawListing is an unprocessed job listing as delivered by a collector.
type RawListing struct {
	URL         string
	Source      string
	Title       string
	Company     string
	Content     string
	CollectedAt time.Time
}

// Collector fetches raw job listings from an external source.
// Implementations own their transport, rate limiting, and retries; the
// processor only sees the collected batch or a failure.
type Collector interface {
	// Name identifies the collector in logs and reports.
	Name() string

	// Collect fetches a batch of raw listings.
	Collect(ctx context.Context) ([]RawListing, error)
}
