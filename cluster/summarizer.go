package cluster

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joblens/joblens/ai"
	"github.com/joblens/joblens/core"
	"github.com/joblens/joblens/storage"
)

// Summarizer generates prose summaries for stored clusters.
type Summarizer struct {
	listings  storage.ListingRepository
	clusters  storage.ClusterRepository
	generator ai.SummaryGenerator
	logger    *slog.Logger
}

// SummarizerOption configures a Summarizer.
type SummarizerOption func(*Summarizer) error

// WithSummarizerLogger sets a custom logger.
// Default is slog.Default().
func WithSummarizerLogger(logger *slog.Logger) SummarizerOption {
	return func(s *Summarizer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSummarizer creates a new cluster summarizer.
func NewSummarizer(
	listings storage.ListingRepository,
	clusters storage.ClusterRepository,
	generator ai.SummaryGenerator,
	opts ...SummarizerOption,
) (*Summarizer, error) {
	if listings == nil {
		return nil, ErrListingRepositoryRequired
	}
	if clusters == nil {
		return nil, ErrClusterRepositoryRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	s := &Summarizer{
		listings:  listings,
		clusters:  clusters,
		generator: generator,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Summarize generates and upserts the summary for one cluster.
func (s *Summarizer) Summarize(ctx context.Context, cluster *core.Cluster) (*core.ClusterSummary, error) {
	sampleIds := cluster.ListingIds
	if len(sampleIds) > metadataSampleSize {
		sampleIds = sampleIds[:metadataSampleSize]
	}

	sample, err := s.listings.GetListings(ctx, sampleIds...)
	if err != nil {
		return nil, err
	}

	prompt := buildSummaryPrompt(sample, len(cluster.ListingIds))
	text, err := s.generator.GenerateSummary(ctx, prompt)
	if err != nil {
		return nil, err
	}

	summary := &core.ClusterSummary{
		ClusterId:     cluster.Id,
		Name:          cluster.Name,
		Summary:       text,
		SampleSize:    len(sample),
		TotalListings: len(cluster.ListingIds),
		Metadata:      cluster.Metadata,
	}
	return s.clusters.UpsertSummary(ctx, summary)
}

// SummarizeAll generates summaries for every stored cluster.
// A failing cluster is logged and skipped so the remaining summaries still
// get written. Returns the number of summaries written.
func (s *Summarizer) SummarizeAll(ctx context.Context) (int, error) {
	clusters, err := s.clusters.ListClusters(ctx)
	if err != nil {
		return 0, err
	}

	written := 0
	for _, cluster := range clusters {
		if _, err := s.Summarize(ctx, cluster); err != nil {
			s.logger.Error("failed to summarize cluster", "cluster", cluster.Id, "err", err)
			continue
		}
		written++
	}

	s.logger.Info("cluster summaries updated", "written", written, "clusters", len(clusters))
	return written, nil
}

// buildSummaryPrompt renders the sample listings into the summary request.
func buildSummaryPrompt(sample []*core.Listing, total int) string {
	var sb strings.Builder
	for i, listing := range sample {
		fmt.Fprintf(&sb, "\nListing %d:\n", i+1)
		fmt.Fprintf(&sb, "Title: %s\n", orUnknown(listing.Title))
		fmt.Fprintf(&sb, "Company: %s\n", orUnknown(listing.Company))
		if len(listing.Skills) > 0 {
			fmt.Fprintf(&sb, "Skills: %s\n", strings.Join(listing.Skills, ", "))
		}
		if listing.Field != "" {
			fmt.Fprintf(&sb, "Field: %s\n", listing.Field)
		}
	}

	return fmt.Sprintf(
		"The following are %d sample job listings from a cluster of %d total listings. "+
			"Generate a concise summary (3-4 paragraphs) that describes the common themes, skills, "+
			"requirements, and opportunities in this job cluster. Focus on what makes these jobs similar "+
			"and what key skills would help someone succeed in these roles.\n\n%s",
		len(sample), total, sb.String())
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
