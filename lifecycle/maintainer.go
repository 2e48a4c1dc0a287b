// Copyright 2025 Joblens Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package lifecycle drives the repeatable daily maintenance cycle: expire
// stale listings, resolve duplicates, ingest new listings, re-cluster, cap
// corpus size, and persist an immutable report of the run.
package lifecycle

import (
	"context"
	"log/slog"
	"time"

	"github.com/joblens/joblens/core"
	"github.com/joblens/joblens/ingestion"
	"github.com/joblens/joblens/storage"
)

// Sweeper resolves duplicates across the active corpus.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// Clusterer rebuilds the cluster set from listing embeddings.
type Clusterer interface {
	Rebuild(ctx context.Context) ([]*core.Cluster, error)
}

// Summarizer regenerates summaries for every stored cluster.
type Summarizer interface {
	SummarizeAll(ctx context.Context) (int, error)
}

// Ingestor collects and processes new raw listings.
type Ingestor interface {
	CollectAndProcess(ctx context.Context, collectors ...ingestion.Collector) (ingestion.Result, error)
}

// Maintainer runs the lifecycle pipeline. Runs must not overlap; the badger
// backend's directory lock enforces a single maintainer process per store.
type Maintainer struct {
	config     Config
	listings   storage.ListingRepository
	clusters   storage.ClusterRepository
	reports    storage.ReportRepository
	sweeper    Sweeper
	clusterer  Clusterer
	summarizer Summarizer
	ingestor   Ingestor
	collectors []ingestion.Collector
	logger     *slog.Logger
}

// Option configures a Maintainer.
type Option func(*Maintainer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Maintainer) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// WithCollectors sets the collectors the ingest step runs.
// Without collectors the ingest step is a no-op.
func WithCollectors(collectors ...ingestion.Collector) Option {
	return func(m *Maintainer) error {
		m.collectors = collectors
		return nil
	}
}

// NewMaintainer creates a lifecycle maintainer.
func NewMaintainer(
	config Config,
	listings storage.ListingRepository,
	clusters storage.ClusterRepository,
	reports storage.ReportRepository,
	sweeper Sweeper,
	clusterer Clusterer,
	summarizer Summarizer,
	ingestor Ingestor,
	opts ...Option,
) (*Maintainer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if listings == nil {
		return nil, ErrListingRepositoryRequired
	}
	if clusters == nil {
		return nil, ErrClusterRepositoryRequired
	}
	if reports == nil {
		return nil, ErrReportRepositoryRequired
	}
	if sweeper == nil {
		return nil, ErrSweeperRequired
	}
	if clusterer == nil {
		return nil, ErrClustererRequired
	}
	if summarizer == nil {
		return nil, ErrSummarizerRequired
	}
	if ingestor == nil {
		return nil, ErrIngestorRequired
	}

	m := &Maintainer{
		config:     config,
		listings:   listings,
		clusters:   clusters,
		reports:    reports,
		sweeper:    sweeper,
		clusterer:  clusterer,
		summarizer: summarizer,
		ingestor:   ingestor,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// MarkExpired flags every non-expired listing older than the TTL.
// Idempotent: already-expired listings are excluded from the match.
func (m *Maintainer) MarkExpired(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-m.config.TTL)

	stale, err := m.listings.ListCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	var updates []*core.Listing
	for _, listing := range stale {
		if listing.Expired {
			continue
		}
		updated := *listing
		updated.Expired = true
		updated.ExpiredReason = "ttl"
		updates = append(updates, &updated)
	}
	if len(updates) == 0 {
		return 0, nil
	}

	if _, err := m.listings.UpdateListings(ctx, updates...); err != nil {
		return 0, err
	}

	m.logger.Info("expired stale listings", "count", len(updates), "cutoff", cutoff)
	return len(updates), nil
}

// MaintainListingCount expires exactly enough of the oldest active listings
// to bring the active count back under the configured maximum.
func (m *Maintainer) MaintainListingCount(ctx context.Context) (int, error) {
	counts, err := m.listings.CountListings(ctx)
	if err != nil {
		return 0, err
	}

	excess := counts.Active - m.config.MaxListings
	if excess <= 0 {
		return 0, nil
	}

	oldest, err := m.listings.ListActiveOldestFirst(ctx, excess)
	if err != nil {
		return 0, err
	}

	updates := make([]*core.Listing, 0, len(oldest))
	for _, listing := range oldest {
		updated := *listing
		updated.Expired = true
		updated.ExpiredReason = core.ExpireReasonSizeLimit
		updates = append(updates, &updated)
	}
	if _, err := m.listings.UpdateListings(ctx, updates...); err != nil {
		return 0, err
	}

	m.logger.Info("capped corpus size",
		"expired", len(updates),
		"active", counts.Active,
		"max", m.config.MaxListings)
	return len(updates), nil
}

// Stats assembles a point-in-time snapshot of corpus composition.
func (m *Maintainer) Stats(ctx context.Context) (*core.DatabaseStats, error) {
	counts, err := m.listings.CountListings(ctx)
	if err != nil {
		return nil, err
	}

	clusterCount, err := m.clusters.CountClusters(ctx)
	if err != nil {
		return nil, err
	}

	oldest, newest, err := m.listings.CreatedAtBounds(ctx)
	if err != nil {
		return nil, err
	}

	return &core.DatabaseStats{
		TotalListings:     counts.Total,
		ActiveListings:    counts.Active,
		ExpiredListings:   counts.Expired,
		DuplicateListings: counts.Duplicate,
		Clusters:          clusterCount,
		NewestListing:     newest,
		OldestListing:     oldest,
		GeneratedAt:       time.Now(),
	}, nil
}

// RunDailyUpdate executes the full maintenance pipeline and persists an
// immutable report of the run. A fatal step error aborts the remaining steps
// and is captured in the report instead of full counts; the report write
// itself is the only step whose failure is returned without a report.
func (m *Maintainer) RunDailyUpdate(ctx context.Context) (*core.UpdateReport, error) {
	started := time.Now()
	report := &core.UpdateReport{UpdateTime: started}

	err := m.runSteps(ctx, report)
	if err != nil {
		report.Error = err.Error()
		m.logger.Error("daily update aborted", "err", err)
	}

	if stats, statsErr := m.Stats(ctx); statsErr == nil {
		report.Stats = *stats
		report.ActiveListings = stats.ActiveListings
	} else {
		m.logger.Error("failed to assemble stats for report", "err", statsErr)
	}

	stored, storeErr := m.reports.AddReport(ctx, report)
	if storeErr != nil {
		return nil, storeErr
	}

	m.logger.Info("daily update complete",
		"expired", stored.ExpiredCount,
		"duplicates", stored.DuplicateCount,
		"collected", stored.CollectedCount,
		"processed", stored.ProcessedCount,
		"clusters", stored.ClusterCount,
		"removed", stored.RemovedCount,
		"duration", time.Since(started),
		"aborted", stored.Error != "")
	return stored, err
}

// runSteps executes the pipeline steps in order, filling the report as it
// goes. The first fatal error stops the run.
func (m *Maintainer) runSteps(ctx context.Context, report *core.UpdateReport) error {
	expired, err := m.MarkExpired(ctx)
	if err != nil {
		return err
	}
	report.ExpiredCount = expired

	duplicates, err := m.sweeper.Sweep(ctx)
	if err != nil {
		return err
	}
	report.DuplicateCount = duplicates

	result, err := m.ingestor.CollectAndProcess(ctx, m.collectors...)
	if err != nil {
		return err
	}
	report.CollectedCount = result.Collected
	report.ProcessedCount = result.Succeeded

	// Re-cluster only when ingestion produced something new; the cluster set
	// is otherwise unchanged and summaries stay valid.
	if result.Succeeded > 0 {
		clusters, err := m.clusterer.Rebuild(ctx)
		if err != nil {
			return err
		}
		report.ClusterCount = len(clusters)

		summaries, err := m.summarizer.SummarizeAll(ctx)
		if err != nil {
			return err
		}
		report.SummaryCount = summaries
	}

	removed, err := m.MaintainListingCount(ctx)
	if err != nil {
		return err
	}
	report.RemovedCount = removed

	return nil
}
