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

package joblens

import (
	"log/slog"

	"github.com/joblens/joblens/ai"
	"github.com/joblens/joblens/ai/openai"
	"github.com/joblens/joblens/cluster"
	"github.com/joblens/joblens/dedup"
	"github.com/joblens/joblens/ingestion"
	"github.com/joblens/joblens/lifecycle"
	"github.com/joblens/joblens/search"
	"github.com/joblens/joblens/storage"
	"github.com/joblens/joblens/storage/badger"
)

// Database bundles the storage backend, repositories, and AI provider, and
// constructs the engine components on top of them.
type Database struct {
	backend    *badger.Backend
	listings   storage.ListingRepository
	embeddings storage.EmbeddingRepository
	clusters   storage.ClusterRepository
	reports    storage.ReportRepository
	provider   ai.Provider
	logger     *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
}

// WithAIConfig sets the AI service configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithProvider injects an already-constructed AI provider, bypassing the
// configured OpenAI provider. Used mainly for testing with mocks.
func WithProvider(provider ai.Provider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// NewDatabase opens the store at filePath and wires up repositories and the
// AI provider.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	listings := badger.NewListingRepository(backend)

	embeddings, err := badger.NewEmbeddingRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	clusters, err := badger.NewClusterRepository(backend)
	if err != nil {
		embeddings.Close()
		backend.Close()
		return nil, err
	}

	reports, err := badger.NewReportRepository(backend)
	if err != nil {
		clusters.Close()
		embeddings.Close()
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			reports.Close()
			clusters.Close()
			embeddings.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Database{
		backend:    backend,
		listings:   listings,
		embeddings: embeddings,
		clusters:   clusters,
		reports:    reports,
		provider:   provider,
		logger:     slog.Default(),
	}, nil
}

// Close releases the AI provider and closes the store.
func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	// Repository Close calls all funnel into the shared backend, which only
	// closes once; close each to release its ID sequence first.
	if err := db.reports.Close(); err != nil {
		db.logger.Error("error closing report repository", "err", err)
		return err
	}
	if err := db.clusters.Close(); err != nil {
		db.logger.Error("error closing cluster repository", "err", err)
		return err
	}
	if err := db.embeddings.Close(); err != nil {
		db.logger.Error("error closing embedding repository", "err", err)
		return err
	}
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) ListingRepository() storage.ListingRepository {
	return db.listings
}

func (db *Database) EmbeddingRepository() storage.EmbeddingRepository {
	return db.embeddings
}

func (db *Database) ClusterRepository() storage.ClusterRepository {
	return db.clusters
}

func (db *Database) ReportRepository() storage.ReportRepository {
	return db.reports
}

func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.listings, db.embeddings, db.clusters, db.provider.Embedder(), opts...)
}

func (db *Database) NewResolver(opts ...dedup.Option) (*dedup.Resolver, error) {
	return dedup.NewResolver(db.listings, db.embeddings, db.provider.ContentComparer(), opts...)
}

func (db *Database) NewClusterBuilder(opts ...cluster.BuilderOption) (*cluster.Builder, error) {
	return cluster.NewBuilder(db.listings, db.embeddings, db.clusters, opts...)
}

func (db *Database) NewSummarizer(opts ...cluster.SummarizerOption) (*cluster.Summarizer, error) {
	return cluster.NewSummarizer(db.listings, db.clusters, db.provider.SummaryGenerator(), opts...)
}

func (db *Database) NewProcessor(opts ...ingestion.Option) (*ingestion.Processor, error) {
	return ingestion.NewProcessor(db.listings, db.embeddings, db.provider, opts...)
}

// NewMaintainer builds the full lifecycle pipeline with default component
// settings. The returned processor backs the maintainer's ingest step and
// must be released by the caller after the maintainer is done.
func (db *Database) NewMaintainer(config lifecycle.Config, opts ...lifecycle.Option) (*lifecycle.Maintainer, *ingestion.Processor, error) {
	resolver, err := db.NewResolver()
	if err != nil {
		return nil, nil, err
	}
	builder, err := db.NewClusterBuilder()
	if err != nil {
		return nil, nil, err
	}
	summarizer, err := db.NewSummarizer()
	if err != nil {
		return nil, nil, err
	}
	processor, err := db.NewProcessor()
	if err != nil {
		return nil, nil, err
	}

	maintainer, err := lifecycle.NewMaintainer(config,
		db.listings, db.clusters, db.reports,
		resolver, builder, summarizer, processor, opts...)
	if err != nil {
		processor.Release()
		return nil, nil, err
	}
	return maintainer, processor, nil
}
