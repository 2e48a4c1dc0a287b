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


// Package cluster groups job listings into topical clusters.
//
// Clustering runs density-based grouping (DBSCAN) over listing embeddings
// with cosine distance. Each rebuild replaces the stored cluster set
// wholesale, derives human-readable names and metadata from a sample of
// members, and rewrites the cluster reference on every affected listing.
// Summaries for the resulting clusters come from an AI summary generator.
package cluster

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/joblens/joblens/core"
	"github.com/joblens/joblens/storage"
)

const (
	// DefaultThreshold is the cosine similarity above which two listings
	// land in the same dense region. DBSCAN eps is 1 - threshold.
	DefaultThreshold = 0.7

	// minClusterSize is the DBSCAN min_samples: a listing needs at least
	// one neighbor within eps to seed a cluster.
	minClusterSize = 2

	// metadataSampleSize bounds how many members contribute to cluster
	// metadata and naming.
	metadataSampleSize = 5
)

// Builder rebuilds the cluster set from listing embeddings.
type Builder struct {
	listings   storage.ListingRepository
	embeddings storage.EmbeddingRepository
	clusters   storage.ClusterRepository
	threshold  float32
	logger     *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder) error

// WithBuilderLogger sets a custom logger.
// Default is slog.Default().
func WithBuilderLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// WithThreshold sets the clustering similarity threshold.
// Default is DefaultThreshold.
func WithThreshold(threshold float32) BuilderOption {
	return func(b *Builder) error {
		if threshold <= 0 || threshold >= 1 {
			return ErrInvalidThreshold
		}
		b.threshold = threshold
		return nil
	}
}

// NewBuilder creates a new cluster builder.
func NewBuilder(
	listings storage.ListingRepository,
	embeddings storage.EmbeddingRepository,
	clusters storage.ClusterRepository,
	opts ...BuilderOption,
) (*Builder, error) {
	if listings == nil {
		return nil, ErrListingRepositoryRequired
	}
	if embeddings == nil {
		return nil, ErrEmbeddingRepositoryRequired
	}
	if clusters == nil {
		return nil, ErrClusterRepositoryRequired
	}

	b := &Builder{
		listings:   listings,
		embeddings: embeddings,
		clusters:   clusters,
		threshold:  DefaultThreshold,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Rebuild groups all embedded listings into clusters and replaces the stored
// cluster set. Noise points join no cluster. Every listing's cluster
// reference is rewritten: members point at their new cluster, everything
// else is cleared.
func (b *Builder) Rebuild(ctx context.Context) ([]*core.Cluster, error) {
	vectors, err := b.embeddings.ListVectors(ctx)
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		b.logger.Warn("no embedded listings found for clustering")
		return b.replaceAndRewrite(ctx, nil)
	}

	matrix := make([][]float32, len(vectors))
	for i, v := range vectors {
		matrix[i] = v.Vector
	}

	labels, err := dbscan(matrix, 1.0-b.threshold, minClusterSize)
	if err != nil {
		return nil, err
	}

	// Group member listings by label, keeping scan order inside each group.
	groups := make(map[int][]core.ID)
	for i, label := range labels {
		if label == NoiseLabel {
			continue
		}
		groups[label] = append(groups[label], vectors[i].ListingId)
	}

	labelOrder := make([]int, 0, len(groups))
	for label := range groups {
		labelOrder = append(labelOrder, label)
	}
	sort.Ints(labelOrder)

	clusters := make([]*core.Cluster, 0, len(groups))
	for _, label := range labelOrder {
		members := groups[label]
		meta, name, err := b.deriveMetadata(ctx, members)
		if err != nil {
			return nil, err
		}
		clusters = append(clusters, &core.Cluster{
			Label:      label,
			Name:       name,
			ListingIds: members,
			Metadata:   meta,
		})
	}

	stored, err := b.replaceAndRewrite(ctx, clusters)
	if err != nil {
		return nil, err
	}

	b.logger.Info("rebuilt clusters", "clusters", len(stored), "listings", len(vectors))
	return stored, nil
}

// replaceAndRewrite stores the new cluster set and updates listing references.
func (b *Builder) replaceAndRewrite(ctx context.Context, clusters []*core.Cluster) ([]*core.Cluster, error) {
	stored, err := b.clusters.ReplaceClusters(ctx, clusters...)
	if err != nil {
		return nil, err
	}

	memberOf := make(map[core.ID]core.ID)
	for _, c := range stored {
		for _, id := range c.ListingIds {
			memberOf[id] = c.Id
		}
	}

	listings, err := b.listings.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	var updates []*core.Listing
	for _, listing := range listings {
		want := memberOf[listing.Id]
		if listing.ClusterId == want {
			continue
		}
		updated := *listing
		updated.ClusterId = want
		updates = append(updates, &updated)
	}
	if len(updates) > 0 {
		if _, err := b.listings.UpdateListings(ctx, updates...); err != nil {
			return nil, err
		}
	}

	return stored, nil
}

// deriveMetadata builds cluster metadata and a display name from a sample of
// member listings.
func (b *Builder) deriveMetadata(ctx context.Context, members []core.ID) (core.ClusterMetadata, string, error) {
	sampleIds := members
	if len(sampleIds) > metadataSampleSize {
		sampleIds = sampleIds[:metadataSampleSize]
	}

	sample, err := b.listings.GetListings(ctx, sampleIds...)
	if err != nil {
		return core.ClusterMetadata{}, "", err
	}
	if len(sample) == 0 {
		return core.ClusterMetadata{}, "Unknown Cluster", nil
	}

	// Dominant field by frequency across the sample.
	fieldCounts := make(map[string]int)
	fieldOrder := make([]string, 0, len(sample))
	for _, listing := range sample {
		if _, seen := fieldCounts[listing.Field]; !seen {
			fieldOrder = append(fieldOrder, listing.Field)
		}
		fieldCounts[listing.Field]++
	}
	dominantField := ""
	best := 0
	for _, field := range fieldOrder {
		if fieldCounts[field] > best {
			dominantField = field
			best = fieldCounts[field]
		}
	}

	// Unique companies and skills, first-seen order.
	var companies []string
	seenCompany := make(map[string]bool)
	var skills []string
	seenSkill := make(map[string]bool)
	for _, listing := range sample {
		if listing.Company != "" && !seenCompany[listing.Company] {
			seenCompany[listing.Company] = true
			companies = append(companies, listing.Company)
		}
		for _, skill := range listing.Skills {
			if skill != "" && !seenSkill[skill] {
				seenSkill[skill] = true
				skills = append(skills, skill)
			}
		}
	}

	name := clusterName(dominantField, companies, skills, members)

	meta := core.ClusterMetadata{
		DominantField: dominantField,
		Companies:     truncateList(companies, 5),
		TopSkills:     truncateList(skills, 10),
	}
	return meta, name, nil
}

// clusterName picks a display name by precedence: dominant field, then a
// short company list, then skills, then an opaque fallback.
func clusterName(field string, companies, skills []string, members []core.ID) string {
	switch {
	case field != "":
		return field + " Jobs"
	case len(companies) > 0 && len(companies) <= 3:
		return strings.Join(companies, ", ") + " Jobs"
	case len(skills) > 0:
		return "Jobs requiring " + strings.Join(truncateList(skills, 3), ", ")
	default:
		return fmt.Sprintf("Job Cluster (ID: %d)", members[0])
	}
}

func truncateList(items []string, max int) []string {
	if len(items) <= max {
		return items
	}
	return items[:max]
}
