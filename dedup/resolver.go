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


// Package dedup finds and marks duplicate job listings.
//
// Duplicates are detected by cosine similarity between listing embeddings.
// Listings without an embedding fall back to an AI content comparison against
// a small window of recent listings. When a pair is confirmed, the newer
// listing survives and the older one is soft-marked as its duplicate.
package dedup

import (
	"context"
	"log/slog"

	"github.com/joblens/joblens/ai"
	"github.com/joblens/joblens/core"
	"github.com/joblens/joblens/similarity"
	"github.com/joblens/joblens/storage"
)

const (
	// DefaultThreshold is the similarity score at or above which two
	// listings count as duplicates.
	DefaultThreshold = 0.9

	// DefaultContentFallbackLimit bounds the content-comparison fallback
	// to the most recent listings. Each comparison is an LLM call.
	DefaultContentFallbackLimit = 5
)

// Resolver detects duplicate listings and marks the older of each pair.
type Resolver struct {
	listings   storage.ListingRepository
	embeddings storage.EmbeddingRepository
	comparer   ai.ContentComparer
	threshold  float32
	fallback   int
	logger     *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithThreshold sets the duplicate similarity threshold.
// Default is DefaultThreshold.
func WithThreshold(threshold float32) Option {
	return func(r *Resolver) error {
		if threshold <= 0 || threshold > 1 {
			return ErrInvalidThreshold
		}
		r.threshold = threshold
		return nil
	}
}

// WithContentFallbackLimit bounds the content-comparison fallback.
// Default is DefaultContentFallbackLimit.
func WithContentFallbackLimit(limit int) Option {
	return func(r *Resolver) error {
		if limit < 0 {
			limit = DefaultContentFallbackLimit
		}
		r.fallback = limit
		return nil
	}
}

// NewResolver creates a new duplicate resolver.
func NewResolver(
	listings storage.ListingRepository,
	embeddings storage.EmbeddingRepository,
	comparer ai.ContentComparer,
	opts ...Option,
) (*Resolver, error) {
	if listings == nil {
		return nil, ErrListingRepositoryRequired
	}
	if embeddings == nil {
		return nil, ErrEmbeddingRepositoryRequired
	}
	if comparer == nil {
		return nil, ErrComparerRequired
	}

	r := &Resolver{
		listings:   listings,
		embeddings: embeddings,
		comparer:   comparer,
		threshold:  DefaultThreshold,
		fallback:   DefaultContentFallbackLimit,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// FindDuplicates returns the IDs of listings that duplicate the given one.
// Listings with an embedding compare by cosine similarity against every
// stored vector. Listings without one fall back to AI content comparison
// against the most recent listings.
func (r *Resolver) FindDuplicates(ctx context.Context, id core.ID) ([]core.ID, error) {
	listing, err := r.listings.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}

	embedding, err := r.embeddings.GetEmbeddingByListing(ctx, id)
	if err != nil {
		r.logger.Warn("listing has no embedding, using content comparison", "listing", id)
		return r.findByContent(ctx, listing)
	}

	vectors, err := r.embeddings.ListVectors(ctx)
	if err != nil {
		return nil, err
	}

	var duplicates []core.ID
	for _, v := range vectors {
		if v.ListingId == id {
			continue
		}
		score, err := similarity.Cosine(embedding.Vector, v.Vector)
		if err != nil {
			r.logger.Warn("skipping malformed vector", "listing", v.ListingId, "err", err)
			continue
		}
		if score >= r.threshold {
			duplicates = append(duplicates, v.ListingId)
		}
	}

	return duplicates, nil
}

// findByContent compares raw listing content against recent listings.
func (r *Resolver) findByContent(ctx context.Context, listing *core.Listing) ([]core.ID, error) {
	if r.fallback == 0 {
		return nil, nil
	}

	// One extra in case the listing itself is among the most recent.
	recent, err := r.listings.ListRecent(ctx, r.fallback+1)
	if err != nil {
		return nil, err
	}

	var duplicates []core.ID
	compared := 0
	for _, candidate := range recent {
		if candidate.Id == listing.Id {
			continue
		}
		if compared >= r.fallback {
			break
		}
		compared++

		score, err := r.comparer.CompareContents(ctx, listing.Content, candidate.Content)
		if err != nil {
			r.logger.Warn("content comparison failed", "listing", listing.Id, "candidate", candidate.Id, "err", err)
			continue
		}
		if score >= r.threshold {
			duplicates = append(duplicates, candidate.Id)
		}
	}

	return duplicates, nil
}

// pairKey identifies an unordered listing pair.
type pairKey struct {
	lo, hi core.ID
}

func makePairKey(a, b core.ID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// Sweep scans all active listings, detects duplicate pairs, and marks the
// older listing of each pair. Returns the number of listings marked.
// Failures on individual listings are logged and skipped so one bad record
// never aborts the sweep.
func (r *Resolver) Sweep(ctx context.Context) (int, error) {
	listings, err := r.listings.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	marked := 0
	checked := make(map[pairKey]bool)
	// Losers marked during this sweep, mapped to their survivors. The
	// ListActive snapshot does not see these updates.
	resolved := make(map[core.ID]core.ID)

	for _, listing := range listings {
		if listing.IsDuplicate {
			continue
		}
		if _, lost := resolved[listing.Id]; lost {
			continue
		}

		duplicates, err := r.FindDuplicates(ctx, listing.Id)
		if err != nil {
			r.logger.Warn("duplicate check failed", "listing", listing.Id, "err", err)
			continue
		}
		if len(duplicates) > 0 {
			r.logger.Info("found potential duplicates", "listing", listing.Id, "count", len(duplicates))
		}

		for _, dupId := range duplicates {
			// The listing under scan may have lost a previous pair.
			if _, lost := resolved[listing.Id]; lost {
				break
			}

			key := makePairKey(listing.Id, dupId)
			if checked[key] {
				continue
			}
			checked[key] = true

			dup, err := r.listings.GetListing(ctx, dupId)
			if err != nil {
				r.logger.Warn("duplicate listing vanished", "listing", dupId, "err", err)
				continue
			}
			// Already resolved, in this sweep or an earlier run.
			if dup.IsDuplicate {
				continue
			}

			// Keep the newer listing. Ties keep the one under scan.
			survivor, loser := listing, dup
			if listing.CreatedAt.Before(dup.CreatedAt) {
				survivor, loser = dup, listing
			}

			// DuplicateOf must land on a non-duplicate. A survivor that
			// lost an earlier pair hands off to its own survivor.
			target := survivor.Id
			for {
				next, ok := resolved[target]
				if !ok {
					break
				}
				target = next
			}
			if target == loser.Id {
				continue
			}

			mark := *loser
			mark.IsDuplicate = true
			mark.DuplicateOf = target
			if _, err := r.listings.UpdateListings(ctx, &mark); err != nil {
				r.logger.Error("failed to mark duplicate", "listing", mark.Id, "err", err)
				continue
			}
			resolved[loser.Id] = target
			marked++

			// Earlier losers may point at the listing that just lost;
			// re-point them at its survivor to keep chains one hop.
			for prevId, survivorId := range resolved {
				if survivorId != loser.Id {
					continue
				}
				prev, err := r.listings.GetListing(ctx, prevId)
				if err != nil {
					r.logger.Warn("marked duplicate vanished", "listing", prevId, "err", err)
					continue
				}
				repoint := *prev
				repoint.DuplicateOf = target
				if _, err := r.listings.UpdateListings(ctx, &repoint); err != nil {
					r.logger.Error("failed to re-point duplicate", "listing", prevId, "err", err)
					continue
				}
				resolved[prevId] = target
			}
		}
	}

	r.logger.Info("duplicate sweep complete", "marked", marked)
	return marked, nil
}
