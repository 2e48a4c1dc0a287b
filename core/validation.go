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


package core

import (
	"fmt"
	"time"
)

// ValidateListing validates a Listing according to domain rules.
//
// Validation rules:
//   - URL must not be empty
//   - Content must not be empty
//   - CreatedAt must not be in the future
//   - IsDuplicate implies a non-zero DuplicateOf reference
//
// NOT validated (populated by processors):
//   - EmbeddingId (0 is valid until the embedding pipeline runs)
//   - ClusterId (0 is valid until the cluster builder runs)
func ValidateListing(listing *Listing) error {
	if listing == nil {
		return fmt.Errorf("%w: listing is nil", ErrInvalidListing)
	}

	if listing.URL == "" {
		return fmt.Errorf("%w: %w", ErrInvalidListing, ErrEmptyURL)
	}

	if listing.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidListing, ErrEmptyContent)
	}

	if !IsValidTimestamp(listing.CreatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidListing, ErrInvalidTimestamp)
	}

	if listing.IsDuplicate && listing.DuplicateOf == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidListing, ErrMissingDuplicateRef)
	}

	return nil
}

// ValidateEmbedding validates an Embedding according to domain rules.
//
// Validation rules:
//   - Vector must not be empty
//
// NOT validated:
//   - ListingId (0 is valid while the owning listing is still being inserted)
//   - ID (0 is valid from database sequences)
func ValidateEmbedding(embedding *Embedding) error {
	if embedding == nil {
		return fmt.Errorf("%w: embedding is nil", ErrInvalidEmbedding)
	}

	if len(embedding.Vector) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidEmbedding, ErrEmptyVector)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
