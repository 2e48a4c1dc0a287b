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


package dedup

import "errors"

var (
	// ErrListingRepositoryRequired indicates a nil listing repository.
	ErrListingRepositoryRequired = errors.New("dedup: listing repository is required")

	// ErrEmbeddingRepositoryRequired indicates a nil embedding repository.
	ErrEmbeddingRepositoryRequired = errors.New("dedup: embedding repository is required")

	// ErrComparerRequired indicates a nil content comparer.
	ErrComparerRequired = errors.New("dedup: content comparer is required")

	// ErrInvalidThreshold indicates a similarity threshold outside (0, 1].
	ErrInvalidThreshold = errors.New("dedup: threshold must be in (0, 1]")
)
