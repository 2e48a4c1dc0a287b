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


package lifecycle

import "errors"

var (
	// ErrTTLRequired is returned when the listing TTL is missing or not positive.
	ErrTTLRequired = errors.New("listing TTL must be positive")

	// ErrMaxListingsRequired is returned when the corpus size cap is missing or not positive.
	ErrMaxListingsRequired = errors.New("max listings must be positive")

	// ErrListingRepositoryRequired is returned when a listing repository is not provided.
	ErrListingRepositoryRequired = errors.New("listing repository required")

	// ErrClusterRepositoryRequired is returned when a cluster repository is not provided.
	ErrClusterRepositoryRequired = errors.New("cluster repository required")

	// ErrReportRepositoryRequired is returned when a report repository is not provided.
	ErrReportRepositoryRequired = errors.New("report repository required")

	// ErrSweeperRequired is returned when a duplicate sweeper is not provided.
	ErrSweeperRequired = errors.New("duplicate sweeper required")

	// ErrClustererRequired is returned when a cluster builder is not provided.
	ErrClustererRequired = errors.New("cluster builder required")

	// ErrSummarizerRequired is returned when a cluster summarizer is not provided.
	ErrSummarizerRequired = errors.New("cluster summarizer required")

	// ErrIngestorRequired is returned when an ingestion processor is not provided.
	ErrIngestorRequired = errors.New("ingestion processor required")
)
