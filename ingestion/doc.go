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


// Package ingestion turns raw job listings into processed listing records.
//
// Collectors deliver raw listings from external sources. The Processor
// enriches each one with LLM-extracted metadata (title, company, location,
// field, skills, with dedicated fallback calls for field and skills),
// generates and stores an embedding, and persists the listing. URLs are
// idempotent: a raw listing whose URL was already processed is skipped.
// Batches are processed concurrently on a bounded worker pool.
package ingestion
