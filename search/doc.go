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


// Package search provides semantic search over job listings.
//
// All vector search modes normalize to "produce a query vector, then rank":
// free-text queries embed the text directly, skill, company+role, and field
// searches synthesize a canonical phrase before embedding, and
// similar-to-listing search reuses the listing's stored vector without an
// embedding call. Cluster lookup is the one non-vector mode: it returns the
// literal members of a cluster with a fixed score of 1.0.
//
// Results are ranked by descending similarity, filtered to a threshold, and
// truncated to a limit. A listing reference that cannot be resolved is
// skipped and logged, never surfaced as an error.
package search
