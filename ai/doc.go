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


// Package ai provides abstractions for the AI services Joblens depends on.
//
// This package defines interfaces for text embeddings, job metadata
// extraction, listing comparison, and summary generation. The domain and
// business logic packages depend on these abstractions rather than on
// concrete implementations.
//
// # Design Principles
//
// The package is designed around four service interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - MetadataExtractor: Extracts structured job metadata from listing text
//   - ContentComparer: Rates the similarity of two listings
//   - SummaryGenerator: Produces prose summaries for cluster reporting
//
// Provider aggregates all four for convenient initialization.
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Public constructors in ai/openai return interface types to enforce
// abstraction. Mock constructors return concrete types so tests can inject
// behavior and assert call counts.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithAPIKey(os.Getenv("OPENAI_API_KEY")))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "Senior Backend Engineer at Acme")
//	meta, err := provider.MetadataExtractor().ExtractMetadata(ctx, listingText)
package ai
