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


package badger

// Repositories bundles every repository sharing one backend.
type Repositories struct {
	Listings   *ListingRepository
	Embeddings *EmbeddingRepository
	Clusters   *ClusterRepository
	Reports    *ReportRepository
	Backend    *Backend
}

// Close releases every ID sequence and closes the shared backend once.
func (r *Repositories) Close() error {
	r.Embeddings.release()
	r.Clusters.release()
	r.Reports.release()
	return r.Backend.Close()
}

// OpenRepositories opens the backend at path and wires all repositories to it.
func OpenRepositories(path string, inMemory bool) (*Repositories, error) {
	backend, err := OpenBackend(path, inMemory)
	if err != nil {
		return nil, err
	}

	embeddings, err := NewEmbeddingRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	clusters, err := NewClusterRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	reports, err := NewReportRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Repositories{
		Listings:   NewListingRepository(backend),
		Embeddings: embeddings,
		Clusters:   clusters,
		Reports:    reports,
		Backend:    backend,
	}, nil
}

// NewMemoryRepositories creates in-memory repositories for testing.
// Caller must close the returned bundle when done.
func NewMemoryRepositories() (*Repositories, error) {
	return OpenRepositories("", true)
}
