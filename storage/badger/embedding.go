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

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/joblens/joblens/core"
	"github.com/joblens/joblens/storage"
)

// EmbeddingRepository implements storage.EmbeddingRepository using BadgerDB.
// Embeddings get sequence-generated IDs and a listing-to-embedding index so
// the current vector for a listing is a single point lookup.
type EmbeddingRepository struct {
	backend  *Backend
	sequence *badger.Sequence
	logger   *slog.Logger
}

var _ storage.EmbeddingRepository = (*EmbeddingRepository)(nil)

// NewEmbeddingRepository creates an embedding repository backed by the given backend.
func NewEmbeddingRepository(backend *Backend) (*EmbeddingRepository, error) {
	seq, err := backend.GetSequence(embeddingIDSequence)
	if err != nil {
		return nil, err
	}
	return &EmbeddingRepository{
		backend:  backend,
		sequence: seq,
		logger:   slog.Default(),
	}, nil
}

// nextID returns the next non-zero sequence value.
func nextID(seq *badger.Sequence) (core.ID, error) {
	for {
		n, err := seq.Next()
		if err != nil {
			return 0, err
		}
		// Zero is the unset marker in records, never a valid ID.
		if n != 0 {
			return core.ID(n), nil
		}
	}
}

// AddEmbeddings adds embeddings to storage with fresh sequence IDs.
func (r *EmbeddingRepository) AddEmbeddings(ctx context.Context, embeddings ...*core.Embedding) ([]*core.Embedding, error) {
	if len(embeddings) == 0 {
		return nil, nil
	}

	now := time.Now()
	stored := make([]*core.Embedding, 0, len(embeddings))

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, embedding := range embeddings {
			if embedding == nil {
				return fmt.Errorf("%w: nil embedding", core.ErrInvalidEmbedding)
			}
			rec := *embedding
			if rec.Id == 0 {
				id, err := nextID(r.sequence)
				if err != nil {
					return err
				}
				rec.Id = id
			}
			if rec.CreatedAt.IsZero() {
				rec.CreatedAt = now
			}
			if err := core.ValidateEmbedding(&rec); err != nil {
				return err
			}

			if err := tx.Set(makeEmbeddingKey(rec.Id), storage.MarshalEmbedding(&rec)); err != nil {
				return fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
			}
			if rec.ListingId != 0 {
				if err := tx.Set(makeEmbeddingListingKey(rec.ListingId), storage.MarshalID(rec.Id)); err != nil {
					return fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
				}
			}

			stored = append(stored, &rec)
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "added embeddings", "count", len(stored))
	return stored, nil
}

// GetEmbedding retrieves a single embedding by ID.
func (r *EmbeddingRepository) GetEmbedding(ctx context.Context, id core.ID) (*core.Embedding, error) {
	var embedding *core.Embedding

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		rec, err := readEmbedding(tx, makeEmbeddingKey(id))
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("%w: embedding %d", storage.ErrNotFound, id)
		}
		embedding = rec
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return embedding, nil
}

// GetEmbeddingByListing retrieves the current embedding for a listing.
func (r *EmbeddingRepository) GetEmbeddingByListing(ctx context.Context, listingID core.ID) (*core.Embedding, error) {
	var embedding *core.Embedding

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeEmbeddingListingKey(listingID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: no embedding for listing %d", storage.ErrNotFound, listingID)
			}
			return err
		}
		var id core.ID
		err = item.Value(func(val []byte) error {
			id, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return fmt.Errorf("%w: %v", storage.ErrSerializationFailed, err)
		}
		rec, err := readEmbedding(tx, makeEmbeddingKey(id))
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("%w: embedding %d", storage.ErrNotFound, id)
		}
		embedding = rec
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return embedding, nil
}

// ListVectors retrieves the current (listing id, vector) pair for every
// embedded listing. Superseded vectors are excluded by walking the listing
// index instead of the raw records.
func (r *EmbeddingRepository) ListVectors(ctx context.Context) ([]core.ListingVector, error) {
	var vectors []core.ListingVector

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefixBytes(embeddingListingPrefix)
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var id core.ID
			err := it.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return fmt.Errorf("%w: %v", storage.ErrSerializationFailed, err)
			}
			embedding, err := readEmbedding(tx, makeEmbeddingKey(id))
			if err != nil {
				return err
			}
			if embedding == nil {
				return fmt.Errorf("%w: embedding %d", storage.ErrNotFound, id)
			}
			vectors = append(vectors, core.ListingVector{
				ListingId: embedding.ListingId,
				Vector:    embedding.Vector,
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return vectors, nil
}

// WithTransaction executes a function within a transaction.
func (r *EmbeddingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// Close releases the ID sequence and closes the backend.
func (r *EmbeddingRepository) Close() error {
	r.release()
	return r.backend.Close()
}

// release returns unused sequence values to the store.
func (r *EmbeddingRepository) release() {
	if err := r.sequence.Release(); err != nil {
		r.logger.Warn("failed to release embedding sequence", "error", err)
	}
}

// readEmbedding reads an embedding record, returning nil when absent.
func readEmbedding(tx *badger.Txn, key []byte) (*core.Embedding, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var embedding *core.Embedding
	err = item.Value(func(val []byte) error {
		embedding, err = storage.UnmarshalEmbedding(val)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrSerializationFailed, err)
	}
	return embedding, nil
}
