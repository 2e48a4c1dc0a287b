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
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/joblens/joblens/core"
	"github.com/joblens/joblens/storage"
)

// ClusterRepository implements storage.ClusterRepository using BadgerDB.
// Clusters are rebuilt wholesale on every clustering run, so the write path
// is a replace: drop the previous cluster set and its summaries, insert the
// new one under fresh sequence IDs.
type ClusterRepository struct {
	backend  *Backend
	sequence *badger.Sequence
	logger   *slog.Logger
}

var _ storage.ClusterRepository = (*ClusterRepository)(nil)

// NewClusterRepository creates a cluster repository backed by the given backend.
func NewClusterRepository(backend *Backend) (*ClusterRepository, error) {
	seq, err := backend.GetSequence(clusterIDSequence)
	if err != nil {
		return nil, err
	}
	return &ClusterRepository{
		backend:  backend,
		sequence: seq,
		logger:   slog.Default(),
	}, nil
}

// ReplaceClusters atomically replaces the whole cluster set.
func (r *ClusterRepository) ReplaceClusters(ctx context.Context, clusters ...*core.Cluster) ([]*core.Cluster, error) {
	now := time.Now()
	stored := make([]*core.Cluster, 0, len(clusters))

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Stale clusters and stale summaries go together.
		if err := deleteAllKeys(tx, prefixBytes(clusterRecordPrefix)); err != nil {
			return err
		}
		if err := deleteAllKeys(tx, prefixBytes(summaryRecordPrefix)); err != nil {
			return err
		}

		for _, cluster := range clusters {
			if cluster == nil {
				return fmt.Errorf("%w: nil cluster", storage.ErrInvalidQuery)
			}
			rec := *cluster
			id, err := nextID(r.sequence)
			if err != nil {
				return err
			}
			rec.Id = id
			rec.Size = len(rec.ListingIds)
			rec.CreatedAt = now
			rec.UpdatedAt = now

			if err := tx.Set(makeClusterKey(rec.Id), storage.MarshalCluster(&rec)); err != nil {
				return fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
			}
			stored = append(stored, &rec)
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "replaced clusters", "count", len(stored))
	return stored, nil
}

// GetCluster retrieves a single cluster by ID.
func (r *ClusterRepository) GetCluster(ctx context.Context, id core.ID) (*core.Cluster, error) {
	var cluster *core.Cluster

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeClusterKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: cluster %d", storage.ErrNotFound, id)
			}
			return err
		}
		err = item.Value(func(val []byte) error {
			cluster, err = storage.UnmarshalCluster(val)
			return err
		})
		if err != nil {
			return fmt.Errorf("%w: %v", storage.ErrSerializationFailed, err)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return cluster, nil
}

// ListClusters retrieves all clusters ordered by ID.
func (r *ClusterRepository) ListClusters(ctx context.Context) ([]*core.Cluster, error) {
	var clusters []*core.Cluster

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefixBytes(clusterRecordPrefix)
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var cluster *core.Cluster
			err := it.Item().Value(func(val []byte) error {
				var err error
				cluster, err = storage.UnmarshalCluster(val)
				return err
			})
			if err != nil {
				return fmt.Errorf("%w: %v", storage.ErrSerializationFailed, err)
			}
			clusters = append(clusters, cluster)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Decimal key segments sort lexicographically, not numerically.
	sort.Slice(clusters, func(i, j int) bool {
		return clusters[i].Id < clusters[j].Id
	})
	return clusters, nil
}

// CountClusters returns the number of stored clusters.
func (r *ClusterRepository) CountClusters(ctx context.Context) (int, error) {
	count := 0

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefixBytes(clusterRecordPrefix)
		opts.PrefetchValues = false
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// UpsertSummary inserts or replaces the summary for a cluster.
func (r *ClusterRepository) UpsertSummary(ctx context.Context, summary *core.ClusterSummary) (*core.ClusterSummary, error) {
	if summary == nil || summary.ClusterId == 0 {
		return nil, fmt.Errorf("%w: summary needs a cluster reference", storage.ErrInvalidQuery)
	}

	now := time.Now()
	rec := *summary

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		existing, err := readSummary(tx, makeSummaryKey(rec.ClusterId))
		if err != nil {
			return err
		}
		if existing != nil {
			rec.CreatedAt = existing.CreatedAt
		} else if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		rec.UpdatedAt = now

		if err := tx.Set(makeSummaryKey(rec.ClusterId), storage.MarshalClusterSummary(&rec)); err != nil {
			return fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// GetSummary retrieves the summary for a cluster.
func (r *ClusterRepository) GetSummary(ctx context.Context, clusterID core.ID) (*core.ClusterSummary, error) {
	var summary *core.ClusterSummary

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		rec, err := readSummary(tx, makeSummaryKey(clusterID))
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("%w: no summary for cluster %d", storage.ErrNotFound, clusterID)
		}
		summary = rec
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return summary, nil
}

// ListSummaries retrieves all cluster summaries ordered by cluster ID.
func (r *ClusterRepository) ListSummaries(ctx context.Context) ([]*core.ClusterSummary, error) {
	var summaries []*core.ClusterSummary

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefixBytes(summaryRecordPrefix)
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var summary *core.ClusterSummary
			err := it.Item().Value(func(val []byte) error {
				var err error
				summary, err = storage.UnmarshalClusterSummary(val)
				return err
			})
			if err != nil {
				return fmt.Errorf("%w: %v", storage.ErrSerializationFailed, err)
			}
			summaries = append(summaries, summary)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ClusterId < summaries[j].ClusterId
	})
	return summaries, nil
}

// WithTransaction executes a function within a transaction.
func (r *ClusterRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// Close releases the ID sequence and closes the backend.
func (r *ClusterRepository) Close() error {
	r.release()
	return r.backend.Close()
}

// release returns unused sequence values to the store.
func (r *ClusterRepository) release() {
	if err := r.sequence.Release(); err != nil {
		r.logger.Warn("failed to release cluster sequence", "error", err)
	}
}

// readSummary reads a summary record, returning nil when absent.
func readSummary(tx *badger.Txn, key []byte) (*core.ClusterSummary, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var summary *core.ClusterSummary
	err = item.Value(func(val []byte) error {
		summary, err = storage.UnmarshalClusterSummary(val)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrSerializationFailed, err)
	}
	return summary, nil
}

// deleteAllKeys removes every key under a prefix within the transaction.
func deleteAllKeys(tx *badger.Txn, prefix []byte) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.PrefetchValues = false
	it := tx.NewIterator(opts)

	var keys [][]byte
	for it.Rewind(); it.Valid(); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	// Deleting while iterating is not allowed, close first.
	it.Close()

	for _, key := range keys {
		if err := tx.Delete(key); err != nil {
			return fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
		}
	}
	return nil
}
