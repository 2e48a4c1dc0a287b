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

// ListingRepository implements storage.ListingRepository using BadgerDB.
// Listings are keyed by their content-derived ID and carry two secondary
// indexes: a creation-date index for chronological scans and a URL index
// for upsert lookups.
type ListingRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.ListingRepository = (*ListingRepository)(nil)

// NewListingRepository creates a listing repository backed by the given backend.
func NewListingRepository(backend *Backend) *ListingRepository {
	return &ListingRepository{
		backend: backend,
		logger:  slog.Default(),
	}
}

// AddListings adds listings to storage with URL upsert semantics.
func (r *ListingRepository) AddListings(ctx context.Context, listings ...*core.Listing) ([]*core.Listing, error) {
	if len(listings) == 0 {
		return nil, nil
	}

	now := time.Now()
	stored := make([]*core.Listing, 0, len(listings))

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, listing := range listings {
			if listing == nil {
				return fmt.Errorf("%w: nil listing", core.ErrInvalidListing)
			}
			rec := *listing
			if rec.Id == 0 {
				rec.Id = core.IDFromContent(rec.URL)
			}
			if rec.CreatedAt.IsZero() {
				rec.CreatedAt = now
			}
			rec.UpdatedAt = now

			// Same URL means same record. Keep the original creation
			// time and date index entry, refresh everything else.
			existing, err := readListing(tx, makeListingKey(rec.Id))
			if err != nil {
				return err
			}
			if existing != nil {
				rec.CreatedAt = existing.CreatedAt
			}

			if err := core.ValidateListing(&rec); err != nil {
				return err
			}

			if err := tx.Set(makeListingKey(rec.Id), storage.MarshalListing(&rec)); err != nil {
				return fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
			}
			if existing == nil {
				if err := tx.Set(makeListingDateKey(rec.CreatedAt, rec.Id), nil); err != nil {
					return fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
				}
			}
			if err := tx.Set(makeListingURLKey(rec.URL), storage.MarshalID(rec.Id)); err != nil {
				return fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
			}

			stored = append(stored, &rec)
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "added listings", "count", len(stored))
	return stored, nil
}

// UpdateListings updates existing listings in place.
func (r *ListingRepository) UpdateListings(ctx context.Context, listings ...*core.Listing) ([]*core.Listing, error) {
	if len(listings) == 0 {
		return nil, nil
	}

	now := time.Now()
	stored := make([]*core.Listing, 0, len(listings))

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, listing := range listings {
			if listing == nil {
				return fmt.Errorf("%w: nil listing", core.ErrInvalidListing)
			}
			existing, err := readListing(tx, makeListingKey(listing.Id))
			if err != nil {
				return err
			}
			if existing == nil {
				return fmt.Errorf("%w: listing %d", storage.ErrNotFound, listing.Id)
			}

			rec := *listing
			rec.CreatedAt = existing.CreatedAt
			rec.UpdatedAt = now
			if err := core.ValidateListing(&rec); err != nil {
				return err
			}

			if err := tx.Set(makeListingKey(rec.Id), storage.MarshalListing(&rec)); err != nil {
				return fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
			}
			if rec.URL != existing.URL {
				if err := tx.Delete(makeListingURLKey(existing.URL)); err != nil {
					return fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
				}
				if err := tx.Set(makeListingURLKey(rec.URL), storage.MarshalID(rec.Id)); err != nil {
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

	return stored, nil
}

// GetListing retrieves a single listing by ID.
func (r *ListingRepository) GetListing(ctx context.Context, id core.ID) (*core.Listing, error) {
	var listing *core.Listing

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		rec, err := readListing(tx, makeListingKey(id))
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("%w: listing %d", storage.ErrNotFound, id)
		}
		listing = rec
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return listing, nil
}

// GetListings retrieves existing listings for the given IDs.
func (r *ListingRepository) GetListings(ctx context.Context, ids ...core.ID) ([]*core.Listing, error) {
	listings := make([]*core.Listing, 0, len(ids))

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			rec, err := readListing(tx, makeListingKey(id))
			if err != nil {
				return err
			}
			if rec != nil {
				listings = append(listings, rec)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return listings, nil
}

// GetListingByURL retrieves a listing via the URL index.
func (r *ListingRepository) GetListingByURL(ctx context.Context, url string) (*core.Listing, error) {
	var listing *core.Listing

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeListingURLKey(url))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: url %q", storage.ErrNotFound, url)
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
		rec, err := readListing(tx, makeListingKey(id))
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("%w: listing %d", storage.ErrNotFound, id)
		}
		listing = rec
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return listing, nil
}

// ListActive retrieves all active listings ordered by CreatedAt ascending.
func (r *ListingRepository) ListActive(ctx context.Context) ([]*core.Listing, error) {
	return r.listActiveLimit(ctx, 0)
}

// ListActiveOldestFirst retrieves up to limit active listings, oldest first.
func (r *ListingRepository) ListActiveOldestFirst(ctx context.Context, limit int) ([]*core.Listing, error) {
	return r.listActiveLimit(ctx, limit)
}

func (r *ListingRepository) listActiveLimit(ctx context.Context, limit int) ([]*core.Listing, error) {
	var listings []*core.Listing

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefixBytes(listingDatePrefix)
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			_, id, err := parseListingDateKey(it.Item().Key())
			if err != nil {
				return err
			}
			rec, err := readListing(tx, makeListingKey(id))
			if err != nil {
				return err
			}
			if rec == nil || !rec.Active() {
				continue
			}
			listings = append(listings, rec)
			if limit > 0 && len(listings) >= limit {
				break
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return listings, nil
}

// ListCreatedBefore retrieves every listing created strictly before the
// cutoff, regardless of lifecycle flags, oldest first. The date index is
// chronological so iteration stops at the first entry past the cutoff.
func (r *ListingRepository) ListCreatedBefore(ctx context.Context, cutoff time.Time) ([]*core.Listing, error) {
	var listings []*core.Listing

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefixBytes(listingDatePrefix)
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			createdAt, id, err := parseListingDateKey(it.Item().Key())
			if err != nil {
				return err
			}
			if !createdAt.Before(cutoff) {
				break
			}
			rec, err := readListing(tx, makeListingKey(id))
			if err != nil {
				return err
			}
			if rec == nil {
				continue
			}
			listings = append(listings, rec)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return listings, nil
}

// ListRecent retrieves the limit most recent listings by CreatedAt descending.
func (r *ListingRepository) ListRecent(ctx context.Context, limit int) ([]*core.Listing, error) {
	var listings []*core.Listing

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefixBytes(listingDatePrefix)
		opts.Reverse = true
		it := tx.NewIterator(opts)
		defer it.Close()

		// Reverse iteration needs a seek position past every date key.
		seek := append(prefixBytes(listingDatePrefix), 0xFF)
		for it.Seek(seek); it.Valid(); it.Next() {
			_, id, err := parseListingDateKey(it.Item().Key())
			if err != nil {
				return err
			}
			rec, err := readListing(tx, makeListingKey(id))
			if err != nil {
				return err
			}
			if rec == nil {
				continue
			}
			listings = append(listings, rec)
			if limit > 0 && len(listings) >= limit {
				break
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return listings, nil
}

// CountListings returns corpus composition counters.
func (r *ListingRepository) CountListings(ctx context.Context) (storage.ListingCounts, error) {
	var counts storage.ListingCounts

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return forEachListing(tx, func(rec *core.Listing) error {
			counts.Total++
			switch {
			case rec.Expired:
				counts.Expired++
			case rec.IsDuplicate:
				counts.Duplicate++
			default:
				counts.Active++
			}
			return nil
		})
	}, false)
	if err != nil {
		return storage.ListingCounts{}, err
	}

	return counts, nil
}

// CountByField aggregates active listings by engineering field.
func (r *ListingRepository) CountByField(ctx context.Context) (map[string]int, error) {
	fields := make(map[string]int)

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return forEachListing(tx, func(rec *core.Listing) error {
			if rec.Active() && rec.Field != "" {
				fields[rec.Field]++
			}
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}

	return fields, nil
}

// CreatedAtBounds returns the oldest and newest listing creation times.
func (r *ListingRepository) CreatedAtBounds(ctx context.Context) (time.Time, time.Time, error) {
	var oldest, newest time.Time

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefixBytes(listingDatePrefix)
		opts.PrefetchValues = false
		it := tx.NewIterator(opts)
		defer it.Close()

		it.Rewind()
		if !it.Valid() {
			return nil
		}
		ts, _, err := parseListingDateKey(it.Item().Key())
		if err != nil {
			return err
		}
		oldest = ts

		for ; it.Valid(); it.Next() {
			ts, _, err = parseListingDateKey(it.Item().Key())
			if err != nil {
				return err
			}
		}
		newest = ts
		return nil
	}, false)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return oldest, newest, nil
}

// WithTransaction executes a function within a transaction.
func (r *ListingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// Close closes the underlying backend.
func (r *ListingRepository) Close() error {
	return r.backend.Close()
}

// readListing reads a listing record, returning nil when the key is absent.
func readListing(tx *badger.Txn, key []byte) (*core.Listing, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var listing *core.Listing
	err = item.Value(func(val []byte) error {
		listing, err = storage.UnmarshalListing(val)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrSerializationFailed, err)
	}
	return listing, nil
}

// forEachListing scans every listing record in key order.
func forEachListing(tx *badger.Txn, fn func(*core.Listing) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefixBytes(listingRecordPrefix)
	it := tx.NewIterator(opts)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		var listing *core.Listing
		err := it.Item().Value(func(val []byte) error {
			var err error
			listing, err = storage.UnmarshalListing(val)
			return err
		})
		if err != nil {
			return fmt.Errorf("%w: %v", storage.ErrSerializationFailed, err)
		}
		if err := fn(listing); err != nil {
			return err
		}
	}
	return nil
}
