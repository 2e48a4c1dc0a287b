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
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/joblens/joblens/core"
	"github.com/joblens/joblens/storage"
)

// ReportRepository implements storage.ReportRepository using BadgerDB.
// Report keys embed a big-endian sequence ID, so key order is write order
// and reverse iteration yields most-recent-first.
type ReportRepository struct {
	backend  *Backend
	sequence *badger.Sequence
	logger   *slog.Logger
}

var _ storage.ReportRepository = (*ReportRepository)(nil)

// NewReportRepository creates a report repository backed by the given backend.
func NewReportRepository(backend *Backend) (*ReportRepository, error) {
	seq, err := backend.GetSequence(reportIDSequence)
	if err != nil {
		return nil, err
	}
	return &ReportRepository{
		backend:  backend,
		sequence: seq,
		logger:   slog.Default(),
	}, nil
}

// AddReport persists an update report under a fresh sequence ID.
func (r *ReportRepository) AddReport(ctx context.Context, report *core.UpdateReport) (*core.UpdateReport, error) {
	if report == nil {
		return nil, fmt.Errorf("%w: nil report", storage.ErrInvalidQuery)
	}

	rec := *report
	id, err := nextID(r.sequence)
	if err != nil {
		return nil, err
	}
	rec.Id = id
	if rec.UpdateTime.IsZero() {
		rec.UpdateTime = time.Now()
	}

	err = r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeReportKey(rec.Id), storage.MarshalUpdateReport(&rec)); err != nil {
			return fmt.Errorf("%w: %v", storage.ErrTransactionFailed, err)
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "added update report", "id", rec.Id)
	return &rec, nil
}

// GetLatestReport retrieves the most recently written report.
func (r *ReportRepository) GetLatestReport(ctx context.Context) (*core.UpdateReport, error) {
	reports, err := r.ListReports(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, fmt.Errorf("%w: no reports", storage.ErrNotFound)
	}
	return reports[0], nil
}

// ListReports retrieves up to limit reports, most recent first.
func (r *ReportRepository) ListReports(ctx context.Context, limit int) ([]*core.UpdateReport, error) {
	var reports []*core.UpdateReport

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefixBytes(reportRecordPrefix)
		opts.Reverse = true
		it := tx.NewIterator(opts)
		defer it.Close()

		seek := append(prefixBytes(reportRecordPrefix), 0xFF)
		for it.Seek(seek); it.Valid(); it.Next() {
			var report *core.UpdateReport
			err := it.Item().Value(func(val []byte) error {
				var err error
				report, err = storage.UnmarshalUpdateReport(val)
				return err
			})
			if err != nil {
				return fmt.Errorf("%w: %v", storage.ErrSerializationFailed, err)
			}
			reports = append(reports, report)
			if limit > 0 && len(reports) >= limit {
				break
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return reports, nil
}

// WithTransaction executes a function within a transaction.
func (r *ReportRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// Close releases the ID sequence and closes the backend.
func (r *ReportRepository) Close() error {
	r.release()
	return r.backend.Close()
}

// release returns unused sequence values to the store.
func (r *ReportRepository) release() {
	if err := r.sequence.Release(); err != nil {
		r.logger.Warn("failed to release report sequence", "error", err)
	}
}
