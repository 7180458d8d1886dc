package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/mgit-app/mgit/internal/operations"
	"github.com/mgit-app/mgit/pkg/badgerfx"
)

const (
	prefix = "history:"

	prefixByID   = prefix + "id:"
	prefixByRepo = prefix + "repo:"
	prefixByKind = prefix + "kind:"
)

// Repository stores job records in badger, indexed by repository path and by kind.
type Repository struct {
	db      *badger.DB
	records *badgerfx.Repository[*recordModel]
}

func NewRepository(db *badger.DB) *Repository {
	return &Repository{
		db:      db,
		records: badgerfx.NewRepository(recordKey, func() *recordModel { return &recordModel{} }),
	}
}

// Save creates or replaces a record.
func (r *Repository) Save(_ context.Context, record *Record) error {
	model := newRecordModel(record)

	err := r.db.Update(func(txn *badger.Txn) error {
		if old, err := r.read(txn, model.ID); err == nil {
			if rmErr := r.records.DeleteIndexes(txn, old); rmErr != nil {
				return rmErr
			}
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}

		return r.records.Write(txn, model)
	})
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}

	return nil
}

// Update applies updater to an existing record.
func (r *Repository) Update(_ context.Context, id uuid.UUID, updater func(*Record) error) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		old, err := r.read(txn, id)
		if err != nil {
			return err
		}

		record := newRecord(old)
		if updErr := updater(record); updErr != nil {
			return updErr
		}
		if record.ID != old.ID || record.RepoPath != old.RepoPath || record.Kind != old.Kind ||
			!record.StartedAt.Equal(old.StartedAt) {
			return fmt.Errorf("cannot change identity of record %s", id)
		}

		return r.records.Write(txn, newRecordModel(record))
	})
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}

	return nil
}

// GetByID retrieves a record by job ID.
func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*Record, error) {
	var record *recordModel

	err := r.db.View(func(txn *badger.Txn) error {
		found, err := r.read(txn, id)
		if err == nil {
			record = found
		}
		return err
	})

	return newRecord(record), err
}

// Filter narrows a listing. Empty fields match everything.
type Filter struct {
	RepoPath string
	Kind     operations.Kind
}

// List returns up to limit records matching filter, newest first. A limit of zero means no limit.
func (r *Repository) List(_ context.Context, filter Filter, limit int) ([]Record, error) {
	records := []Record{}

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.PrefetchSize = 10

		var (
			found []*recordModel
			err   error
		)
		switch {
		case filter.RepoPath != "" && filter.Kind != "":
			found, err = r.records.ListByIndex(txn, repoPrefix(filter.RepoPath), opts, 0)
		case filter.RepoPath != "":
			found, err = r.records.ListByIndex(txn, repoPrefix(filter.RepoPath), opts, limit)
		case filter.Kind != "":
			found, err = r.records.ListByIndex(txn, kindPrefix(filter.Kind), opts, limit)
		default:
			// job IDs are UUIDv7 so key order is start order
			found, err = r.records.List(txn, prefixByID, opts, limit)
		}
		if err != nil {
			return err
		}

		for _, m := range found {
			if filter.Kind != "" && m.Kind != filter.Kind {
				continue
			}
			if limit > 0 && len(records) >= limit {
				break
			}
			records = append(records, *newRecord(m))
		}
		return nil
	})
	if err != nil {
		return records, fmt.Errorf("failed to list records: %w", err)
	}

	return records, nil
}

// DeleteByRepository removes every record of repoPath and returns how many were removed.
func (r *Repository) DeleteByRepository(_ context.Context, repoPath string) (int, error) {
	removed := 0

	err := r.db.Update(func(txn *badger.Txn) error {
		found, err := r.records.ListByIndex(txn, repoPrefix(repoPath), badger.DefaultIteratorOptions, 0)
		if err != nil {
			return err
		}

		for _, m := range found {
			if delErr := r.records.Delete(txn, m.ID.String()); delErr != nil {
				return delErr
			}
			removed++
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete records: %w", err)
	}

	return removed, nil
}

func (r *Repository) read(txn *badger.Txn, id uuid.UUID) (*recordModel, error) {
	record, err := r.records.Read(txn, id.String())
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id.String())
	}
	if err != nil {
		return nil, err
	}

	return record, nil
}
