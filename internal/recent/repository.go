package recent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mgit-app/mgit/pkg/badgerfx"
)

// Store keeps the most recently opened repositories in badger.
type Store struct {
	db      *badger.DB
	entries *badgerfx.Repository[*Entry]
	limit   int
}

func NewStore(db *badger.DB, config Config) *Store {
	if config.Limit <= 0 {
		config.Limit = DefaultConfig().Limit
	}

	return &Store{
		db:      db,
		entries: badgerfx.NewRepository(pathKey, func() *Entry { return &Entry{} }),
		limit:   config.Limit,
	}
}

// Touch marks path as opened now and evicts the oldest entries above the limit.
func (s *Store) Touch(_ context.Context, path string) error {
	entry := &Entry{Path: path, OpenedAt: time.Now()}

	err := s.db.Update(func(txn *badger.Txn) error {
		if old, err := s.entries.Read(txn, path); err == nil {
			if delErr := s.entries.DeleteIndexes(txn, old); delErr != nil {
				return delErr
			}
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if err := s.entries.Write(txn, entry); err != nil {
			return err
		}

		return s.evict(txn, entry.Path)
	})
	if err != nil {
		return fmt.Errorf("failed to touch recent repository: %w", err)
	}

	return nil
}

// evict drops the oldest entries so that at most limit remain. keep is never evicted.
func (s *Store) evict(txn *badger.Txn, keep string) error {
	opts := badger.DefaultIteratorOptions
	opts.Reverse = true

	all, err := s.entries.ListByIndex(txn, prefixByTime, opts, 0)
	if err != nil {
		return err
	}

	// keep counts once whether or not the iterator reports it
	count := 1
	for _, e := range all {
		if e.Path == keep {
			continue
		}
		count++
		if count <= s.limit {
			continue
		}
		if err = s.entries.Delete(txn, e.Path); err != nil {
			return err
		}
	}

	return nil
}

// List returns up to limit entries, most recent first. A limit of zero returns all entries.
func (s *Store) List(_ context.Context, limit int) ([]Entry, error) {
	entries := []Entry{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		found, err := s.entries.ListByIndex(txn, prefixByTime, opts, limit)
		if err != nil {
			return err
		}
		for _, e := range found {
			entries = append(entries, *e)
		}
		return nil
	})
	if err != nil {
		return entries, fmt.Errorf("failed to list recent repositories: %w", err)
	}

	return entries, nil
}

// Remove forgets path.
func (s *Store) Remove(_ context.Context, path string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return s.entries.Delete(txn, path)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("failed to remove recent repository: %w", err)
	}

	return nil
}
