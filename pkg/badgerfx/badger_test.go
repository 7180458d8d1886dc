package badgerfx_test

import (
	"path/filepath"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/mgit-app/mgit/pkg/badgerfx"
)

func TestConfigBuild(t *testing.T) {
	opts := badgerfx.Config{InMemory: true, Dir: "/ignored"}.Build()
	if !opts.InMemory || opts.Dir != "" {
		t.Errorf("Expected in-memory options without a directory, got dir=%q in_memory=%v", opts.Dir, opts.InMemory)
	}

	dir := filepath.Join(t.TempDir(), "data")
	opts = badgerfx.Config{Dir: dir}.Build()
	if opts.InMemory || opts.Dir != dir || opts.ValueDir != dir {
		t.Errorf("Unexpected on-disk options: dir=%q value_dir=%q", opts.Dir, opts.ValueDir)
	}
}

func TestConfigBuild_Opens(t *testing.T) {
	db, err := badger.Open(badgerfx.Config{Dir: t.TempDir()}.Build().WithLogger(nil))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte("key"), []byte("value"))
	}); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}
}
