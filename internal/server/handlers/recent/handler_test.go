package recent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/mgit-app/mgit/internal/recent"
	"go.uber.org/zap/zaptest"
)

func TestHandler(t *testing.T) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("Failed to open badger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := recent.NewStore(db, recent.DefaultConfig())
	ctx := context.Background()
	for _, p := range []string{"/work/a", "/work/b"} {
		if err = store.Touch(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	app := fiber.New()
	NewHandler(store, validator.New(), zaptest.NewLogger(t)).Register(app)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/recent?limit=1", nil))
	if err != nil {
		t.Fatal(err)
	}
	var entries []EntryResponse
	if err = json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Path != "/work/b" {
		t.Fatalf("Expected the newest entry only, got %+v", entries)
	}

	target := "/recent?path=" + url.QueryEscape("/work/b")
	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, target, nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, target, nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 for a forgotten path, got %d", resp.StatusCode)
	}
}
