package operations

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mgit-app/mgit/internal/history"
	"github.com/mgit-app/mgit/internal/operations"
	"go.uber.org/zap/zaptest"
)

func newTestApp(t *testing.T) (*fiber.App, *history.Service) {
	t.Helper()

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("Failed to open badger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	logger := zaptest.NewLogger(t)
	svc := history.NewService(history.NewRepository(db), logger)

	app := fiber.New()
	NewHandler(svc, validator.New(), logger).Register(app)

	return app, svc
}

func record(svc *history.Service, path string, success bool) uuid.UUID {
	id := uuid.Must(uuid.NewV7())
	svc.OnStarted(operations.Started{JobID: id, Kind: operations.KindFetch, RepoPath: path})
	svc.OnFinished(operations.Result{
		JobID:     id,
		Kind:      operations.KindFetch,
		RepoPath:  path,
		Success:   success,
		Message:   "done",
		StartedAt: time.Now(),
		Duration:  time.Second,
	})
	return id
}

func TestHandler_ListAndGet(t *testing.T) {
	app, svc := newTestApp(t)

	record(svc, "/a", true)
	id := record(svc, "/b", false)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/operations?path=/b", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var list []RecordResponse
	if err = json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != id || list[0].Status != "failed" || list[0].DurationMs != 1000 {
		t.Fatalf("Unexpected records: %+v", list)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/operations/"+id.String(), nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
}

func TestHandler_Errors(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name   string
		method string
		target string
		status int
	}{
		{"unknown id", http.MethodGet, "/operations/" + uuid.NewString(), http.StatusNotFound},
		{"malformed id", http.MethodGet, "/operations/nope", http.StatusBadRequest},
		{"limit out of range", http.MethodGet, "/operations?limit=1000", http.StatusBadRequest},
		{"clear without path", http.MethodDelete, "/operations", http.StatusBadRequest},
		{"unknown kind", http.MethodGet, "/operations?kind=rebase", http.StatusBadRequest},
		{"latest without path", http.MethodGet, "/operations/latest", http.StatusBadRequest},
		{"latest without history", http.MethodGet, "/operations/latest?path=/none", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tt.method, tt.target, nil))
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.status {
				t.Errorf("Expected %d, got %d", tt.status, resp.StatusCode)
			}
		})
	}
}

func TestHandler_Clear(t *testing.T) {
	app, svc := newTestApp(t)

	record(svc, "/a", true)
	record(svc, "/a", true)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/operations?path=/a", nil))
	if err != nil {
		t.Fatal(err)
	}

	var body ClearResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Deleted != 2 {
		t.Errorf("Expected 2 deleted records, got %d", body.Deleted)
	}
}

func TestHandler_KindFilterAndLatest(t *testing.T) {
	app, svc := newTestApp(t)

	fetch := record(svc, "/a", true)
	commit := uuid.Must(uuid.NewV7())
	svc.OnStarted(operations.Started{JobID: commit, Kind: operations.KindCommit, RepoPath: "/a"})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/operations?kind=fetch", nil))
	if err != nil {
		t.Fatal(err)
	}
	var list []RecordResponse
	if err = json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != fetch {
		t.Errorf("Expected only the fetch, got %+v", list)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/operations/latest?path=/a", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var latest RecordResponse
	if err = json.NewDecoder(resp.Body).Decode(&latest); err != nil {
		t.Fatal(err)
	}
	if latest.ID != commit || latest.Status != "running" {
		t.Errorf("Expected the running commit, got %+v", latest)
	}
}
