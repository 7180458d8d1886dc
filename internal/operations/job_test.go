package operations

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestJob_Validate(t *testing.T) {
	zero := 0
	two := 2

	tests := []struct {
		name    string
		job     Job
		wantErr bool
	}{
		{"init", NewInitJob("/repo", ""), false},
		{"init without path", NewInitJob(" ", "main"), true},
		{"clone", NewCloneJob("https://github.com/u/r.git", "/tmp/r", "", nil, true), false},
		{"clone with depth", NewCloneJob("https://github.com/u/r.git", "/tmp/r", "", &two, false), false},
		{"clone zero depth", NewCloneJob("https://github.com/u/r.git", "/tmp/r", "", &zero, false), true},
		{"clone without target", NewCloneJob("https://github.com/u/r.git", "", "", nil, false), true},
		{"clone without url", NewCloneJob("", "/tmp/r", "", nil, false), true},
		{"commit", NewCommitJob("/repo", []string{"a.txt"}, ""), false},
		{"commit without files", NewCommitJob("/repo", nil, "msg"), true},
		{"push", NewPushJob("/repo", "origin", "main", true), false},
		{"push url", NewPushURLJob("/repo", "", "https://x@h/u/r.git", "main", false), false},
		{"push without remote", NewPushJob("/repo", "", "main", false), true},
		{"push without branch", NewPushJob("/repo", "origin", "", false), true},
		{"sync", NewSyncJob("/repo", "origin", "main"), false},
		{"sync without remote", NewSyncJob("/repo", "", "main"), true},
		{"pull current branch", NewPullJob("/repo", "", ""), false},
		{"fetch default remote", NewFetchJob("/repo", ""), false},
		{"unknown kind", Job{ID: uuid.Must(uuid.NewV7()), Kind: "rebase"}, true},
		{"missing id", Job{Kind: KindFetch, Params: Params{Path: "/repo"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.job.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidJob) {
				t.Errorf("Expected ErrInvalidJob, got %v", err)
			}
		})
	}
}

func TestJob_ValidateDefaults(t *testing.T) {
	initJob := NewInitJob("/repo", "")
	if err := initJob.Validate(); err != nil {
		t.Fatal(err)
	}
	if initJob.Params.InitialBranch != DefaultInitialBranch {
		t.Errorf("Expected initial branch %q, got %q", DefaultInitialBranch, initJob.Params.InitialBranch)
	}

	commit := NewCommitJob("/repo", []string{"a"}, "  ")
	if err := commit.Validate(); err != nil {
		t.Fatal(err)
	}
	if commit.Params.Message != DefaultCommitMessage {
		t.Errorf("Expected commit message %q, got %q", DefaultCommitMessage, commit.Params.Message)
	}

	fetch := NewFetchJob("/repo", "")
	if err := fetch.Validate(); err != nil {
		t.Fatal(err)
	}
	if fetch.Params.RemoteName != DefaultRemote {
		t.Errorf("Expected remote %q, got %q", DefaultRemote, fetch.Params.RemoteName)
	}
}

func TestJob_UniqueIDs(t *testing.T) {
	a := NewFetchJob("/repo", "")
	b := NewFetchJob("/repo", "")
	if a.ID == b.ID {
		t.Error("Expected jobs to get distinct IDs")
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k, got, err)
		}
	}
	if _, err := ParseKind("rebase"); !errors.Is(err, ErrInvalidJob) {
		t.Errorf("Expected ErrInvalidJob, got %v", err)
	}
}
