package panel

import (
	"slices"

	"github.com/mgit-app/mgit/internal/git"
	"github.com/mgit-app/mgit/internal/operations"
)

// Handle describes the opened repository. It is an immutable value: the controller replaces it
// as a whole and Version changes whenever a different repository is opened.
type Handle struct {
	Version uint64   `json:"version"`
	Path    string   `json:"path"`
	Valid   bool     `json:"valid"`
	Remotes []string `json:"remotes"`
	Branch  string   `json:"branch"`
}

// HasRemotes reports whether at least one remote is configured.
func (h Handle) HasRemotes() bool {
	return len(h.Remotes) > 0
}

func (h Handle) clone() Handle {
	h.Remotes = slices.Clone(h.Remotes)
	return h
}

// Affordances lists which panel actions are currently available.
type Affordances struct {
	Init         bool `json:"init"`
	Clone        bool `json:"clone"`
	Commit       bool `json:"commit"`
	Push         bool `json:"push"`
	Pull         bool `json:"pull"`
	Sync         bool `json:"sync"`
	Fetch        bool `json:"fetch"`
	Branch       bool `json:"branch"`
	BranchSelect bool `json:"branch_select"`
	Remote       bool `json:"remote"`
	Stash        bool `json:"stash"`
	Cancel       bool `json:"cancel"`
}

// DeriveAffordances computes the available actions from the repository state alone.
func DeriveAffordances(valid, hasRemotes, busy bool) Affordances {
	idle := !busy
	repo := valid && idle
	remote := repo && hasRemotes

	return Affordances{
		Init:         idle,
		Clone:        idle,
		Commit:       repo,
		Push:         remote,
		Pull:         remote,
		Sync:         remote,
		Fetch:        remote,
		Branch:       repo,
		BranchSelect: repo,
		Remote:       repo,
		Stash:        repo,
		Cancel:       busy,
	}
}

// State is the snapshot published after every change.
type State struct {
	Handle       Handle            `json:"repository"`
	Busy         bool              `json:"busy"`
	Operation    operations.Kind   `json:"operation,omitempty"`
	Affordances  Affordances       `json:"affordances"`
	ChangedFiles []git.ChangedFile `json:"changed_files"`
	Branches     []string          `json:"branches"`
}
