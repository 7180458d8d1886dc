package operations

import "fmt"

// Kind identifies the git action a Job performs.
type Kind string

const (
	KindInit   Kind = "init"
	KindClone  Kind = "clone"
	KindCommit Kind = "commit"
	KindPush   Kind = "push"
	KindPull   Kind = "pull"
	KindSync   Kind = "sync"
	KindFetch  Kind = "fetch"
)

var kinds = []Kind{KindInit, KindClone, KindCommit, KindPush, KindPull, KindSync, KindFetch}

// Kinds returns every known kind.
func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	for _, known := range kinds {
		if k == known {
			return true
		}
	}
	return false
}

// IsNetwork reports whether the kind talks to a remote and runs under the network timeout.
func (k Kind) IsNetwork() bool {
	switch k {
	case KindClone, KindPush, KindPull, KindSync, KindFetch:
		return true
	case KindInit, KindCommit:
		return false
	}
	return false
}

// ParseKind converts a lowercase kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidJob, s)
	}
	return k, nil
}
