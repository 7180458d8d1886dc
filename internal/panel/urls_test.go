package panel

import "testing"

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"user/repo", "https://github.com/user/repo.git"},
		{" user/repo.git ", "https://github.com/user/repo.git"},
		{"https://github.com/u/r.git", "https://github.com/u/r.git"},
		{"https://gitee.com:u/r.git", "https://gitee.com/u/r.git"},
		{"https://git.example.com:8443/u/r.git", "https://git.example.com:8443/u/r.git"},
		{"git@github.com:u/r.git", "git@github.com:u/r.git"},
		{"/srv/git/r.git", "/srv/git/r.git"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeURL(tt.in); got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRepoNameFromURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://github.com/u/r.git", "r"},
		{"https://github.com/u/r", "r"},
		{"https://github.com/u/r/", "r"},
		{"git@github.com:u/r.git", "r"},
		{"git@host:r.git", "r"},
		{"/srv/git/project.git", "project"},
	}

	for _, tt := range tests {
		if got := RepoNameFromURL(tt.in); got != tt.want {
			t.Errorf("RepoNameFromURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDeriveAffordances(t *testing.T) {
	tests := []struct {
		name                     string
		valid, hasRemotes, busy  bool
		commit, push, init, stop bool
	}{
		{"no repository", false, false, false, false, false, true, false},
		{"no remotes", true, false, false, true, false, true, false},
		{"with remotes", true, true, false, true, true, true, false},
		{"busy", true, true, true, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := DeriveAffordances(tt.valid, tt.hasRemotes, tt.busy)
			if a.Commit != tt.commit || a.Push != tt.push || a.Init != tt.init || a.Cancel != tt.stop {
				t.Errorf("Unexpected affordances %+v", a)
			}
			if a.Push != a.Pull || a.Pull != a.Sync {
				t.Errorf("Push, pull and sync must move together: %+v", a)
			}
		})
	}
}
