package panel

import (
	"path"
	"strings"
)

// NormalizeURL expands "user/repo" into a GitHub HTTPS URL and repairs "https://host:user/repo"
// into "https://host/user/repo". scp-like "git@" URLs and local paths are returned unchanged.
func NormalizeURL(raw string) string {
	url := strings.TrimSpace(raw)
	if url == "" || strings.HasPrefix(url, "git@") {
		return url
	}

	if !strings.Contains(url, "://") {
		if strings.Count(url, "/") == 1 && !strings.HasPrefix(url, "/") && !strings.HasPrefix(url, ".") &&
			!strings.Contains(url, ":") {
			return "https://github.com/" + strings.TrimSuffix(url, ".git") + ".git"
		}
		return url
	}

	scheme, rest, _ := strings.Cut(url, "://")
	host, tail, found := strings.Cut(rest, "/")
	if h, p, hasColon := strings.Cut(host, ":"); hasColon && !isPort(p) {
		host = h
		if found {
			tail = p + "/" + tail
		} else {
			tail = p
		}
		found = true
	}

	if !found {
		return scheme + "://" + host
	}
	return scheme + "://" + host + "/" + tail
}

// RepoNameFromURL returns the last path element of a repository URL without ".git".
func RepoNameFromURL(url string) string {
	url = strings.TrimRight(strings.TrimSpace(url), "/")
	if i := strings.LastIndex(url, ":"); i >= 0 && !strings.Contains(url[i:], "/") {
		url = url[i+1:]
	}

	name := strings.TrimSuffix(path.Base(url), ".git")
	if name == "." || name == "/" {
		return ""
	}
	return name
}

func isPort(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
