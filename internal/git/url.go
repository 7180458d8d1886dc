package git

import (
	"net/url"
	"regexp"
)

var userinfoPattern = regexp.MustCompile(`([a-zA-Z][a-zA-Z0-9+.-]*://)[^/@\s]+@`)

// SanitizeURL removes any userinfo from a remote URL so it can be logged or displayed.
// Values that do not parse as URLs (scp-like ssh remotes, local paths) are returned unchanged.
func SanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil || u.Scheme == "" {
		return RedactSecrets(raw)
	}

	u.User = nil
	return u.String()
}

// RedactSecrets strips credentials embedded in any URL found in free text, such as error messages
// produced by transports.
func RedactSecrets(text string) string {
	return userinfoPattern.ReplaceAllString(text, "$1")
}
