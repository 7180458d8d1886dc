package accounts

import "strings"

const (
	ProviderGitHub = "github"
	ProviderGitee  = "gitee"
	ProviderGitLab = "gitlab"
)

// Account holds the credentials of one hosting provider login.
type Account struct {
	Provider string
	Username string
	Token    string
	URL      string
}

// String never includes the token.
func (a Account) String() string {
	return a.Provider + ":" + a.Username
}

func normalizeProvider(p string) string {
	return strings.ToLower(strings.TrimSpace(p))
}
