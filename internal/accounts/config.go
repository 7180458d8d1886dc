package accounts

type Config struct {
	Provider string
	Username string
	Token    string
	// URL is the instance base URL, required for self-hosted GitLab.
	URL string
}
