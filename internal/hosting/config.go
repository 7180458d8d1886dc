package hosting

import "time"

type Config struct {
	GitHubAPI string
	GiteeAPI  string
	Timeout   time.Duration
}

func DefaultConfig() Config {
	//nolint:mnd //default values
	return Config{
		GitHubAPI: "https://api.github.com",
		GiteeAPI:  "https://gitee.com",
		Timeout:   30 * time.Second,
	}
}
