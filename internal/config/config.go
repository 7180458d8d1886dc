package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-core-fx/config"
)

type http struct {
	Address     string   `koanf:"address"`
	ProxyHeader string   `koanf:"proxy_header"`
	Proxies     []string `koanf:"proxies"`

	OpenAPI openAPIConfig `koanf:"openapi"`
}

type openAPIConfig struct {
	Enabled    bool   `koanf:"enabled"`
	PublicHost string `koanf:"public_host"`
	PublicPath string `koanf:"public_path"`
}

type storageConfig struct {
	DataDir    string        `koanf:"data_dir"`
	InMemory   bool          `koanf:"in_memory"`
	GCInterval time.Duration `koanf:"gc_interval"`
}

type gitAuthConfig struct {
	HTTPS gitHTTPSAuthConfig `koanf:"https"`
}

type gitHTTPSAuthConfig struct {
	DefaultToken    string `koanf:"default_token"`
	DefaultUsername string `koanf:"default_username"`
}

type gitAuthorConfig struct {
	Name  string `koanf:"name"`
	Email string `koanf:"email"`
}

type gitConfig struct {
	Binary         string          `koanf:"binary"`
	CommandTimeout time.Duration   `koanf:"command_timeout"`
	DefaultBranch  string          `koanf:"default_branch"`
	Author         gitAuthorConfig `koanf:"author"`
	Auth           gitAuthConfig   `koanf:"auth"`
}

type operationsConfig struct {
	NetworkTimeout time.Duration `koanf:"network_timeout"`
	EventBuffer    int           `koanf:"event_buffer"`
}

type hostingConfig struct {
	GitHubAPI string        `koanf:"github_api"`
	GiteeAPI  string        `koanf:"gitee_api"`
	Timeout   time.Duration `koanf:"timeout"`
}

type accountConfig struct {
	Provider string `koanf:"provider"`
	Username string `koanf:"username"`
	Token    string `koanf:"token"`
	URL      string `koanf:"url"`
}

type recentConfig struct {
	Limit int `koanf:"limit"`
}

type eventsConfig struct {
	SubscriberBuffer int           `koanf:"subscriber_buffer"`
	KeepAlive        time.Duration `koanf:"keep_alive"`
}

type Config struct {
	HTTP http `koanf:"http"`

	Storage    storageConfig    `koanf:"storage"`
	Git        gitConfig        `koanf:"git"`
	Operations operationsConfig `koanf:"operations"`
	Hosting    hostingConfig    `koanf:"hosting"`
	Account    accountConfig    `koanf:"account"`
	Recent     recentConfig     `koanf:"recent"`
	Events     eventsConfig     `koanf:"events"`
}

func Default() Config {
	//nolint:exhaustruct,mnd //default values
	return Config{
		HTTP: http{
			Address:     "127.0.0.1:3000",
			ProxyHeader: "X-Forwarded-For",
			Proxies:     []string{},

			OpenAPI: openAPIConfig{
				Enabled: true,
			},
		},

		Storage: storageConfig{
			DataDir:    "./data",
			GCInterval: 10 * time.Minute,
		},

		Git: gitConfig{
			Binary:         "git",
			CommandTimeout: 30 * time.Second,
			DefaultBranch:  "main",
			Author: gitAuthorConfig{
				Name:  "mgit",
				Email: "mgit@localhost",
			},
		},

		Operations: operationsConfig{
			NetworkTimeout: 10 * time.Minute,
			EventBuffer:    64,
		},

		Hosting: hostingConfig{
			GitHubAPI: "https://api.github.com",
			GiteeAPI:  "https://gitee.com",
			Timeout:   30 * time.Second,
		},

		Recent: recentConfig{
			Limit: 20,
		},

		Events: eventsConfig{
			SubscriberBuffer: 64,
			KeepAlive:        15 * time.Second,
		},
	}
}

func New() (Config, error) {
	cfg := Default()

	options := []config.Option{}
	if yamlPath := os.Getenv("CONFIG_PATH"); yamlPath != "" {
		options = append(options, config.WithLocalYAML(yamlPath))
	}

	if err := config.Load(&cfg, options...); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}
