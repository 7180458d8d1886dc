package hosting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mgit-app/mgit/internal/accounts"
)

const maxErrorBody = 1024

// Provider creates empty repositories on one hosting service.
type Provider interface {
	CreateRepository(ctx context.Context, account accounts.Account, req CreateRequest) (string, error)
}

type gitHub struct {
	baseURL string
	client  *http.Client
}

// CreateRepository implements Provider.
func (p *gitHub) CreateRepository(ctx context.Context, account accounts.Account, req CreateRequest) (string, error) {
	body, err := json.Marshal(map[string]any{
		"name":               req.Name,
		"description":        req.Description,
		"private":            req.Private,
		"auto_init":          false,
		"gitignore_template": nil,
		"license_template":   nil,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/user/repos", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "token "+account.Token)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/vnd.github+json")

	var resp struct {
		CloneURL string `json:"clone_url"`
	}
	if err = do(p.client, accounts.ProviderGitHub, httpReq, &resp); err != nil {
		return "", err
	}

	return resp.CloneURL, nil
}

type gitee struct {
	baseURL string
	client  *http.Client
}

// CreateRepository implements Provider.
func (p *gitee) CreateRepository(ctx context.Context, account accounts.Account, req CreateRequest) (string, error) {
	private := "0"
	if req.Private {
		private = "1"
	}

	form := url.Values{}
	form.Set("access_token", account.Token)
	form.Set("name", req.Name)
	form.Set("description", req.Description)
	form.Set("private", private)
	form.Set("auto_init", "false")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/v5/user/repos",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var resp struct {
		HTMLURL string `json:"html_url"`
	}
	if err = do(p.client, accounts.ProviderGitee, httpReq, &resp); err != nil {
		return "", err
	}

	return resp.HTMLURL, nil
}

type gitLab struct {
	client *http.Client
}

// CreateRepository implements Provider. The API lives under the account's instance URL.
func (p *gitLab) CreateRepository(ctx context.Context, account accounts.Account, req CreateRequest) (string, error) {
	visibility := "public"
	if req.Private {
		visibility = "private"
	}

	body, err := json.Marshal(map[string]any{
		"name":                   req.Name,
		"description":            req.Description,
		"visibility":             visibility,
		"initialize_with_readme": false,
		"lfs_enabled":            false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := strings.TrimRight(account.URL, "/") + "/api/v4/projects"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Private-Token", account.Token)
	httpReq.Header.Set("Content-Type", "application/json")

	var resp struct {
		HTTPURLToRepo string `json:"http_url_to_repo"`
	}
	if err = do(p.client, accounts.ProviderGitLab, httpReq, &resp); err != nil {
		return "", err
	}

	return resp.HTTPURLToRepo, nil
}

// do sends req and decodes a 200/201 JSON answer into out.
func do(client *http.Client, provider string, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCreateFailed, provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			Provider: provider,
			Status:   resp.StatusCode,
			Body:     strings.TrimSpace(string(body)),
		}
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: failed to decode response: %w", ErrCreateFailed, provider, err)
	}

	return nil
}
