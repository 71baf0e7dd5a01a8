package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// GithubDispatcher triggers the daily-digest workflow on the configured
// repository via the GitHub Actions workflow dispatch API.
type GithubDispatcher struct {
	client *http.Client
	token  string
	repo   string
}

func NewGithubDispatcher(token, repo string) *GithubDispatcher {
	return &GithubDispatcher{
		client: &http.Client{Timeout: 15 * time.Second},
		token:  token,
		repo:   repo,
	}
}

func (d *GithubDispatcher) Dispatch(ctx context.Context) error {
	if d.token == "" || d.repo == "" {
		return fmt.Errorf("github dispatcher misconfigured")
	}

	body, err := json.Marshal(map[string]string{"ref": "main"})
	if err != nil {
		return fmt.Errorf("marshal dispatch payload: %w", err)
	}

	url := fmt.Sprintf("https://api.github.com/repos/%s/actions/workflows/daily-digest.yml/dispatches", d.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+d.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("dispatch workflow: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("github error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	return nil
}
