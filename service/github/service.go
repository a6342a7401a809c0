// Package github is a minimal REST client for pull-request lookups. The
// prepare workflow uses it to resolve contributor logins for commits that
// reference a PR number.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const defaultBaseURL = "https://api.github.com"

// NewService creates a GitHub client for the given "owner/name" repository.
// The token is read from GITHUB_TOKEN; unauthenticated requests work within
// GitHub's anonymous rate limit.
func NewService(repo string) Service {
	return &service{
		repo:    repo,
		token:   os.Getenv("GITHUB_TOKEN"),
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// GetPullRequest fetches one pull request by number.
func (s *service) GetPullRequest(ctx context.Context, number int) (*PullRequest, error) {
	url := fmt.Sprintf("%s/repos/%s/pulls/%d", s.baseURL, s.repo, number)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch PR #%d: %w", number, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("github returned %d for PR #%d: %s", resp.StatusCode, number, body)
	}

	var pr PullRequest
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("failed to decode PR #%d: %w", number, err)
	}
	return &pr, nil
}
