package github

import (
	"context"
	"net/http"
)

// PullRequest is the slice of the GitHub PR payload the prepare workflow
// needs.
type PullRequest struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	User   struct {
		Login string `json:"login"`
	} `json:"user"`
}

type service struct {
	repo    string
	token   string
	baseURL string
	client  *http.Client
}

// Service resolves pull-request metadata for commit entries.
type Service interface {
	GetPullRequest(ctx context.Context, number int) (*PullRequest, error)
}
