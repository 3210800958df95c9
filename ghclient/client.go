/*
Copyright 2025 Lornu AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package ghclient wraps the slice of the GitHub REST API the review service
// needs: PR metadata, raw diffs, and posting the review back.
package ghclient

import (
	"context"
	"fmt"

	"github.com/google/go-github/v84/github"

	"github.com/lornu-ai/pr-review-agent/review"
)

// Client is a thin wrapper over go-github. It is immutable after
// construction and safe for concurrent use.
type Client struct {
	gh *github.Client
}

// New returns a Client authenticating with token.
func New(token string) *Client {
	return &Client{gh: github.NewClient(nil).WithAuthToken(token)}
}

// NewFromGitHub wraps an existing go-github client. Tests use this with a
// client pointed at a local fake.
func NewFromGitHub(gh *github.Client) *Client {
	return &Client{gh: gh}
}

// PRDetails fetches the metadata for a pull request.
func (c *Client) PRDetails(ctx context.Context, owner, repo string, number int) (*review.PRMetadata, error) {
	pr, _, err := c.gh.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("fetching PR %s/%s#%d: %w", owner, repo, number, err)
	}
	return &review.PRMetadata{
		Number:      number,
		Title:       pr.GetTitle(),
		Description: pr.GetBody(),
		HTMLURL:     pr.GetHTMLURL(),
		Repository:  fmt.Sprintf("%s/%s", owner, repo),
	}, nil
}

// Diff fetches the pull request's unified diff.
func (c *Client) Diff(ctx context.Context, owner, repo string, number int) (string, error) {
	diff, _, err := c.gh.PullRequests.GetRaw(ctx, owner, repo, number, github.RawOptions{Type: github.Diff})
	if err != nil {
		return "", fmt.Errorf("fetching diff for %s/%s#%d: %w", owner, repo, number, err)
	}
	return diff, nil
}

// PostReview posts body as a summary-level COMMENT review on the pull
// request.
func (c *Client) PostReview(ctx context.Context, owner, repo string, number int, body string) error {
	_, _, err := c.gh.PullRequests.CreateReview(ctx, owner, repo, number, &github.PullRequestReviewRequest{
		Body:  github.Ptr(body),
		Event: github.Ptr("COMMENT"),
	})
	if err != nil {
		return fmt.Errorf("posting review on %s/%s#%d: %w", owner, repo, number, err)
	}
	return nil
}
