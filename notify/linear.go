/*
Copyright 2025 Lornu AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package notify

import (
	"context"
	"fmt"
	"net/http"
	"regexp"

	"github.com/chainguard-dev/clog"
	"github.com/shurcooL/graphql"

	"github.com/lornu-ai/pr-review-agent/review"
)

// defaultTrackerEndpoint is Linear's GraphQL endpoint: a single POST accepting
// {query, variables} for both the lookup query and the comment mutation.
const defaultTrackerEndpoint = "https://api.linear.app/graphql"

// ticketKeyRe matches tracker issue keys like LOR-123 embedded in PR titles.
var ticketKeyRe = regexp.MustCompile(`[A-Z]+-\d+`)

// ExtractTicketKey returns the first tracker issue key found in title.
func ExtractTicketKey(title string) (string, bool) {
	key := ticketKeyRe.FindString(title)
	return key, key != ""
}

// TrackerSink posts review summaries as comments on the tracker issue whose
// key appears in the PR title. A title without a key, or a key the tracker
// cannot resolve, skips the sink without error.
type TrackerSink struct {
	client *graphql.Client
}

// TrackerOption customizes tracker sink construction.
type TrackerOption func(*trackerSettings)

type trackerSettings struct {
	endpoint string
}

// WithTrackerEndpoint overrides the GraphQL endpoint. Tests point this at a
// local fake.
func WithTrackerEndpoint(url string) TrackerOption {
	return func(s *trackerSettings) {
		s.endpoint = url
	}
}

// NewTrackerSink returns a sink authenticating with apiKey.
func NewTrackerSink(apiKey string, opts ...TrackerOption) *TrackerSink {
	settings := trackerSettings{endpoint: defaultTrackerEndpoint}
	for _, opt := range opts {
		opt(&settings)
	}

	httpClient := &http.Client{
		Transport: &apiKeyTransport{apiKey: apiKey, base: http.DefaultTransport},
	}
	return &TrackerSink{
		client: graphql.NewClient(settings.endpoint, httpClient),
	}
}

// apiKeyTransport injects the tracker API key into every request. Linear
// personal API keys go into the Authorization header without a scheme prefix.
type apiKeyTransport struct {
	apiKey string
	base   http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", t.apiKey)
	return t.base.RoundTrip(req)
}

// Post comments on the tracker issue linked from the PR title, if any.
func (s *TrackerSink) Post(ctx context.Context, pr review.PRMetadata, summary string) error {
	log := clog.FromContext(ctx)

	key, ok := ExtractTicketKey(pr.Title)
	if !ok {
		log.Debug("No ticket key in PR title, skipping tracker notification")
		return nil
	}

	issueID, err := s.lookupIssueID(ctx, key)
	if err != nil {
		// A failed lookup skips the comment rather than failing the sink.
		log.With("key", key).With("error", err).Warn("Tracker issue lookup failed, skipping")
		return nil
	}
	if issueID == "" {
		log.With("key", key).Warn("Tracker issue not found, skipping")
		return nil
	}

	body := fmt.Sprintf("🤖 AI Agent has finished reviewing the linked PR (#%d). Summary: %s", pr.Number, summary)
	return s.createComment(ctx, issueID, body)
}

// lookupIssueID resolves a human-readable issue key to the tracker's internal
// identifier.
func (s *TrackerSink) lookupIssueID(ctx context.Context, key string) (string, error) {
	var query struct {
		Issue struct {
			ID graphql.String
		} `graphql:"issue(key: $key)"`
	}
	variables := map[string]any{
		"key": graphql.String(key),
	}
	if err := s.client.Query(ctx, &query, variables); err != nil {
		return "", err
	}
	return string(query.Issue.ID), nil
}

func (s *TrackerSink) createComment(ctx context.Context, issueID, body string) error {
	var mutation struct {
		CommentCreate struct {
			Success graphql.Boolean
		} `graphql:"commentCreate(input: {issueId: $issueId, body: $body})"`
	}
	variables := map[string]any{
		"issueId": graphql.String(issueID),
		"body":    graphql.String(body),
	}
	if err := s.client.Mutate(ctx, &mutation, variables); err != nil {
		return fmt.Errorf("creating tracker comment: %w", err)
	}
	return nil
}
