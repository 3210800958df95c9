/*
Copyright 2025 Lornu AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package server exposes the review service over HTTP: a bearer-token
// /review endpoint for CI-driven diffs, a signature-verified /webhook
// endpoint for GitHub deliveries, and a health check.
package server

import (
	"context"
	"crypto/subtle"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
	"github.com/labstack/echo/v4"

	"github.com/lornu-ai/pr-review-agent/difffilter"
	"github.com/lornu-ai/pr-review-agent/review"
	"github.com/lornu-ai/pr-review-agent/webhook"
)

// Headers carrying PR coordinates on /review requests.
const (
	HeaderPRNumber     = "X-PR-Number"
	HeaderPRRepository = "X-PR-Repository"
)

// GitHub is the subset of the GitHub client the server uses.
type GitHub interface {
	PRDetails(ctx context.Context, owner, repo string, number int) (*review.PRMetadata, error)
	Diff(ctx context.Context, owner, repo string, number int) (string, error)
	PostReview(ctx context.Context, owner, repo string, number int, body string) error
}

// Notifier dispatches best-effort notifications after a review.
type Notifier interface {
	Notify(ctx context.Context, pr review.PRMetadata, summary string)
}

// Server wires authentication, PR metadata lookup, review orchestration, and
// notification dispatch behind the HTTP endpoints. All fields are set at
// construction and never mutated.
type Server struct {
	reviewer *review.Reviewer

	authToken     string
	webhookSecret string

	gh       GitHub
	notifier Notifier

	maxFiles        int
	excludePatterns []string
}

// Option customizes server construction.
type Option func(*Server)

// WithAuthToken sets the bearer token required on /review.
func WithAuthToken(token string) Option {
	return func(s *Server) { s.authToken = token }
}

// WithWebhookSecret sets the HMAC secret required on /webhook.
func WithWebhookSecret(secret string) Option {
	return func(s *Server) { s.webhookSecret = secret }
}

// WithGitHub sets the GitHub client used for metadata lookup, diff fetch,
// and posting reviews.
func WithGitHub(gh GitHub) Option {
	return func(s *Server) { s.gh = gh }
}

// WithNotifier sets the notification dispatcher.
func WithNotifier(n Notifier) Option {
	return func(s *Server) { s.notifier = n }
}

// WithDiffLimits configures the per-request diff filtering.
func WithDiffLimits(maxFiles int, excludePatterns []string) Option {
	return func(s *Server) {
		s.maxFiles = maxFiles
		s.excludePatterns = excludePatterns
	}
}

// New returns a Server reviewing with reviewer.
func New(reviewer *review.Reviewer, opts ...Option) *Server {
	s := &Server{reviewer: reviewer}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register installs the service routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.POST("/review", s.handleReview)
	e.POST("/webhook", s.handleWebhook)
	e.GET("/healthz", s.handleHealthz)
}

func (s *Server) handleHealthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleReview reviews a raw diff posted by CI. The caller authenticates
// with a bearer token; PR coordinates arrive in headers and are used for
// metadata lookup and notifications, both best effort.
func (s *Server) handleReview(c echo.Context) error {
	ctx := c.Request().Context()
	log := clog.FromContext(ctx)

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing or invalid Authorization header")
	}

	// Reject everything when no token is configured rather than failing open.
	if s.authToken == "" {
		log.Error("AUTH_TOKEN is not configured on the server")
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error: Auth not configured")
	}

	token := strings.TrimSpace(strings.SplitN(authHeader, " ", 2)[1])
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.authToken)) != 1 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	diff := string(body)
	if diff == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Empty diff provided")
	}

	if stats, err := difffilter.Summarize(diff); err == nil {
		log.With("files", stats.Files).
			With("additions", stats.Additions).
			With("deletions", stats.Deletions).
			Info("Reviewing diff")
	}

	pr := s.lookupPRMetadata(ctx, c.Request().Header)

	result, err := s.reviewer.Review(ctx, review.Request{
		DiffText:        diff,
		PRTitle:         pr.Title,
		PRDescription:   pr.Description,
		MaxFiles:        s.maxFiles,
		ExcludePatterns: s.excludePatterns,
	})
	if err != nil {
		log.With("error", err).Error("AI review failed")
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("AI Review failed: %v", err))
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, pr, summaryOrDefault(result))
	}

	return c.JSON(http.StatusOK, map[string]string{"body": FormatReviewBody(result)})
}

// lookupPRMetadata resolves PR metadata from the request headers, falling
// back to placeholders when headers are absent or the lookup fails. Metadata
// is decoration here, never a reason to reject the review.
func (s *Server) lookupPRMetadata(ctx context.Context, h http.Header) review.PRMetadata {
	log := clog.FromContext(ctx)
	pr := review.PRMetadata{Title: "Unknown PR"}

	number, err := strconv.Atoi(strings.TrimSpace(h.Get(HeaderPRNumber)))
	if err != nil || number <= 0 {
		return pr
	}
	pr.Number = number

	repository := strings.TrimSpace(h.Get(HeaderPRRepository))
	if repository == "" || s.gh == nil {
		return pr
	}

	owner, repo, ok := splitRepository(repository)
	if !ok {
		log.With("repository", repository).Warn("Invalid repository format")
		return pr
	}
	pr.Repository = repository

	details, err := s.gh.PRDetails(ctx, owner, repo, number)
	if err != nil {
		log.With("repository", repository).
			With("number", number).
			With("error", err).
			Error("Error fetching PR details")
		return pr
	}

	if details.Title == "" {
		details.Title = pr.Title
	}
	return *details
}

// splitRepository parses an "owner/repo" identifier.
func splitRepository(repository string) (owner, repo string, ok bool) {
	parts := strings.Split(repository, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// reviewableActions are the PR actions that trigger a review from a webhook
// delivery.
var reviewableActions = map[string]bool{
	"opened":      true,
	"synchronize": true,
	"reopened":    true,
}

// handleWebhook reviews a PR in response to a signed GitHub webhook
// delivery, posting the result back to the PR as a review.
func (s *Server) handleWebhook(c echo.Context) error {
	ctx := c.Request().Context()
	log := clog.FromContext(ctx)

	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if s.webhookSecret == "" {
		log.Error("Webhook secret is not configured on the server")
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error: webhook secret not configured")
	}
	if !webhook.ValidateRequest(c.Request(), payload, s.webhookSecret) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid webhook signature")
	}

	event, err := github.ParseWebHook(github.WebHookType(c.Request()), payload)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unparseable webhook payload")
	}

	prEvent, ok := event.(*github.PullRequestEvent)
	if !ok || !reviewableActions[prEvent.GetAction()] {
		return c.JSON(http.StatusOK, map[string]string{"status": "ignored"})
	}
	if s.gh == nil {
		log.Error("GitHub client is not configured, cannot review webhook deliveries")
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error: GitHub client not configured")
	}

	owner := prEvent.GetRepo().GetOwner().GetLogin()
	repo := prEvent.GetRepo().GetName()
	number := prEvent.GetNumber()
	pr := review.PRMetadata{
		Number:      number,
		Title:       prEvent.GetPullRequest().GetTitle(),
		Description: prEvent.GetPullRequest().GetBody(),
		HTMLURL:     prEvent.GetPullRequest().GetHTMLURL(),
		Repository:  owner + "/" + repo,
	}
	log.With("repository", pr.Repository).With("number", number).Info("Reviewing PR from webhook")

	diff, err := s.gh.Diff(ctx, owner, repo, number)
	if err != nil {
		log.With("error", err).Error("Fetching PR diff failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "Fetching PR diff failed")
	}

	result, err := s.reviewer.Review(ctx, review.Request{
		DiffText:        diff,
		PRTitle:         pr.Title,
		PRDescription:   pr.Description,
		MaxFiles:        s.maxFiles,
		ExcludePatterns: s.excludePatterns,
	})
	if err != nil {
		log.With("error", err).Error("AI review failed")
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("AI Review failed: %v", err))
	}

	if err := s.gh.PostReview(ctx, owner, repo, number, FormatReviewBody(result)); err != nil {
		log.With("error", err).Error("Posting review failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "Posting review failed")
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, pr, summaryOrDefault(result))
	}

	return c.JSON(http.StatusAccepted, map[string]string{"status": "review posted"})
}
