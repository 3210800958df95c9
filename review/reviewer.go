/*
Copyright 2025 Lornu AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package review orchestrates AI-powered pull request review: it filters the
// diff, builds the provider prompts, invokes the configured provider, and
// defensively parses the response into a structured result.
package review

import (
	"context"

	"github.com/chainguard-dev/clog"

	"github.com/lornu-ai/pr-review-agent/difffilter"
	"github.com/lornu-ai/pr-review-agent/provider"
)

// Reviewer runs reviews against a single provider. It holds no mutable state
// and is safe for concurrent use across requests.
type Reviewer struct {
	provider provider.Interface
}

// New returns a Reviewer backed by p.
func New(p provider.Interface) *Reviewer {
	return &Reviewer{provider: p}
}

// Review filters the request's diff, invokes the provider, and parses its
// response. Provider call failures propagate as *provider.CallError;
// malformed provider output never fails and degrades into a fallback result.
func (r *Reviewer) Review(ctx context.Context, req Request) (Result, error) {
	log := clog.FromContext(ctx)

	filtered := difffilter.Filter(req.DiffText, req.ExcludePatterns, req.MaxFiles)
	userPrompt := buildUserPrompt(req.PRTitle, req.PRDescription, filtered)

	responseText, err := r.provider.Invoke(ctx, systemPrompt, userPrompt)
	if err != nil {
		return Result{}, err
	}

	result := parseResult(responseText)
	log.With("provider", r.provider.Name()).
		With("comments", len(result.Comments)).
		With("security_score", result.SecurityScore.String()).
		Info("Review complete")
	return result, nil
}
