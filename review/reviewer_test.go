/*
Copyright 2025 Lornu AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package review

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lornu-ai/pr-review-agent/provider"
)

const reviewerTestDiff = `diff --git a/main.go b/main.go
--- a/main.go
+++ b/main.go
@@ -1,1 +1,2 @@
 package main
+func main() {}
diff --git a/vendor.lock b/vendor.lock
--- a/vendor.lock
+++ b/vendor.lock
@@ -1,1 +1,2 @@
 dep==1
+dep==2`

func TestReviewHappyPath(t *testing.T) {
	fake := &provider.Fake{
		Response: `{"summary": "ok", "security_score": 90, "comments": [{"file": "main.go", "body": "tighten this"}]}`,
	}
	r := New(fake)

	result, err := r.Review(context.Background(), Request{
		DiffText: reviewerTestDiff,
		PRTitle:  "Add main",
	})
	require.NoError(t, err)

	assert.Equal(t, "ok", result.Summary)
	assert.Equal(t, "90", result.SecurityScore.String())
	require.Len(t, result.Comments, 1)
	assert.Equal(t, "main.go", result.Comments[0].Path)
	assert.Equal(t, "tighten this", result.Comments[0].Message)

	assert.Equal(t, 1, fake.Invocations)
	assert.Contains(t, fake.LastSystemPrompt, "expert code reviewer")
	assert.Contains(t, fake.LastUserPrompt, "Title: Add main")
	assert.Contains(t, fake.LastUserPrompt, "+func main() {}")
}

func TestReviewAppliesDiffFilter(t *testing.T) {
	fake := &provider.Fake{Response: `{"summary": "ok", "comments": []}`}
	r := New(fake)

	_, err := r.Review(context.Background(), Request{
		DiffText:        reviewerTestDiff,
		PRTitle:         "Add main",
		ExcludePatterns: []string{"*.lock"},
	})
	require.NoError(t, err)

	assert.Contains(t, fake.LastUserPrompt, "+func main() {}")
	assert.NotContains(t, fake.LastUserPrompt, "dep==2")
}

func TestReviewDescriptionPlaceholder(t *testing.T) {
	fake := &provider.Fake{Response: `{"summary": "ok", "comments": []}`}
	r := New(fake)

	_, err := r.Review(context.Background(), Request{DiffText: reviewerTestDiff, PRTitle: "t"})
	require.NoError(t, err)
	assert.Contains(t, fake.LastUserPrompt, "Description: No description provided")

	_, err = r.Review(context.Background(), Request{DiffText: reviewerTestDiff, PRTitle: "t", PRDescription: "does things"})
	require.NoError(t, err)
	assert.Contains(t, fake.LastUserPrompt, "Description: does things")
}

func TestReviewProviderErrorPropagates(t *testing.T) {
	callErr := &provider.CallError{Provider: provider.OpenAI, Err: errors.New("rate limited")}
	r := New(&provider.Fake{Err: callErr})

	_, err := r.Review(context.Background(), Request{DiffText: reviewerTestDiff, PRTitle: "t"})
	require.Error(t, err)

	var got *provider.CallError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, provider.OpenAI, got.Provider)
}

func TestReviewMalformedOutputDegrades(t *testing.T) {
	r := New(&provider.Fake{Response: "I refuse to produce JSON today."})

	result, err := r.Review(context.Background(), Request{DiffText: reviewerTestDiff, PRTitle: "t"})
	require.NoError(t, err, "malformed provider output must not fail the review")

	assert.Equal(t, "I refuse to produce JSON today.", result.Summary)
	score, ok := result.SecurityScore.Int()
	require.True(t, ok)
	assert.Equal(t, 75, score)
	assert.Empty(t, result.Comments)
}
