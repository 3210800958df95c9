/*
Copyright 2025 Lornu AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package ghclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-github/v84/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a Client at a local fake GitHub API.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	gh := github.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	gh.BaseURL = base

	return NewFromGitHub(gh)
}

func TestPRDetails(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/lornu-ai/private-lornu-ai/pulls/12", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"number": 12,
			"title": "[LOR-55] Harden auth",
			"body": "Tightens token checks",
			"html_url": "https://github.com/lornu-ai/private-lornu-ai/pull/12"
		}`)
	}))

	pr, err := client.PRDetails(context.Background(), "lornu-ai", "private-lornu-ai", 12)
	require.NoError(t, err)

	assert.Equal(t, 12, pr.Number)
	assert.Equal(t, "[LOR-55] Harden auth", pr.Title)
	assert.Equal(t, "Tightens token checks", pr.Description)
	assert.Equal(t, "https://github.com/lornu-ai/private-lornu-ai/pull/12", pr.HTMLURL)
	assert.Equal(t, "lornu-ai/private-lornu-ai", pr.Repository)
}

func TestDiffRequestsRawMediaType(t *testing.T) {
	const rawDiff = "diff --git a/x b/x\n+++ b/x\n+new line\n"

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.Contains(r.Header.Get("Accept"), "diff"),
			"expected diff media type, got %q", r.Header.Get("Accept"))
		io.WriteString(w, rawDiff)
	}))

	diff, err := client.Diff(context.Background(), "o", "r", 3)
	require.NoError(t, err)
	assert.Equal(t, rawDiff, diff)
}

func TestPostReview(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/repos/o/r/pulls/3/reviews", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id": 1}`)
	}))

	err := client.PostReview(context.Background(), "o", "r", 3, "### Review body")
	require.NoError(t, err)

	assert.Equal(t, "### Review body", gotBody["body"])
	assert.Equal(t, "COMMENT", gotBody["event"])
}

func TestPRDetailsError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	}))

	_, err := client.PRDetails(context.Background(), "o", "r", 999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "o/r#999")
}
