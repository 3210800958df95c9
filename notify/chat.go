/*
Copyright 2025 Lornu AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lornu-ai/pr-review-agent/review"
)

// ChatSink posts review summaries to a chat webhook (Google Chat shaped:
// a single POST of {"text": ...}). No retries.
type ChatSink struct {
	webhookURL string
	client     *http.Client
}

// NewChatSink returns a sink posting to webhookURL.
func NewChatSink(webhookURL string) *ChatSink {
	return &ChatSink{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
}

// Post sends a single summary message for the reviewed PR.
func (s *ChatSink) Post(ctx context.Context, pr review.PRMetadata, summary string) error {
	payload, err := json.Marshal(map[string]string{
		"text": fmt.Sprintf("🤖 *AI Review Complete for PR #%d*\n> %s\nView PR: %s", pr.Number, summary, pr.HTMLURL),
	})
	if err != nil {
		return fmt.Errorf("encoding chat payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting chat notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("chat webhook returned %s", resp.Status)
	}
	return nil
}
