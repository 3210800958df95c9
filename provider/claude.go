/*
Copyright 2025 Lornu AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package provider

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/chainguard-dev/clog"
)

const (
	defaultClaudeModel = "claude-3-5-sonnet-20241022"
	claudeMaxTokens    = 4096
)

// Claude has no structured-output contract, so both prompts carry an explicit
// JSON-only instruction. The response may still wrap the JSON in a code fence
// or prose; the orchestrator's extraction handles that.
const (
	jsonOnlyUserSuffix = `IMPORTANT: Respond with valid JSON only. Use this exact format:
{
  "summary": "review summary",
  "security_score": 85,
  "comments": [{"path": "file.py", "line": 42, "message": "comment", "severity": "warning"}]
}`

	jsonOnlySystemSuffix = "You must respond with valid JSON only. No markdown, no explanation, just the JSON object."
)

type claudeProvider struct {
	client anthropic.Client
	model  string
}

func newClaude(cfg Config, s settings) (*claudeProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("claude: API key is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if s.baseURL != "" {
		opts = append(opts, option.WithBaseURL(s.baseURL))
	}
	if s.httpClient != nil {
		opts = append(opts, option.WithHTTPClient(s.httpClient))
	}

	model := cfg.Model
	if model == "" {
		model = defaultClaudeModel
	}

	return &claudeProvider{
		client: anthropic.NewClient(opts...),
		model:  model,
	}, nil
}

func (p *claudeProvider) Name() Name { return Claude }

func (p *claudeProvider) Model() string { return p.model }

func (p *claudeProvider) Invoke(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	log := clog.FromContext(ctx)

	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: claudeMaxTokens,
		System: []anthropic.TextBlockParam{{
			Text: systemPrompt + "\n\n" + jsonOnlySystemSuffix,
		}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt + "\n\n" + jsonOnlyUserSuffix)),
		},
	})
	if err != nil {
		return "", &CallError{Provider: Claude, Err: err}
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", &CallError{Provider: Claude, Err: errors.New("response contained no text content")}
	}

	log.With("model", p.model).Debug("Claude message finished")
	return text.String(), nil
}
