/*
Copyright 2025 Lornu AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package provider

import (
	"context"
	"errors"

	"github.com/chainguard-dev/clog"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIModel = "gpt-4o"

type openAIProvider struct {
	client openai.Client
	model  string
}

func newOpenAI(cfg Config, s settings) (*openAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: API key is required")
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
		model = defaultOpenAIModel
	}

	return &openAIProvider{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

func (p *openAIProvider) Name() Name { return OpenAI }

func (p *openAIProvider) Model() string { return p.model }

// Invoke requests structured JSON output, so the returned text is the JSON
// payload itself.
func (p *openAIProvider) Invoke(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	log := clog.FromContext(ctx)

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
		Temperature: openai.Float(reviewTemperature),
	})
	if err != nil {
		return "", &CallError{Provider: OpenAI, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &CallError{Provider: OpenAI, Err: errors.New("response contained no choices")}
	}

	log.With("model", p.model).Debug("OpenAI completion finished")
	return resp.Choices[0].Message.Content, nil
}
