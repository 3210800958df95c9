/*
Copyright 2025 Lornu AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package provider abstracts the chat-completion services used to generate
// reviews. Each provider takes a system+user instruction pair and returns the
// raw response text; callers never see SDK types.
package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Name identifies a supported AI provider.
type Name string

const (
	// OpenAI requests structured JSON output directly.
	OpenAI Name = "openai"
	// Claude has no structured-output contract; the provider appends an
	// explicit JSON-only instruction to both prompts.
	Claude Name = "claude"
)

// reviewTemperature keeps review output consistent across runs.
const reviewTemperature = 0.3

// Config selects and authenticates a provider. It is immutable for the
// lifetime of the constructed provider, which is safe for concurrent use.
type Config struct {
	Provider Name
	APIKey   string
	Model    string
}

// Interface is the public interface for invoking a provider.
type Interface interface {
	// Invoke sends the instruction pair and returns the raw response text.
	// Transport and API failures are returned as *CallError.
	Invoke(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Name returns the provider's name.
	Name() Name

	// Model returns the model the provider was configured with.
	Model() string
}

// CallError wraps a transport, auth, or rate-limit failure from a provider
// call. Malformed response content is never a CallError; the orchestrator
// degrades on that instead.
type CallError struct {
	Provider Name
	Err      error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s provider call: %v", e.Provider, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

type settings struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes provider construction.
type Option func(*settings)

// WithBaseURL points the provider at an alternate API endpoint. Tests use
// this to target a local fake.
func WithBaseURL(url string) Option {
	return func(s *settings) {
		s.baseURL = url
	}
}

// WithHTTPClient overrides the HTTP client used for provider calls.
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) {
		s.httpClient = client
	}
}

// New constructs the provider selected by cfg.
func New(cfg Config, opts ...Option) (Interface, error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	switch Name(strings.ToLower(string(cfg.Provider))) {
	case OpenAI:
		return newOpenAI(cfg, s)
	case Claude:
		return newClaude(cfg, s)
	default:
		return nil, fmt.Errorf("unsupported provider: %q", cfg.Provider)
	}
}
