/*
Copyright 2025 Lornu AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main runs the Lornu AI PR review service: an HTTP server that
// reviews pull request diffs with an AI provider and reports the results to
// GitHub, chat, and the issue tracker.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/labstack/echo/v4"
	"github.com/sethvargo/go-envconfig"

	"github.com/lornu-ai/pr-review-agent/ghclient"
	"github.com/lornu-ai/pr-review-agent/notify"
	"github.com/lornu-ai/pr-review-agent/provider"
	"github.com/lornu-ai/pr-review-agent/review"
	"github.com/lornu-ai/pr-review-agent/server"
)

type config struct {
	Port int `env:"PORT,default=8080"`

	AuthToken     string `env:"AUTH_TOKEN"`
	WebhookSecret string `env:"GITHUB_WEBHOOK_SECRET"`
	GitHubToken   string `env:"GITHUB_TOKEN"`

	Provider       string `env:"AI_PROVIDER,default=openai"`
	OpenAIKey      string `env:"OPENAI_API_KEY"`
	OpenAIModel    string `env:"OPENAI_MODEL"`
	AnthropicKey   string `env:"ANTHROPIC_API_KEY"`
	AnthropicModel string `env:"ANTHROPIC_MODEL"`

	ChatWebhook  string `env:"GOOGLE_CHAT_WEBHOOK"`
	LinearAPIKey string `env:"LINEAR_API_KEY"`

	MaxFiles        int      `env:"REVIEW_MAX_FILES"`
	ExcludePatterns []string `env:"REVIEW_EXCLUDE_PATTERNS"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	p, err := provider.New(providerConfig(cfg))
	if err != nil {
		clog.FatalContextf(ctx, "configuring AI provider: %v", err)
	}
	clog.InfoContextf(ctx, "Using AI provider %s with model %s", p.Name(), p.Model())

	opts := []server.Option{
		server.WithAuthToken(cfg.AuthToken),
		server.WithWebhookSecret(cfg.WebhookSecret),
		server.WithDiffLimits(cfg.MaxFiles, cfg.ExcludePatterns),
	}
	if cfg.GitHubToken != "" {
		opts = append(opts, server.WithGitHub(ghclient.New(cfg.GitHubToken)))
	}
	if dispatcher := buildDispatcher(ctx, cfg); dispatcher != nil {
		opts = append(opts, server.WithNotifier(dispatcher))
	}

	e := echo.New()
	e.HideBanner = true
	server.New(review.New(p), opts...).Register(e)

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			clog.ErrorContextf(shutdownCtx, "shutting down server: %v", err)
		}
	}()

	clog.InfoContextf(ctx, "Starting PR review service on port %d", cfg.Port)
	if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		clog.FatalContextf(ctx, "server failed: %v", err)
	}
}

// providerConfig selects the API key and model matching the configured
// provider. Key validation happens in provider.New.
func providerConfig(cfg config) provider.Config {
	pc := provider.Config{Provider: provider.Name(cfg.Provider)}
	if strings.EqualFold(cfg.Provider, string(provider.Claude)) {
		pc.APIKey = cfg.AnthropicKey
		pc.Model = cfg.AnthropicModel
	} else {
		pc.APIKey = cfg.OpenAIKey
		pc.Model = cfg.OpenAIModel
	}
	return pc
}

// buildDispatcher assembles the notification sinks that are configured, or
// returns nil when none are.
func buildDispatcher(ctx context.Context, cfg config) *notify.Dispatcher {
	var chat *notify.ChatSink
	if cfg.ChatWebhook != "" {
		chat = notify.NewChatSink(cfg.ChatWebhook)
		clog.InfoContext(ctx, "Chat notifications enabled")
	}
	var tracker *notify.TrackerSink
	if cfg.LinearAPIKey != "" {
		tracker = notify.NewTrackerSink(cfg.LinearAPIKey)
		clog.InfoContext(ctx, "Tracker notifications enabled")
	}
	if chat == nil && tracker == nil {
		return nil
	}
	return notify.NewDispatcher(chat, tracker)
}
