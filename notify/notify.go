/*
Copyright 2025 Lornu AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package notify fans a completed review out to downstream collaboration
// tools. Delivery is best effort: each sink is attempted independently and
// sink failures are logged, never returned.
package notify

import (
	"context"

	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/errgroup"

	"github.com/lornu-ai/pr-review-agent/review"
)

// Dispatcher delivers review summaries to the configured sinks. A nil sink is
// simply skipped, so callers construct one Dispatcher at startup regardless
// of which integrations are configured.
type Dispatcher struct {
	chat    *ChatSink
	tracker *TrackerSink
}

// NewDispatcher returns a Dispatcher over the given sinks. Either may be nil.
func NewDispatcher(chat *ChatSink, tracker *TrackerSink) *Dispatcher {
	return &Dispatcher{chat: chat, tracker: tracker}
}

// Notify attempts delivery to every configured sink concurrently and returns
// once all attempts have completed. A failure in one sink never prevents the
// others from being attempted, and no failure escapes this method.
func (d *Dispatcher) Notify(ctx context.Context, pr review.PRMetadata, summary string) {
	log := clog.FromContext(ctx)

	var g errgroup.Group
	if d.chat != nil {
		g.Go(func() error {
			if err := d.chat.Post(ctx, pr, summary); err != nil {
				log.With("sink", "chat").With("error", err).Error("Notification sink failed")
			}
			return nil
		})
	}
	if d.tracker != nil {
		g.Go(func() error {
			if err := d.tracker.Post(ctx, pr, summary); err != nil {
				log.With("sink", "tracker").With("error", err).Error("Notification sink failed")
			}
			return nil
		})
	}

	// Sink errors are absorbed above, so this only synchronizes.
	_ = g.Wait()
}
