/*
Copyright 2025 Lornu AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package provider

import "context"

// Fake is a canned provider for tests. It records the prompts it was invoked
// with and returns Response or Err.
type Fake struct {
	Response string
	Err      error

	LastSystemPrompt string
	LastUserPrompt   string
	Invocations      int
}

var _ Interface = (*Fake)(nil)

func (f *Fake) Invoke(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	f.Invocations++
	f.LastSystemPrompt = systemPrompt
	f.LastUserPrompt = userPrompt
	if f.Err != nil {
		return "", f.Err
	}
	return f.Response, nil
}

func (f *Fake) Name() Name { return Name("fake") }

func (f *Fake) Model() string { return "fake-model" }
