/*
Copyright 2025 Lornu AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package review

import (
	"encoding/json"
	"regexp"
	"strings"
)

const (
	// fallbackSummaryLimit caps how much raw response text is surfaced as
	// the summary when the provider output is unparseable.
	fallbackSummaryLimit = 500

	// fallbackScore is reported when the provider output is unparseable.
	fallbackScore = 75
)

// fencedJSONRe matches a JSON object inside a markdown code fence, optionally
// tagged as json.
var fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*\\})\\s*```")

// extractJSON pulls the JSON payload out of a model response that may wrap it
// in a fenced code block or surround it with prose. For responses that are
// already pure JSON both fallbacks are the identity.
func extractJSON(responseText string) string {
	if m := fencedJSONRe.FindStringSubmatch(responseText); m != nil {
		return strings.TrimSpace(m[1])
	}

	// No fence: take the first top-level {...} span.
	start := strings.Index(responseText, "{")
	end := strings.LastIndex(responseText, "}")
	if start >= 0 && end > start {
		return responseText[start : end+1]
	}

	return strings.TrimSpace(responseText)
}

// parseResult decodes provider output into a Result. Malformed output never
// fails: it degrades into a result carrying the raw text as its summary.
func parseResult(responseText string) Result {
	payload := extractJSON(responseText)

	var raw struct {
		Summary       string       `json:"summary"`
		SecurityScore Score        `json:"security_score"`
		Comments      []rawComment `json:"comments"`
	}
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return fallbackResult(responseText)
	}

	comments := make([]Comment, 0, len(raw.Comments))
	for _, rc := range raw.Comments {
		comments = append(comments, normalizeComment(rc))
	}

	return Result{
		Summary:       raw.Summary,
		SecurityScore: raw.SecurityScore,
		Comments:      comments,
	}
}

// fallbackResult guarantees the orchestrator never fails solely because the
// model returned something other than JSON.
func fallbackResult(responseText string) Result {
	summary := responseText
	if runes := []rune(summary); len(runes) > fallbackSummaryLimit {
		summary = string(runes[:fallbackSummaryLimit])
	}
	return Result{
		Summary:       summary,
		SecurityScore: NewScore(fallbackScore),
		Comments:      []Comment{},
	}
}
