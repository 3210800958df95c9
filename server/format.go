/*
Copyright 2025 Lornu AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"fmt"
	"strings"

	"github.com/lornu-ai/pr-review-agent/review"
)

// summaryOrDefault returns the review summary, substituting a placeholder
// when the provider supplied none.
func summaryOrDefault(result review.Result) string {
	if result.Summary == "" {
		return "No summary provided."
	}
	return result.Summary
}

// FormatReviewBody renders a review result as the markdown comment body
// posted to the PR and returned to API callers.
func FormatReviewBody(result review.Result) string {
	var b strings.Builder
	b.WriteString("### 🤖 Lornu AI Code Review\n\n")
	fmt.Fprintf(&b, "**Summary:** %s\n\n", summaryOrDefault(result))
	fmt.Fprintf(&b, "**Security Score:** `%s/100` 🛡️\n\n", result.SecurityScore)

	if len(result.Comments) > 0 {
		b.WriteString("#### 📝 Detailed Feedback\n\n")
		for _, c := range result.Comments {
			fmt.Fprintf(&b, "- %s **%s** (Line %s): %s\n", severityEmoji(c.Severity), c.Path, c.Line, c.Message)
		}
	}
	return b.String()
}

func severityEmoji(s review.Severity) string {
	switch s {
	case review.SeverityError:
		return "🔴"
	case review.SeverityWarning:
		return "🟡"
	default:
		return "ℹ️"
	}
}
