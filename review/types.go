/*
Copyright 2025 Lornu AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package review

import "strings"

// Severity classifies a review comment.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Request is the immutable input to a review, constructed once per call.
type Request struct {
	DiffText      string
	PRTitle       string
	PRDescription string

	// MaxFiles caps the number of diff files sent to the provider.
	// Zero means no cap.
	MaxFiles int
	// ExcludePatterns are glob patterns for files dropped from the diff
	// before review.
	ExcludePatterns []string
}

// Result is the normalized outcome of a review. Comments is always non-nil,
// and SecurityScore renders as "N/A" when the provider did not supply one.
type Result struct {
	Summary       string    `json:"summary"`
	SecurityScore Score     `json:"security_score"`
	Comments      []Comment `json:"comments"`
}

// Comment is a single normalized review comment.
type Comment struct {
	Path     string   `json:"path"`
	Line     Line     `json:"line"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// PRMetadata describes the pull request under review. It is sourced from the
// GitHub API or webhook payload and passed through unmodified.
type PRMetadata struct {
	Number      int
	Title       string
	Description string
	HTMLURL     string
	// Repository is the "owner/repo" identifier.
	Repository string
}

// rawComment is the loosely-shaped comment as providers actually emit it.
// Models routinely swap "path" for "file" and "message" for "body".
type rawComment struct {
	Path     string `json:"path"`
	File     string `json:"file"`
	Line     Line   `json:"line"`
	Message  string `json:"message"`
	Body     string `json:"body"`
	Severity string `json:"severity"`
}

// normalizeComment maps provider field aliases onto the canonical shape:
// path wins over file, message wins over body, unrecognized severities
// become info.
func normalizeComment(rc rawComment) Comment {
	path := rc.Path
	if path == "" {
		path = rc.File
	}
	if path == "" {
		path = "unknown"
	}

	message := rc.Message
	if message == "" {
		message = rc.Body
	}
	if message == "" {
		message = "No comment"
	}

	severity := Severity(strings.ToLower(strings.TrimSpace(rc.Severity)))
	switch severity {
	case SeverityError, SeverityWarning, SeverityInfo:
	default:
		severity = SeverityInfo
	}

	return Comment{
		Path:     path,
		Line:     rc.Line,
		Message:  message,
		Severity: severity,
	}
}
