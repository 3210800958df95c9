/*
Copyright 2025 Lornu AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package difffilter trims a unified diff down to the files worth reviewing:
// it drops files matching exclusion globs and caps the number of files sent
// to the model.
package difffilter

import (
	"strings"

	"github.com/ryanuber/go-glob"
)

// fileHeaderPrefix marks the added-file path line of a unified diff header.
// It is the only line that updates current-file state during filtering.
const fileHeaderPrefix = "+++ b/"

// Filter scans diff line by line and returns only the lines belonging to
// files that survive the exclusion patterns and the file cap.
//
// When excludePatterns is empty and maxFiles is zero (or negative) the input
// is returned unchanged. Otherwise:
//   - a file whose path matches any exclude glob is dropped along with all of
//     its subsequent lines, and does not count toward maxFiles;
//   - once maxFiles included files have been seen, the first additional file
//     header stops processing entirely and the remainder of the diff is
//     truncated;
//   - lines seen while no included file is current are dropped.
//
// Retained lines keep their original content and order.
func Filter(diff string, excludePatterns []string, maxFiles int) string {
	if len(excludePatterns) == 0 && maxFiles <= 0 {
		return diff
	}

	lines := strings.Split(diff, "\n")
	filtered := make([]string, 0, len(lines))
	includeLine := false
	fileCount := 0

scan:
	for _, line := range lines {
		if strings.HasPrefix(line, fileHeaderPrefix) {
			filename := strings.TrimSpace(line[len(fileHeaderPrefix):])

			if matchesAny(filename, excludePatterns) {
				includeLine = false
				continue
			}

			if maxFiles > 0 && fileCount >= maxFiles {
				break scan
			}

			fileCount++
			includeLine = true
		}

		if includeLine {
			filtered = append(filtered, line)
		}
	}

	return strings.Join(filtered, "\n")
}

func matchesAny(filename string, patterns []string) bool {
	for _, pattern := range patterns {
		if glob.Glob(pattern, filename) {
			return true
		}
	}
	return false
}
