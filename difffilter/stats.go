/*
Copyright 2025 Lornu AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package difffilter

import (
	"github.com/waigani/diffparser"
)

// Stats summarizes a unified diff for request logging.
type Stats struct {
	Files     int
	Additions int
	Deletions int
}

// Summarize parses diff and counts the files and changed lines it touches.
func Summarize(diff string) (Stats, error) {
	parsed, err := diffparser.Parse(diff)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Files: len(parsed.Files)}
	for _, file := range parsed.Files {
		for _, hunk := range file.Hunks {
			for _, line := range hunk.NewRange.Lines {
				if line.Mode == diffparser.ADDED {
					stats.Additions++
				}
			}
			for _, line := range hunk.OrigRange.Lines {
				if line.Mode == diffparser.REMOVED {
					stats.Deletions++
				}
			}
		}
	}
	return stats, nil
}
