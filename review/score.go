/*
Copyright 2025 Lornu AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package review

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Score is a 0-100 security score that tolerates absent or non-numeric
// provider output. The zero value is the degraded case and renders as "N/A".
type Score struct {
	value int
	valid bool
}

// NewScore returns a valid score.
func NewScore(v int) Score {
	return Score{value: v, valid: true}
}

// Int returns the numeric value and whether one is present.
func (s Score) Int() (int, bool) {
	return s.value, s.valid
}

func (s Score) String() string {
	if !s.valid {
		return "N/A"
	}
	return strconv.Itoa(s.value)
}

// UnmarshalJSON accepts a number, a numeric string, or anything else.
// It never fails; unusable input yields the degraded zero value.
func (s *Score) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*s = Score{value: int(n), valid: true}
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(str)); err == nil {
			*s = Score{value: v, valid: true}
			return nil
		}
	}

	*s = Score{}
	return nil
}

func (s Score) MarshalJSON() ([]byte, error) {
	if !s.valid {
		return json.Marshal("N/A")
	}
	return json.Marshal(s.value)
}

// Line is a diff line number that tolerates absent or non-numeric provider
// output. The zero value renders as "?".
type Line struct {
	number int
	valid  bool
}

// NewLine returns a known line number.
func NewLine(n int) Line {
	return Line{number: n, valid: true}
}

// Int returns the line number and whether one is present.
func (l Line) Int() (int, bool) {
	return l.number, l.valid
}

func (l Line) String() string {
	if !l.valid {
		return "?"
	}
	return strconv.Itoa(l.number)
}

// UnmarshalJSON accepts a number or a numeric string and never fails.
func (l *Line) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*l = Line{number: int(n), valid: true}
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(str)); err == nil {
			*l = Line{number: v, valid: true}
			return nil
		}
	}

	*l = Line{}
	return nil
}

func (l Line) MarshalJSON() ([]byte, error) {
	if !l.valid {
		return json.Marshal("?")
	}
	return json.Marshal(l.number)
}
