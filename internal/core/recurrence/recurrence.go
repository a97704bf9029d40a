// Package recurrence turns one post into a series of occurrences.
package recurrence

import (
	"fmt"
	"strings"

	"Perch/internal/core/posts"
)

// Cadence is how often a post repeats
type Cadence string

const (
	None    Cadence = "none"
	Daily   Cadence = "daily"
	Weekly  Cadence = "weekly"
	Monthly Cadence = "monthly"
)

// Occurrence bounds. Requests outside the range are clamped.
const (
	MinOccurrences = 1
	MaxOccurrences = 30
)

// ParseCadence maps a client value to a Cadence. Anything unrecognised is None.
func ParseCadence(s string) Cadence {
	switch c := Cadence(strings.ToLower(strings.TrimSpace(s))); c {
	case Daily, Weekly, Monthly:
		return c
	default:
		return None
	}
}

// Step is the distance between occurrences in days.
// Monthly is a fixed 30 days, not a calendar month.
func Step(c Cadence) int {
	switch c {
	case Daily:
		return 1
	case Weekly:
		return 7
	case Monthly:
		return 30
	default:
		return 0
	}
}

// ClampOccurrences bounds n to [MinOccurrences, MaxOccurrences]
func ClampOccurrences(n int) int {
	if n < MinOccurrences {
		return MinOccurrences
	}
	if n > MaxOccurrences {
		return MaxOccurrences
	}
	return n
}

// Expand returns the occurrences of base for cadence c, earliest first.
//
// None yields exactly [base]. Otherwise n (clamped) candidates are produced,
// the i-th scheduled i steps after base. Candidates carry placeholder IDs
// unique within the series and distinct from base.ID; a store replaces them
// on persistence. base is never modified.
func Expand(base posts.Post, c Cadence, n int) []posts.Post {
	step := Step(c)
	if step == 0 {
		return []posts.Post{base}
	}

	n = ClampOccurrences(n)
	key := base.ID
	if key == "" {
		key = "draft"
	}

	out := make([]posts.Post, 0, n)
	for i := 0; i < n; i++ {
		candidate := base.Clone()
		candidate.ID = PlaceholderID(key, i)
		// calendar days in the base time's location
		candidate.ScheduledAt = base.ScheduledAt.AddDate(0, 0, i*step)
		out = append(out, candidate)
	}
	return out
}

// PlaceholderID is the key given to the i-th candidate of a series
func PlaceholderID(key string, i int) string {
	return fmt.Sprintf("%s-%d", key, i)
}
