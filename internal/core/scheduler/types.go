package scheduler

import (
	"time"

	"Perch/internal/core/drafts"
	"Perch/internal/core/posts"
)

// ScheduleRequest is the composer submission
type ScheduleRequest struct {
	drafts.Draft
	// Repeat is a cadence name; unknown values mean no repetition
	Repeat string `json:"repeat,omitempty"`
	// Occurrences is clamped to the recurrence bounds when Repeat is set
	Occurrences int `json:"occurrences,omitempty"`
}

// SkippedRow is an import line that was not saved
type SkippedRow struct {
	Issues []string `json:"issues"`
	Line   int      `json:"line"`
}

// ImportResult summarises one CSV import
type ImportResult struct {
	BatchID  string        `json:"batchId"`
	Imported []*posts.Post `json:"imported"`
	Skipped  []SkippedRow  `json:"skipped"`
}

// Config holds the checks that differ between submit paths
type Config struct {
	// Now is the clock used for futurity checks. Defaults to time.Now.
	Now func() time.Time
	// Location interprets datetimes without an offset. Defaults to UTC.
	Location *time.Location
	// RequireFuture applies to Schedule and Reschedule
	RequireFuture bool
	// ImportRequireFuture applies to Import, where past-dated rows are common
	ImportRequireFuture bool
}

func (c Config) createOptions() drafts.Options {
	return drafts.Options{RequireFuture: c.RequireFuture, Now: c.Now, Location: c.Location}
}

func (c Config) importOptions() drafts.Options {
	return drafts.Options{RequireFuture: c.ImportRequireFuture, Now: c.Now, Location: c.Location}
}
