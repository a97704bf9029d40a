// Package drafts validates composed posts before they are handed to a store.
// Everything here is pure: no I/O, no shared state.
package drafts

import (
	"fmt"
	"strings"
	"time"
)

const (
	// MaxTextLength is the post length limit in code points
	MaxTextLength = 280

	// MaxImages is the number of still images a single post may carry
	MaxImages = 4
)

// Draft is an unsaved post as entered in the composer
type Draft struct {
	Text        string   `json:"text"`
	ScheduledAt string   `json:"scheduledAt"`
	AccountID   string   `json:"accountId"`
	MediaURLs   []string `json:"mediaUrls,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Options controls the checks that differ between call sites
type Options struct {
	// Now is the reference instant for RequireFuture. Defaults to time.Now.
	Now func() time.Time
	// Location is used for datetimes without an offset. Defaults to UTC.
	Location *time.Location
	// RequireFuture rejects scheduled times at or before Now.
	RequireFuture bool
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

// naive layouts carry no offset and are read in Options.Location
var naiveLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// ParseScheduledAt parses an RFC 3339 instant or a datetime-local style value.
// Values without an offset are interpreted in loc (UTC when nil).
func ParseScheduledAt(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty scheduled time")
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized scheduled time %q", s)
}

// SplitList splits a comma separated form value, trimming entries and dropping blanks
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
