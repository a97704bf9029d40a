package posts

import (
	"fmt"
	"strings"
	"time"

	"Perch/internal/core/drafts"
)

// Status is the lifecycle state of a persisted post
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusPosted    Status = "posted"
	StatusFailed    Status = "failed"
)

// ParseStatus converts a client supplied status, rejecting unknown values
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusScheduled:
		return StatusScheduled, nil
	case StatusPosted:
		return StatusPosted, nil
	case StatusFailed:
		return StatusFailed, nil
	}
	return "", NewValidationError(fmt.Sprintf("Unknown status %q", s))
}

// Post represents a scheduled social-media post
// ID, CreatedAt and UpdatedAt are assigned by the Repository
type Post struct {
	ScheduledAt time.Time `json:"scheduledAt" db:"scheduled_at"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
	ID          string    `json:"id" db:"id"`
	AccountID   string    `json:"accountId" db:"account_id"`
	Text        string    `json:"text" db:"text"`
	Status      Status    `json:"status" db:"status"`
	MediaURLs   []string  `json:"mediaUrls" db:"media_urls"`
	Tags        []string  `json:"tags" db:"tags"`
}

// Clone returns a copy of p whose slices do not alias p's
func (p Post) Clone() Post {
	c := p
	c.MediaURLs = copyStrings(p.MediaURLs)
	c.Tags = copyStrings(p.Tags)
	return c
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}

// Draft converts a post back into a draft, e.g. to re-validate it after a reschedule
func (p Post) Draft() drafts.Draft {
	return drafts.Draft{
		Text:        p.Text,
		ScheduledAt: p.ScheduledAt.Format(time.RFC3339Nano),
		AccountID:   p.AccountID,
		MediaURLs:   p.MediaURLs,
		Tags:        p.Tags,
	}
}

// ListPostsRequest filters a timeline query
// Zero values disable a filter; Limit <= 0 means no limit
type ListPostsRequest struct {
	From      *time.Time
	To        *time.Time
	AccountID string
	Status    Status
	Limit     int
}

// Matches reports whether p passes the filter
func (r ListPostsRequest) Matches(p *Post) bool {
	if r.AccountID != "" && p.AccountID != r.AccountID {
		return false
	}
	if r.Status != "" && p.Status != r.Status {
		return false
	}
	if r.From != nil && p.ScheduledAt.Before(*r.From) {
		return false
	}
	if r.To != nil && !p.ScheduledAt.Before(*r.To) {
		return false
	}
	return true
}
