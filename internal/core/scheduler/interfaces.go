package scheduler

import (
	"context"

	"Perch/internal/core/accounts"
	"Perch/internal/core/analytics"
	"Perch/internal/core/csvio"
	"Perch/internal/core/drafts"
	"Perch/internal/core/posts"
)

// Service defines the scheduling operations behind the composer, queue and calendar
type Service interface {
	// Accounts lists the handles posts can be scheduled for
	Accounts(ctx context.Context) ([]*accounts.Account, error)

	// Validate runs the composer checks without persisting anything
	Validate(d drafts.Draft) []string

	// Schedule validates the draft and persists it, expanded by its cadence.
	// Occurrences are created one at a time; on failure the posts created so
	// far are returned alongside the error.
	Schedule(ctx context.Context, req ScheduleRequest) ([]*posts.Post, error)

	// Get returns one post
	Get(ctx context.Context, id string) (*posts.Post, error)

	// Timeline lists posts matching req, earliest first
	Timeline(ctx context.Context, req posts.ListPostsRequest) ([]*posts.Post, error)

	// Reschedule moves a post after re-validating it at the new time
	Reschedule(ctx context.Context, id, scheduledAt string) (*posts.Post, error)

	// SetStatus records that a post was published or failed
	SetStatus(ctx context.Context, id string, status posts.Status) (*posts.Post, error)

	// Delete removes a post
	Delete(ctx context.Context, id string) error

	// Import creates one post per valid row; invalid rows are reported, not fatal
	Import(ctx context.Context, accountID string, rows []csvio.Row) (*ImportResult, error)

	// Analytics summarises the queue per day, optionally for one account
	Analytics(ctx context.Context, accountID string) ([]analytics.DailyCount, error)
}
