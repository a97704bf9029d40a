package posts

import (
	"context"
	"time"
)

// Repository is the authoritative post store
// Implementations assign IDs and timestamps and return List results sorted
// ascending by ScheduledAt. Each call is independent: there is no
// multi-record transaction.
type Repository interface {
	// Create persists post, filling in ID, CreatedAt and UpdatedAt.
	// A non-empty post.ID is ignored and replaced.
	Create(ctx context.Context, post *Post) error

	// GetByID returns the post or ErrNotFound
	GetByID(ctx context.Context, id string) (*Post, error)

	// List returns posts matching req, earliest first
	List(ctx context.Context, req ListPostsRequest) ([]*Post, error)

	// UpdateSchedule moves a post to a new time (drag-to-reschedule)
	UpdateSchedule(ctx context.Context, id string, scheduledAt time.Time) (*Post, error)

	// UpdateStatus records a lifecycle change
	UpdateStatus(ctx context.Context, id string, status Status) (*Post, error)

	// Delete removes the post; ErrNotFound if it does not exist
	Delete(ctx context.Context, id string) error
}
