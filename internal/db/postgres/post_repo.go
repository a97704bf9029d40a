package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"Perch/internal/core/posts"
)

type postgresPostRepo struct {
	db  *sql.DB
	ids *posts.IDGenerator
}

// NewPostRepository creates a new PostgreSQL post repository
// clockID separates the TID sequences of server processes sharing the database
func NewPostRepository(db *sql.DB, clockID uint) posts.Repository {
	return &postgresPostRepo{db: db, ids: posts.NewIDGenerator(clockID)}
}

const postColumns = `id, account_id, text, scheduled_at, media_urls, tags, status, created_at, updated_at`

// Create inserts a new post, assigning its ID; timestamps come from the database clock
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	post.ID = r.ids.Next()
	if post.Status == "" {
		post.Status = posts.StatusScheduled
	}

	query := `
		INSERT INTO posts (id, account_id, text, scheduled_at, media_urls, tags, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx, query,
		post.ID, post.AccountID, post.Text, post.ScheduledAt.UTC(),
		pq.Array(nonNil(post.MediaURLs)), pq.Array(nonNil(post.Tags)), string(post.Status),
	).Scan(&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" && pqErr.Constraint == "fk_account" {
			return posts.NewNotFoundError("account", post.AccountID)
		}
		return fmt.Errorf("failed to insert post: %w", err)
	}

	post.ScheduledAt = post.ScheduledAt.UTC()
	post.CreatedAt = post.CreatedAt.UTC()
	post.UpdatedAt = post.UpdatedAt.UTC()
	return nil
}

// GetByID retrieves a post by its TID
func (r *postgresPostRepo) GetByID(ctx context.Context, id string) (*posts.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}
	return post, nil
}

// List returns the timeline window, earliest first
func (r *postgresPostRepo) List(ctx context.Context, req posts.ListPostsRequest) ([]*posts.Post, error) {
	var (
		where []string
		args  []interface{}
	)
	addFilter := func(clause string, value interface{}) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if req.AccountID != "" {
		addFilter("account_id = $%d", req.AccountID)
	}
	if req.Status != "" {
		addFilter("status = $%d", string(req.Status))
	}
	if req.From != nil {
		addFilter("scheduled_at >= $%d", req.From.UTC())
	}
	if req.To != nil {
		addFilter("scheduled_at < $%d", req.To.UTC())
	}

	query := `SELECT ` + postColumns + ` FROM posts`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY scheduled_at ASC, id ASC`
	if req.Limit > 0 {
		args = append(args, req.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []*posts.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}
	return result, nil
}

// UpdateSchedule moves a post to a new time
func (r *postgresPostRepo) UpdateSchedule(ctx context.Context, id string, scheduledAt time.Time) (*posts.Post, error) {
	query := `
		UPDATE posts SET scheduled_at = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + postColumns

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id, scheduledAt.UTC()))
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reschedule post: %w", err)
	}
	return post, nil
}

// UpdateStatus records a lifecycle change
func (r *postgresPostRepo) UpdateStatus(ctx context.Context, id string, status posts.Status) (*posts.Post, error) {
	query := `
		UPDATE posts SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + postColumns

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id, string(status)))
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update post status: %w", err)
	}
	return post, nil
}

// Delete removes a post
func (r *postgresPostRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return posts.ErrNotFound
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*posts.Post, error) {
	var (
		post   posts.Post
		status string
		media  pq.StringArray
		tags   pq.StringArray
	)
	err := row.Scan(
		&post.ID, &post.AccountID, &post.Text, &post.ScheduledAt,
		&media, &tags, &status, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	post.Status = posts.Status(status)
	post.MediaURLs = nonNil(media)
	post.Tags = nonNil(tags)
	post.ScheduledAt = post.ScheduledAt.UTC()
	post.CreatedAt = post.CreatedAt.UTC()
	post.UpdatedAt = post.UpdatedAt.UTC()
	return &post, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
