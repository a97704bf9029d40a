// Package scheduler implements the submit, reschedule and import flows on top
// of the pure draft and recurrence packages and a post store.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"Perch/internal/core/accounts"
	"Perch/internal/core/analytics"
	"Perch/internal/core/csvio"
	"Perch/internal/core/drafts"
	"Perch/internal/core/posts"
	"Perch/internal/core/recurrence"
)

// issueNotSaved is reported for an import row the store rejected
const issueNotSaved = "Could not be saved"

type schedulerService struct {
	repo     posts.Repository
	accounts accounts.Repository
	logger   *slog.Logger
	cfg      Config
}

// NewService creates a new scheduler service
// logger may be nil, in which case slog.Default() is used
func NewService(repo posts.Repository, accountRepo accounts.Repository, cfg Config, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &schedulerService{
		repo:     repo,
		accounts: accountRepo,
		cfg:      cfg,
		logger:   logger,
	}
}

func (s *schedulerService) Accounts(ctx context.Context) ([]*accounts.Account, error) {
	list, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return list, nil
}

func (s *schedulerService) Validate(d drafts.Draft) []string {
	return drafts.Validate(d, s.cfg.createOptions())
}

// Schedule flow:
// 1. Validate the draft
// 2. Check the account exists
// 3. Persist the base post
// 4. Expand the persisted base and persist occurrences 1..n-1 one at a time
func (s *schedulerService) Schedule(ctx context.Context, req ScheduleRequest) ([]*posts.Post, error) {
	if issues := drafts.Validate(req.Draft, s.cfg.createOptions()); len(issues) > 0 {
		return nil, posts.NewValidationError(issues...)
	}
	if err := s.requireAccount(ctx, req.AccountID); err != nil {
		return nil, err
	}

	base, err := s.newPost(req.Draft)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, base); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	created := []*posts.Post{base}

	cadence := recurrence.ParseCadence(req.Repeat)
	occurrences := recurrence.Expand(*base, cadence, req.Occurrences)
	for i := 1; i < len(occurrences); i++ {
		occurrence := occurrences[i]
		occurrence.ID = ""
		if err := s.repo.Create(ctx, &occurrence); err != nil {
			s.logger.Error("failed to create occurrence",
				"error", err,
				"base", base.ID,
				"occurrence", i,
				"total", len(occurrences))
			return created, fmt.Errorf("failed to create occurrence %d of %d: %w", i+1, len(occurrences), err)
		}
		created = append(created, &occurrence)
	}

	s.logger.Info("post scheduled",
		"id", base.ID,
		"account", base.AccountID,
		"scheduled_at", base.ScheduledAt,
		"cadence", string(cadence),
		"occurrences", len(created))
	return created, nil
}

func (s *schedulerService) Get(ctx context.Context, id string) (*posts.Post, error) {
	if strings.TrimSpace(id) == "" {
		return nil, posts.NewValidationError("Post id is required")
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepoErr("get post", id, err)
	}
	return p, nil
}

func (s *schedulerService) Timeline(ctx context.Context, req posts.ListPostsRequest) ([]*posts.Post, error) {
	list, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return list, nil
}

func (s *schedulerService) Reschedule(ctx context.Context, id, scheduledAt string) (*posts.Post, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	d := current.Draft()
	d.ScheduledAt = scheduledAt
	if issues := drafts.Validate(d, s.cfg.createOptions()); len(issues) > 0 {
		return nil, posts.NewValidationError(issues...)
	}
	when, err := drafts.ParseScheduledAt(scheduledAt, s.cfg.Location)
	if err != nil {
		return nil, posts.NewValidationError(drafts.IssueInvalidDate)
	}

	updated, err := s.repo.UpdateSchedule(ctx, id, when.UTC())
	if err != nil {
		return nil, wrapRepoErr("reschedule post", id, err)
	}
	s.logger.Info("post rescheduled", "id", id, "from", current.ScheduledAt, "to", updated.ScheduledAt)
	return updated, nil
}

func (s *schedulerService) SetStatus(ctx context.Context, id string, status posts.Status) (*posts.Post, error) {
	if _, err := posts.ParseStatus(string(status)); err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, wrapRepoErr("update post status", id, err)
	}
	s.logger.Info("post status changed", "id", id, "status", string(status))
	return updated, nil
}

func (s *schedulerService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return wrapRepoErr("delete post", id, err)
	}
	s.logger.Info("post deleted", "id", id)
	return nil
}

func (s *schedulerService) Import(ctx context.Context, accountID string, rows []csvio.Row) (*ImportResult, error) {
	if strings.TrimSpace(accountID) == "" {
		return nil, posts.NewValidationError(drafts.IssueHandleRequired)
	}
	if err := s.requireAccount(ctx, accountID); err != nil {
		return nil, err
	}

	result := &ImportResult{
		BatchID:  uuid.NewString(),
		Imported: []*posts.Post{},
		Skipped:  []SkippedRow{},
	}
	opts := s.cfg.importOptions()

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		d := row.Draft(accountID)
		if issues := drafts.Validate(d, opts); len(issues) > 0 {
			result.Skipped = append(result.Skipped, SkippedRow{Line: row.Line, Issues: issues})
			continue
		}

		p, err := s.newPost(d)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedRow{Line: row.Line, Issues: []string{drafts.IssueInvalidDate}})
			continue
		}
		if err := s.repo.Create(ctx, p); err != nil {
			// one bad row does not stop the batch
			s.logger.Warn("import row not saved", "batch", result.BatchID, "line", row.Line, "error", err)
			result.Skipped = append(result.Skipped, SkippedRow{Line: row.Line, Issues: []string{issueNotSaved}})
			continue
		}
		result.Imported = append(result.Imported, p)
	}

	s.logger.Info("csv import finished",
		"batch", result.BatchID,
		"account", accountID,
		"imported", len(result.Imported),
		"skipped", len(result.Skipped))
	return result, nil
}

func (s *schedulerService) Analytics(ctx context.Context, accountID string) ([]analytics.DailyCount, error) {
	list, err := s.repo.List(ctx, posts.ListPostsRequest{AccountID: accountID})
	if err != nil {
		return nil, fmt.Errorf("failed to list posts for analytics: %w", err)
	}
	return analytics.Snapshot(list, s.cfg.Location), nil
}

func (s *schedulerService) requireAccount(ctx context.Context, id string) error {
	if _, err := s.accounts.GetByID(ctx, id); err != nil {
		if errors.Is(err, accounts.ErrAccountNotFound) {
			return posts.NewNotFoundError("account", id)
		}
		return fmt.Errorf("failed to look up account: %w", err)
	}
	return nil
}

// newPost builds the persisted form of a validated draft
func (s *schedulerService) newPost(d drafts.Draft) (*posts.Post, error) {
	when, err := drafts.ParseScheduledAt(d.ScheduledAt, s.cfg.Location)
	if err != nil {
		return nil, posts.NewValidationError(drafts.IssueInvalidDate)
	}
	return &posts.Post{
		AccountID:   strings.TrimSpace(d.AccountID),
		Text:        d.Text,
		ScheduledAt: when.UTC(),
		MediaURLs:   nonNil(d.MediaURLs),
		Tags:        nonNil(d.Tags),
		Status:      posts.StatusScheduled,
	}, nil
}

func wrapRepoErr(op, id string, err error) error {
	if errors.Is(err, posts.ErrNotFound) {
		return posts.NewNotFoundError("post", id)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append([]string(nil), s...)
}
