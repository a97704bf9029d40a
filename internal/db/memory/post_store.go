// Package memory provides process-local stores. State is owned by the store
// value; construct one per server (or per test) and discard it when done.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"Perch/internal/core/posts"
)

// PostStore keeps posts in a map guarded by a RWMutex
type PostStore struct {
	posts map[string]*posts.Post
	ids   *posts.IDGenerator
	now   func() time.Time
	mu    sync.RWMutex
}

// NewPostStore creates a store holding copies of initial.
// Initial posts keep their IDs; posts without one are assigned a fresh ID.
func NewPostStore(initial []posts.Post) *PostStore {
	s := &PostStore{
		posts: make(map[string]*posts.Post, len(initial)),
		ids:   posts.NewIDGenerator(0),
		now:   time.Now,
	}
	for _, p := range initial {
		p := p.Clone()
		if p.ID == "" {
			p.ID = s.ids.Next()
		}
		if p.Status == "" {
			p.Status = posts.StatusScheduled
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = s.now().UTC()
			p.UpdatedAt = p.CreatedAt
		}
		s.posts[p.ID] = &p
	}
	return s
}

func (s *PostStore) Create(ctx context.Context, post *posts.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	post.ID = s.ids.Next()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Status == "" {
		post.Status = posts.StatusScheduled
	}

	stored := post.Clone()
	s.posts[stored.ID] = &stored
	return nil
}

func (s *PostStore) GetByID(ctx context.Context, id string) (*posts.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, posts.ErrNotFound
	}
	out := p.Clone()
	return &out, nil
}

func (s *PostStore) List(ctx context.Context, req posts.ListPostsRequest) ([]*posts.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	result := make([]*posts.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if req.Matches(p) {
			c := p.Clone()
			result = append(result, &c)
		}
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].ScheduledAt.Equal(result[j].ScheduledAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].ScheduledAt.Before(result[j].ScheduledAt)
	})

	if req.Limit > 0 && len(result) > req.Limit {
		result = result[:req.Limit]
	}
	return result, nil
}

func (s *PostStore) UpdateSchedule(ctx context.Context, id string, scheduledAt time.Time) (*posts.Post, error) {
	return s.update(id, func(p *posts.Post) { p.ScheduledAt = scheduledAt.UTC() })
}

func (s *PostStore) UpdateStatus(ctx context.Context, id string, status posts.Status) (*posts.Post, error) {
	return s.update(id, func(p *posts.Post) { p.Status = status })
}

func (s *PostStore) update(id string, apply func(p *posts.Post)) (*posts.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, posts.ErrNotFound
	}
	apply(p)
	p.UpdatedAt = s.now().UTC()

	out := p.Clone()
	return &out, nil
}

func (s *PostStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return posts.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}
