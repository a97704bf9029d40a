package memory

import (
	"context"
	"sort"
	"sync"

	"Perch/internal/core/accounts"
)

// AccountStore serves a fixed set of accounts
type AccountStore struct {
	accounts map[string]accounts.Account
	mu       sync.RWMutex
}

// NewAccountStore creates a store seeded with initial.
// Later entries with a duplicate ID replace earlier ones.
func NewAccountStore(initial []accounts.Account) *AccountStore {
	s := &AccountStore{accounts: make(map[string]accounts.Account, len(initial))}
	for _, a := range initial {
		s.accounts[a.ID] = a
	}
	return s
}

func (s *AccountStore) List(ctx context.Context) ([]*accounts.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*accounts.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		a := a
		result = append(result, &a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *AccountStore) GetByID(ctx context.Context, id string) (*accounts.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[id]
	if !ok {
		return nil, accounts.ErrAccountNotFound
	}
	return &a, nil
}
