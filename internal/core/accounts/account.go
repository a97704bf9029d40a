// Package accounts holds the social accounts ("handles") posts are scheduled for.
// Accounts are reference data: they are seeded at startup and never edited here.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// ErrAccountNotFound is returned when a lookup finds no matching account
var ErrAccountNotFound = errors.New("account not found")

// Account is a handle posts can be scheduled for
type Account struct {
	ID        string `json:"id" yaml:"id" db:"id"`
	Name      string `json:"name" yaml:"name" db:"name"`
	HandleTag string `json:"handleTag" yaml:"handle" db:"handle_tag"`
}

// Label is how the composer shows an account, e.g. "Demo Account (@demo)"
func (a Account) Label() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.HandleTag)
}

// Repository gives read access to accounts
type Repository interface {
	// List returns all accounts ordered by ID
	List(ctx context.Context) ([]*Account, error)

	// GetByID returns the account or ErrAccountNotFound
	GetByID(ctx context.Context, id string) (*Account, error)
}

var handleTagPattern = regexp.MustCompile(`^@[A-Za-z0-9_]{1,15}$`)

// InvalidAccountError describes a seed entry that cannot be loaded
type InvalidAccountError struct {
	ID     string
	Reason string
}

func (e *InvalidAccountError) Error() string {
	return fmt.Sprintf("invalid account %q: %s", e.ID, e.Reason)
}

// Validate checks an account before it is seeded into a store
func Validate(a Account) error {
	if a.ID == "" {
		return &InvalidAccountError{ID: a.ID, Reason: "id is required"}
	}
	if a.Name == "" {
		return &InvalidAccountError{ID: a.ID, Reason: "name is required"}
	}
	if !handleTagPattern.MatchString(a.HandleTag) {
		return &InvalidAccountError{ID: a.ID, Reason: fmt.Sprintf("handle %q must be @ followed by 1-15 letters, digits or underscores", a.HandleTag)}
	}
	return nil
}

// Defaults are the accounts a fresh memory store starts with
func Defaults() []Account {
	return []Account{
		{ID: "h1", Name: "Demo Account", HandleTag: "@demo"},
		{ID: "h2", Name: "Marketing Bot", HandleTag: "@marketing"},
	}
}
