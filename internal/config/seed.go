package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"Perch/internal/core/accounts"
	"Perch/internal/core/drafts"
	"Perch/internal/core/posts"
)

// Seed is the initial state of a store
type Seed struct {
	Accounts []accounts.Account
	Posts    []posts.Post
}

type seedFile struct {
	Accounts []accounts.Account `yaml:"accounts"`
	Posts    []seedPost         `yaml:"posts"`
}

type seedPost struct {
	ID          string   `yaml:"id"`
	Account     string   `yaml:"account"`
	Text        string   `yaml:"text"`
	ScheduledAt string   `yaml:"scheduled_at"`
	Status      string   `yaml:"status"`
	Media       []string `yaml:"media"`
	Tags        []string `yaml:"tags"`
}

// DefaultSeed is used when no seed file is configured
func DefaultSeed() *Seed {
	return &Seed{Accounts: accounts.Defaults()}
}

// LoadSeed reads a YAML seed file. Naive datetimes are read in loc.
// Posts are checked for shape only: past times are allowed.
func LoadSeed(path string, loc *time.Location) (*Seed, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(b, loc)
}

// ParseSeed decodes seed YAML
func ParseSeed(b []byte, loc *time.Location) (*Seed, error) {
	var f seedFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("invalid seed yaml: %w", err)
	}

	seed := &Seed{Accounts: f.Accounts}
	if len(seed.Accounts) == 0 {
		seed.Accounts = accounts.Defaults()
	}
	known := make(map[string]bool, len(seed.Accounts))
	for _, a := range seed.Accounts {
		if err := accounts.Validate(a); err != nil {
			return nil, err
		}
		if known[a.ID] {
			return nil, fmt.Errorf("duplicate account id %q in seed", a.ID)
		}
		known[a.ID] = true
	}

	for i, sp := range f.Posts {
		d := drafts.Draft{
			Text:        sp.Text,
			ScheduledAt: sp.ScheduledAt,
			AccountID:   sp.Account,
			MediaURLs:   sp.Media,
			Tags:        sp.Tags,
		}
		if issues := drafts.Validate(d, drafts.Options{Location: loc}); len(issues) > 0 {
			return nil, fmt.Errorf("seed post %d: %w", i+1, posts.NewValidationError(issues...))
		}
		if !known[sp.Account] {
			return nil, fmt.Errorf("seed post %d: %w", i+1, posts.NewNotFoundError("account", sp.Account))
		}

		status := posts.StatusScheduled
		if sp.Status != "" {
			parsed, err := posts.ParseStatus(sp.Status)
			if err != nil {
				return nil, fmt.Errorf("seed post %d: %w", i+1, err)
			}
			status = parsed
		}
		when, _ := drafts.ParseScheduledAt(sp.ScheduledAt, loc)

		seed.Posts = append(seed.Posts, posts.Post{
			ID:          sp.ID,
			AccountID:   sp.Account,
			Text:        sp.Text,
			ScheduledAt: when.UTC(),
			Status:      status,
			MediaURLs:   sp.Media,
			Tags:        sp.Tags,
		})
	}
	return seed, nil
}
