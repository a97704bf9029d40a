package posts

import (
	"github.com/bluesky-social/indigo/atproto/syntax"
)

// IDGenerator hands out post IDs as TIDs: sortable, 13-character base32
// timestamps. The clock guarantees monotonic values for a single process.
type IDGenerator struct {
	clock *syntax.TIDClock
}

// NewIDGenerator creates a generator; clockID distinguishes processes that
// share a database
func NewIDGenerator(clockID uint) *IDGenerator {
	return &IDGenerator{clock: syntax.NewTIDClock(clockID)}
}

// Next returns a fresh ID
func (g *IDGenerator) Next() string {
	return g.clock.Next().String()
}
