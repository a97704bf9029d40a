// Package analytics summarises the post queue for the dashboard chart.
package analytics

import (
	"sort"
	"time"

	"Perch/internal/core/posts"
)

// DateLayout is the key format of DailyCount.Date
const DateLayout = "2006-01-02"

// DailyCount is one point of the chart
type DailyCount struct {
	Date      string `json:"date"`
	Posts     int    `json:"posts"`
	Scheduled int    `json:"scheduled"`
	Posted    int    `json:"posted"`
	Failed    int    `json:"failed"`
}

// Snapshot groups posts by the calendar day they are scheduled for in loc
// (UTC when nil). Days without posts are omitted. Result is sorted by date.
func Snapshot(list []*posts.Post, loc *time.Location) []DailyCount {
	if loc == nil {
		loc = time.UTC
	}

	byDay := make(map[string]*DailyCount)
	for _, p := range list {
		key := p.ScheduledAt.In(loc).Format(DateLayout)
		c, ok := byDay[key]
		if !ok {
			c = &DailyCount{Date: key}
			byDay[key] = c
		}
		c.Posts++
		switch p.Status {
		case posts.StatusPosted:
			c.Posted++
		case posts.StatusFailed:
			c.Failed++
		default:
			c.Scheduled++
		}
	}

	out := make([]DailyCount, 0, len(byDay))
	for _, c := range byDay {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
