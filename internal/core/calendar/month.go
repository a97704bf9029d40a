// Package calendar lays scheduled posts out on a Monday-first month grid.
package calendar

import (
	"fmt"
	"time"
	"unicode/utf8"

	"Perch/internal/core/posts"
)

const (
	// EntriesPerDay is how many posts a day cell lists before "+N more"
	EntriesPerDay = 3

	// PreviewLength is the number of characters of post text shown in a cell
	PreviewLength = 40

	// MonthLayout is the query format for a month, e.g. "2026-03"
	MonthLayout = "2006-01"
)

// Entry is a post as shown in a day cell
type Entry struct {
	PostID  string
	Time    string
	Preview string
	Status  posts.Status
}

// Label is the one-line cell text, e.g. "09:30 - Launch day"
func (e Entry) Label() string {
	return fmt.Sprintf("%s - %s", e.Time, e.Preview)
}

// Day is one cell of the grid
type Day struct {
	Date    time.Time
	Entries []Entry
	More    int
	InMonth bool
	IsToday bool
}

// Number is the day of month shown in the cell corner
func (d Day) Number() int {
	return d.Date.Day()
}

// Month is a full grid of weeks, each seven days starting Monday
type Month struct {
	Start time.Time
	Prev  time.Time
	Next  time.Time
	Weeks [][]Day
}

// Title is e.g. "March 2026"
func (m Month) Title() string {
	return m.Start.Format("January 2006")
}

// Weekdays are the column headers
func (m Month) Weekdays() []string {
	return []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
}

// ParseMonth reads a "YYYY-MM" value in loc; empty input means the month of now
func ParseMonth(s string, now time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if s == "" {
		return StartOfMonth(now.In(loc)), nil
	}
	t, err := time.ParseInLocation(MonthLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return t, nil
}

// StartOfMonth returns midnight on the first day of t's month, in t's location
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// GridRange is the first and last (exclusive) instant shown for month
func GridRange(month time.Time) (time.Time, time.Time) {
	first := StartOfMonth(month)
	start := first.AddDate(0, 0, -daysSinceMonday(first))

	last := first.AddDate(0, 1, -1)
	end := last.AddDate(0, 0, 7-daysSinceMonday(last))
	return start, end
}

// BuildMonth places list on the grid for month. Times are shown in month's
// location. list is expected sorted by ScheduledAt, as a Repository returns it.
func BuildMonth(month time.Time, list []*posts.Post, now time.Time) Month {
	loc := month.Location()
	first := StartOfMonth(month)
	start, end := GridRange(first)
	today := now.In(loc)

	byDay := make(map[string][]*posts.Post)
	for _, p := range list {
		local := p.ScheduledAt.In(loc)
		byDay[dayKey(local)] = append(byDay[dayKey(local)], p)
	}

	m := Month{
		Start: first,
		Prev:  first.AddDate(0, -1, 0),
		Next:  first.AddDate(0, 1, 0),
	}

	var week []Day
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		items := byDay[dayKey(d)]
		day := Day{
			Date:    d,
			InMonth: d.Month() == first.Month(),
			IsToday: dayKey(d) == dayKey(today),
		}
		for i, p := range items {
			if i == EntriesPerDay {
				day.More = len(items) - EntriesPerDay
				break
			}
			day.Entries = append(day.Entries, Entry{
				PostID:  p.ID,
				Time:    p.ScheduledAt.In(loc).Format("15:04"),
				Preview: truncate(p.Text, PreviewLength),
				Status:  p.Status,
			})
		}

		week = append(week, day)
		if len(week) == 7 {
			m.Weeks = append(m.Weeks, week)
			week = nil
		}
	}
	return m
}

func daysSinceMonday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
