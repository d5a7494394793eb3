// Package search turns a journal search filter into an owner-scoped store
// query and executes it with supersession: only the most recently issued
// request may deliver results.
package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/chris-regnier/moodlog/internal/mood"
)

// DateLayout is the calendar date format accepted for filter bounds.
const DateLayout = "2006-01-02"

// Filter is the user-held combination of search constraints.
// Start and End are calendar dates and are both inclusive.
type Filter struct {
	Keyword string
	Mood    mood.Mood
	Start   *time.Time
	End     *time.Time
}

// Term returns the keyword with surrounding whitespace removed.
func (f Filter) Term() string {
	return strings.TrimSpace(f.Keyword)
}

// IsEmpty reports whether the filter constrains nothing. An empty filter
// means "no search in progress", never "match everything".
func (f Filter) IsEmpty() bool {
	return f.Term() == "" && f.Mood == mood.None && f.Start == nil && f.End == nil
}

// Normalize returns a copy with the date bounds swapped when Start falls on
// a later day than End.
func (f Filter) Normalize() Filter {
	if f.Start != nil && f.End != nil && startOfDay(*f.Start).After(startOfDay(*f.End)) {
		f.Start, f.End = f.End, f.Start
	}
	return f
}

// Equal reports whether two filters would produce the same query.
func (f Filter) Equal(o Filter) bool {
	return f.Term() == o.Term() && f.Mood == o.Mood &&
		sameDay(f.Start, o.Start) && sameDay(f.End, o.End)
}

// ParseDate parses a YYYY-MM-DD date in local time. An empty string yields nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	return &t, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return startOfDay(*a).Equal(startOfDay(*b))
}
