package search

import (
	"github.com/chris-regnier/moodlog/internal/storage"
)

// DefaultPageSize is the page size used wherever search is invoked without
// an explicit limit.
const DefaultPageSize = 20

// BuildQuery composes the store query for f. The owner predicate is always
// applied; every other predicate is present only when the filter sets it.
func BuildQuery(ownerID string, f Filter, offset, limit int) storage.Query {
	f = f.Normalize()

	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}

	q := storage.Query{
		OwnerID: ownerID,
		Text:    f.Term(),
		Mood:    f.Mood,
		Offset:  offset,
		Limit:   limit,
	}
	if f.Start != nil {
		from := startOfDay(*f.Start)
		q.From = &from
	}
	if f.End != nil {
		to := endOfDay(*f.End)
		q.To = &to
	}
	return q
}
