package mcptools

import (
	"fmt"
	"time"

	"github.com/chris-regnier/moodlog/internal/mood"
	"github.com/chris-regnier/moodlog/internal/search"
)

// toFilter validates tool arguments and turns them into a search filter.
func toFilter(in SearchInput) (search.Filter, error) {
	m, err := mood.Parse(in.Mood)
	if err != nil {
		return search.Filter{}, err
	}
	start, err := search.ParseDate(in.StartDate)
	if err != nil {
		return search.Filter{}, fmt.Errorf("start_date: %w", err)
	}
	end, err := search.ParseDate(in.EndDate)
	if err != nil {
		return search.Filter{}, fmt.Errorf("end_date: %w", err)
	}
	return search.Filter{Keyword: in.Keyword, Mood: m, Start: start, End: end}, nil
}

func formatDate(t time.Time) string {
	return t.Local().Format(search.DateLayout)
}
