// Package mood defines the closed vocabulary of mood tags an entry may carry.
package mood

import (
	"errors"
	"fmt"
	"strings"
)

// Mood is a single emotion label. The zero value means "no mood".
type Mood string

const (
	None     Mood = ""
	Happy    Mood = "happy"
	Sad      Mood = "sad"
	Anxious  Mood = "anxious"
	Calm     Mood = "calm"
	Stressed Mood = "stressed"
	Neutral  Mood = "neutral"
	Angry    Mood = "angry"
	Grateful Mood = "grateful"
)

// ErrUnknown is returned by Parse for labels outside the vocabulary.
var ErrUnknown = errors.New("unknown mood")

var all = []Mood{Happy, Sad, Anxious, Calm, Stressed, Neutral, Angry, Grateful}

// All returns every mood in display order.
func All() []Mood {
	out := make([]Mood, len(all))
	copy(out, all)
	return out
}

// Valid reports whether m is a member of the vocabulary. None is not valid.
func (m Mood) Valid() bool {
	for _, v := range all {
		if v == m {
			return true
		}
	}
	return false
}

func (m Mood) String() string {
	if m == None {
		return "any"
	}
	return string(m)
}

// Parse resolves a label case-insensitively. An empty or "any" label yields None.
func Parse(s string) (Mood, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "any" {
		return None, nil
	}
	m := Mood(s)
	if !m.Valid() {
		return None, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknown, s, Labels())
	}
	return m, nil
}

// Labels returns the vocabulary as a comma separated list, for help text.
func Labels() string {
	names := make([]string, len(all))
	for i, m := range all {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// Next cycles through None followed by every mood, wrapping around.
func Next(m Mood) Mood {
	if m == None {
		return all[0]
	}
	for i, v := range all {
		if v == m && i+1 < len(all) {
			return all[i+1]
		}
	}
	return None
}
