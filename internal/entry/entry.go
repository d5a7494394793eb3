package entry

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/chris-regnier/moodlog/internal/mood"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 8
)

var idPattern = regexp.MustCompile(`^[a-z0-9]{8}$`)

// Entry represents a single journal entry. It belongs to exactly one owner.
type Entry struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Content   string    `json:"content"`
	Mood      mood.Mood `json:"mood,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewID generates a new nanoid for an entry.
func NewID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}

// ValidateID checks whether an ID matches the expected pattern.
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("invalid entry ID: %q (must be 8 lowercase alphanumeric characters)", id)
	}
	return nil
}

// ValidateContent checks whether content is non-empty.
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("entry content must not be empty")
	}
	return nil
}

// Validate checks the fields a store requires before persisting an entry.
func (e *Entry) Validate() error {
	if err := ValidateID(e.ID); err != nil {
		return err
	}
	if e.OwnerID == "" {
		return fmt.Errorf("entry %s has no owner", e.ID)
	}
	if e.Mood != mood.None && !e.Mood.Valid() {
		return fmt.Errorf("entry %s: %w: %q", e.ID, mood.ErrUnknown, e.Mood)
	}
	return ValidateContent(e.Content)
}
