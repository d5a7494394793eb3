// Package session supplies the identity of the current user. The search
// subsystem uses it as the mandatory ownership predicate and never accepts
// an owner id from user input.
package session

import (
	"context"
	"errors"
	"fmt"
	"os/user"

	"github.com/google/uuid"
)

// ErrNoIdentity is returned when no current user can be established.
var ErrNoIdentity = errors.New("no current user")

// Provider returns the identifier of the signed-in user.
type Provider interface {
	CurrentUser(ctx context.Context) (string, error)
}

// Static is a Provider bound to a single, already authenticated user.
type Static struct {
	id uuid.UUID
}

// NewStatic validates id as a UUID and returns a Provider for it.
func NewStatic(id string) (*Static, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id %q: %v", ErrNoIdentity, id, err)
	}
	if parsed == uuid.Nil {
		return nil, fmt.Errorf("%w: nil user id", ErrNoIdentity)
	}
	return &Static{id: parsed}, nil
}

// CurrentUser returns the bound user id.
func (s *Static) CurrentUser(ctx context.Context) (string, error) {
	if s == nil {
		return "", ErrNoIdentity
	}
	return s.id.String(), nil
}

// namespace scopes derived user ids so they never collide with ids minted elsewhere.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/chris-regnier/moodlog"))

// FromConfig resolves the configured user id. When none is configured a
// stable id is derived from the OS account name, so the same account always
// sees the same journal.
func FromConfig(configured string) (*Static, error) {
	if configured != "" {
		return NewStatic(configured)
	}
	u, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoIdentity, err)
	}
	return &Static{id: uuid.NewSHA1(namespace, []byte(u.Username))}, nil
}
