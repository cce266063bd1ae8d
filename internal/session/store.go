// Package session keeps the cumulative user profile of a conversation for a
// bounded time.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
)

// DefaultTTL is how long an idle session survives.
const DefaultTTL = 30 * time.Minute

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

// Store persists profiles by session id. Save refreshes the expiry.
type Store interface {
	Load(ctx context.Context, id string) (domain.UserProfile, error)
	Save(ctx context.Context, id string, profile domain.UserProfile) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// NewID returns a random session id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like an id issued by NewID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
