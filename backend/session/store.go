package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no active session exists for a user.
var ErrNotFound = errors.New("session: token not found")

// Store keeps the active access token per user so that otherwise-valid
// JWTs can be revoked server-side. Logout deletes the entry; auth
// middleware rejects any token that no longer matches the stored one.
type Store interface {
	Save(ctx context.Context, userID uint, token string, ttl time.Duration) error
	Get(ctx context.Context, userID uint) (string, error)
	Delete(ctx context.Context, userID uint) error
}
