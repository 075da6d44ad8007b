package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"image-identifier/internal/llm"
	"image-identifier/internal/pipeline"
)

var (
	// ErrNotFound is returned for unknown or expired sessions.
	ErrNotFound = errors.New("session not found")
	// ErrBusy is returned when an identify chain is already running for the session.
	ErrBusy = errors.New("identification already in progress")
)

// Session holds the ephemeral state of one upload: the image and the latest
// identify result. A regeneration replaces Result wholesale.
type Session struct {
	ID        uuid.UUID        `json:"id"`
	Image     llm.InlineData   `json:"image"`
	Result    *pipeline.Result `json:"result,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// Store keeps sessions for a limited time.
type Store interface {
	// Create stores a new session for the uploaded image.
	Create(ctx context.Context, image llm.InlineData) (Session, error)

	// Get returns the session or ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (Session, error)

	// SaveResult replaces the latest result of a session.
	SaveResult(ctx context.Context, id uuid.UUID, result pipeline.Result) error

	// Acquire sets the loading flag; it returns ErrBusy when the flag is
	// already set. The flag expires after ttl if never released.
	Acquire(ctx context.Context, id uuid.UUID, ttl time.Duration) error

	// Release clears the loading flag.
	Release(ctx context.Context, id uuid.UUID) error

	// Close closes the store connection
	Close() error
}
