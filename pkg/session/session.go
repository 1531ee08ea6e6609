// Package session remembers where a reader left off in each score.
//
// A [Session] records the staff a reader was looking at and the layout
// options in use, keyed by score ID. Keeping the staff rather than the page
// makes a session independent of the canvas: resuming on a different screen
// lays the score out again and lands on the page holding that staff.
//
// Three [Store] backends are provided:
//   - [MemoryStore]: in-process storage for tests and single-instance servers
//   - [FileStore]: JSON files in the user's config directory, used by the CLI
//   - [RedisStore]: shared storage for multi-instance server deployments
//
// # Usage
//
//	store, err := session.NewFileStore("")  // Uses $XDG_CONFIG_HOME/scorepager/sessions/
//	if err != nil {
//	    return err
//	}
//
//	sess, err := store.Get(ctx, scoreID)
//	if errors.Is(err, errors.ErrCodeSessionNotFound) {
//	    sess, err = session.New(scoreID, 0, opts, session.DefaultTTL)
//	}
//	...
//	sess.Record(nav.CurrentStaff(), nav.Options(), session.DefaultTTL)
//	store.Set(ctx, sess)
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/scorepager/pkg/errors"
	"github.com/matzehuels/scorepager/pkg/pipeline"
)

// DefaultTTL is how long an untouched session is kept.
const DefaultTTL = 30 * 24 * time.Hour

// Session is a saved reading position.
type Session struct {
	ID        string           `json:"id"`
	ScoreID   string           `json:"score_id"`
	Staff     int              `json:"staff"`
	Options   pipeline.Options `json:"options"`
	UpdatedAt time.Time        `json:"updated_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// New creates a session for scoreID positioned at staff.
func New(scoreID string, staff int, opts pipeline.Options, ttl time.Duration) (*Session, error) {
	if err := errors.ValidateScoreID(scoreID); err != nil {
		return nil, err
	}
	s := &Session{ID: uuid.NewString(), ScoreID: scoreID}
	s.Record(staff, opts, ttl)
	return s, nil
}

// Record moves the session to staff with opts and extends its lifetime.
func (s *Session) Record(staff int, opts pipeline.Options, ttl time.Duration) {
	now := time.Now()
	s.Staff = staff
	s.Options = opts
	s.UpdatedAt = now
	s.ExpiresAt = now.Add(ttl)
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Validate checks a session before it is stored.
func (s *Session) Validate() error {
	if err := errors.ValidateScoreID(s.ScoreID); err != nil {
		return err
	}
	if s.Staff < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "staff must not be negative, got %d", s.Staff)
	}
	return nil
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves the session of a score. A missing or expired session is
	// reported as SESSION_NOT_FOUND.
	Get(ctx context.Context, scoreID string) (*Session, error)

	// Set stores a session, replacing any previous session of the score.
	Set(ctx context.Context, session *Session) error

	// Delete removes the session of a score. Deleting a missing session is
	// not an error.
	Delete(ctx context.Context, scoreID string) error

	// Cleanup removes expired sessions (may be a no-op for Redis).
	Cleanup(ctx context.Context) error

	// Close releases the backend's resources.
	Close() error
}

func notFound(scoreID string) error {
	return errors.New(errors.ErrCodeSessionNotFound, "no session for score %q", scoreID)
}
