// Package session owns the logged-in user for the lifetime of the client.
//
// A Store keeps the user in memory and mirrors it to a durable key/value
// slot so that a restart resumes the session. The durable write always
// happens first; the in-memory value changes only once it succeeded.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/sitegen/internal/client/models"
	"github.com/dmitrijs2005/sitegen/internal/common"
	"github.com/dmitrijs2005/sitegen/internal/logging"
)

// ErrNoSession is returned by Update when nobody is logged in.
var ErrNoSession = errors.New("no active session")

// Storage is the subset of the metadata repository the store needs.
// Get returns (nil, nil) when the key is absent.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// timestamped is implemented by storages that track write times.
type timestamped interface {
	UpdatedAt(ctx context.Context, key string) (time.Time, bool, error)
}

type Store struct {
	mu      sync.RWMutex
	storage Storage
	logger  logging.Logger
	key     string
	user    *models.User
}

func NewStore(storage Storage, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Store{storage: storage, logger: logger, key: common.SessionKey}
}

// Restore loads the persisted snapshot into memory. A missing or malformed
// snapshot yields (nil, nil); only storage failures are returned.
func (s *Store) Restore(ctx context.Context) (*models.User, error) {
	raw, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(raw) == 0 {
		s.user = nil
		return nil, nil
	}

	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		s.logger.Warn(ctx, "discarding unreadable session snapshot", "error", err)
		s.user = nil
		return nil, nil
	}
	if err := u.Validate(); err != nil {
		s.logger.Warn(ctx, "discarding invalid session snapshot", "error", err)
		s.user = nil
		return nil, nil
	}

	s.user = &u
	out := u
	return &out, nil
}

// Save persists u and makes it the current user.
func (s *Store) Save(ctx context.Context, u *models.User) error {
	if u == nil {
		return fmt.Errorf("save session: %w: nil user", models.ErrInvalidUser)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, *u)
}

func (s *Store) saveLocked(ctx context.Context, u models.User) error {
	if err := u.Validate(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("save session: encode: %w", err)
	}
	if err := s.storage.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.user = &u
	return nil
}

// Update replaces the current user with fn's result under the same rules as
// Save. fn receives a copy and must not retain it.
func (s *Store) Update(ctx context.Context, fn func(models.User) models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return ErrNoSession
	}
	return s.saveLocked(ctx, fn(*s.user))
}

// Clear forgets the session. Memory is always cleared; the error of the
// durable delete, if any, is returned.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err := s.storage.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Current returns a copy of the in-memory user.
func (s *Store) Current() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// SavedAt reports when the session snapshot was last written. ok is false
// when nothing is stored or the storage does not track write times.
func (s *Store) SavedAt(ctx context.Context) (time.Time, bool, error) {
	ts, isTimestamped := s.storage.(timestamped)
	if !isTimestamped {
		return time.Time{}, false, nil
	}
	at, ok, err := ts.UpdatedAt(ctx, s.key)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("session timestamp: %w", err)
	}
	return at, ok, nil
}
