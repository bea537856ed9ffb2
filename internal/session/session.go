package session

import (
	"context"
	"sync"

	"github.com/NE-Resources-2025/VRS/internal/api"
	"github.com/NE-Resources-2025/VRS/internal/models"
	"github.com/sirupsen/logrus"
)

// Store tracks at most one authenticated identity and persists just enough
// to restore it after a restart. It is injected into whatever drives the
// user-facing flows rather than living as ambient global state.
type Store struct {
	api  *api.Client
	keys *Keystore

	mu      sync.RWMutex
	current *models.User
}

func NewStore(client *api.Client, keys *Keystore) *Store {
	return &Store{api: client, keys: keys}
}

// Current returns the logged-in user, or nil.
func (s *Store) Current() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Login authenticates and write-through persists the user id.
func (s *Store) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.keys.Save(user.ID); err != nil {
		return nil, err
	}
	s.setCurrent(user)
	return user, nil
}

// Register creates the account and logs the session in as the new user.
func (s *Store) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	user, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.keys.Save(user.ID); err != nil {
		return nil, err
	}
	s.setCurrent(user)
	return user, nil
}

// Logout clears the persisted identity and the in-memory user. It succeeds
// even when no session exists.
func (s *Store) Logout() error {
	s.setCurrent(nil)
	return s.keys.Clear()
}

// Restore loads the persisted id, if any, and fetches the full user record.
// Any failure leaves the session logged out; nothing is reported to the
// caller. With no persisted id the user endpoint is never contacted.
func (s *Store) Restore(ctx context.Context) {
	userID, err := s.keys.Load()
	if err != nil || userID == "" {
		if err != nil {
			logrus.WithError(err).Debug("session keystore unreadable")
		}
		s.setCurrent(nil)
		return
	}

	user, err := s.api.GetUser(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("userId", userID).Debug("session restore failed")
		s.setCurrent(nil)
		return
	}
	s.setCurrent(user)
}

func (s *Store) setCurrent(user *models.User) {
	s.mu.Lock()
	s.current = user
	s.mu.Unlock()
}
