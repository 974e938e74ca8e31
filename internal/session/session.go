// Package session holds the persisted credential: the bearer token and
// the cached user profile. Every view reads it at activation; login and
// logout are the only writers. Writes go through an exclusive file lock
// so concurrent CLI invocations cannot tear the file.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	"github.com/xenonnoble69/assistdeck-frontend/internal/deck"
)

// ErrNotAuthenticated is returned when no credential is stored.
var ErrNotAuthenticated = errors.New("not authenticated")

// Credential is the stored token plus cached profile.
type Credential struct {
	Token string    `json:"token"`
	User  deck.User `json:"user"`
}

// Store manages the credential file and notifies subscribers on logout.
type Store struct {
	path string
	lock *flock.Flock

	mu         sync.RWMutex
	credential *Credential
	loggedOut  []chan struct{}
}

// NewStore creates a store backed by the given file path. The file is
// read lazily on first access.
func NewStore(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Load reads the credential from disk. A missing file means no session;
// that is not an error, Authenticated just reports false.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.credential = nil
			return nil
		}
		return fmt.Errorf("reading session file: %w", err)
	}

	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		// A corrupt session file is treated as logged out rather than
		// wedging every command behind a parse error.
		s.credential = nil
		return nil
	}
	if cred.Token == "" {
		s.credential = nil
		return nil
	}

	s.credential = &cred
	return nil
}

// Save persists the credential atomically (temp file + rename) under an
// exclusive lock.
func (s *Store) Save(cred Credential) error {
	if cred.Token == "" {
		return errors.New("credential token is empty")
	}

	if err := s.withLock(func() error {
		return writeFileAtomic(s.path, cred)
	}); err != nil {
		return err
	}

	s.mu.Lock()
	s.credential = &cred
	s.mu.Unlock()
	return nil
}

// Clear removes the credential and signals every logout subscriber.
// Clearing an already-empty session is a no-op.
func (s *Store) Clear() error {
	if err := s.withLock(func() error {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing session file: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}

	s.mu.Lock()
	wasAuthenticated := s.credential != nil
	s.credential = nil
	subscribers := s.loggedOut
	s.loggedOut = nil
	s.mu.Unlock()

	if wasAuthenticated {
		for _, ch := range subscribers {
			close(ch)
		}
	}
	return nil
}

// Authenticated reports whether a credential is present.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential != nil
}

// Token returns the bearer token, or the empty string when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.credential == nil {
		return ""
	}
	return s.credential.Token
}

// Current returns the cached user profile.
func (s *Store) Current() (deck.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.credential == nil {
		return deck.User{}, ErrNotAuthenticated
	}
	return s.credential.User, nil
}

// Subscribe returns a channel that is closed when the session is
// cleared. Each subscriber gets its own channel, closed exactly once.
func (s *Store) Subscribe() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan struct{})
	if s.credential == nil {
		// Already logged out; signal immediately.
		close(ch)
		return ch
	}
	s.loggedOut = append(s.loggedOut, ch)
	return ch
}

func (s *Store) withLock(fn func() error) error {
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("creating session directory: %w", err)
		}
	}

	locked, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquiring session lock: %w", err)
	}
	if !locked {
		return errors.New("session file is locked by another process")
	}
	defer s.lock.Unlock()

	return fn()
}

func writeFileAtomic(path string, cred Credential) error {
	data, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing session file: %w", err)
	}
	return nil
}
