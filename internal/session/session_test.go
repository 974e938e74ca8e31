package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xenonnoble69/assistdeck-frontend/internal/deck"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestStore_SaveAndLoad(t *testing.T) {
	s := newTestStore(t)

	cred := Credential{
		Token: "tok-123",
		User:  deck.User{ID: "u1", Name: "Ada", Email: "ada@example.com"},
	}
	if err := s.Save(cred); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// A fresh store over the same path should read it back
	s2 := NewStore(s.path)
	if err := s2.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !s2.Authenticated() {
		t.Fatal("expected authenticated after load")
	}
	if s2.Token() != "tok-123" {
		t.Errorf("Token() = %q, want %q", s2.Token(), "tok-123")
	}
	user, err := s2.Current()
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if user.Name != "Ada" {
		t.Errorf("user.Name = %q, want %q", user.Name, "Ada")
	}
}

func TestStore_LoadMissingFileIsLoggedOut(t *testing.T) {
	s := newTestStore(t)

	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Authenticated() {
		t.Error("expected not authenticated for missing file")
	}
	if s.Token() != "" {
		t.Errorf("Token() = %q, want empty", s.Token())
	}
	if _, err := s.Current(); err != ErrNotAuthenticated {
		t.Errorf("Current() error = %v, want ErrNotAuthenticated", err)
	}
}

func TestStore_LoadCorruptFileIsLoggedOut(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}

	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Authenticated() {
		t.Error("expected not authenticated for corrupt file")
	}
}

func TestStore_SaveRejectsEmptyToken(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(Credential{}); err == nil {
		t.Error("Save() expected error for empty token, got nil")
	}
}

func TestStore_ClearRemovesFile(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(Credential{Token: "tok"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if s.Authenticated() {
		t.Error("expected not authenticated after clear")
	}
	if _, err := os.Stat(s.path); !os.IsNotExist(err) {
		t.Error("expected session file removed")
	}

	// Clearing again is a no-op
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear() error = %v", err)
	}
}

func TestStore_SubscribeSignalsOnClear(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(Credential{Token: "tok"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	ch := s.Subscribe()
	select {
	case <-ch:
		t.Fatal("channel should not be closed before clear")
	default:
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	select {
	case <-ch:
	default:
		t.Error("expected logout channel closed after clear")
	}
}

func TestStore_SubscribeWhileLoggedOut(t *testing.T) {
	s := newTestStore(t)

	// No credential: channel closes immediately
	select {
	case <-s.Subscribe():
	default:
		t.Error("expected immediate signal when already logged out")
	}
}
