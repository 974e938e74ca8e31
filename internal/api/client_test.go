package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// staticTokens is a TokenSource backed by a fixed string
type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func TestClient_SetsAuthAndContentHeaders(t *testing.T) {
	var gotAuth, gotContentType, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticTokens("tok-abc"))
	if _, err := c.Goals(context.Background()); err != nil {
		t.Fatalf("Goals() error = %v", err)
	}

	if gotAuth != "Bearer tok-abc" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-abc")
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
	if len(gotRequestID) != 26 {
		t.Errorf("X-Request-ID = %q, want a 26-char ULID", gotRequestID)
	}
}

func TestClient_NoAuthHeaderWhenLoggedOut(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"token":"t","user":{"id":"u1"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticTokens(""))
	if _, err := c.Login(context.Background(), LoginParams{Email: "a@b.c", Password: "pw"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty for unauthenticated call", gotAuth)
	}
}

func TestClient_StructuredErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"title is required"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticTokens("tok"))
	err := c.CreateGoal(context.Background(), GoalParams{})
	if err == nil {
		t.Fatal("expected error")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Message != "title is required" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "title is required")
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", apiErr.Status)
	}
}

func TestClient_RawBodyFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("database connection lost"))
	}))
	defer srv.Close()

	c := New(srv.URL, staticTokens("tok"))
	_, err := c.Goals(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Message != "database connection lost" {
		t.Errorf("Message = %q, want raw body", apiErr.Message)
	}
}

func TestClient_GenericFallbackForEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, staticTokens("tok"))
	_, err := c.Goals(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if !strings.Contains(apiErr.Message, "502") {
		t.Errorf("Message = %q, want generic status message", apiErr.Message)
	}
}

func TestClient_ExpiredHookFiresOn401(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"token expired"}`))
	}))
	defer srv.Close()

	fired := 0
	c := New(srv.URL, staticTokens("stale-tok"), WithExpiredHook(func() { fired++ }))
	_, err := c.Goals(context.Background())
	if !IsUnauthorized(err) {
		t.Fatalf("IsUnauthorized(%v) = false, want true", err)
	}
	if fired != 1 {
		t.Errorf("expired hook fired %d times, want 1", fired)
	}
}

func TestClient_ExpiredHookSkippedWhenNoToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	fired := 0
	c := New(srv.URL, staticTokens(""), WithExpiredHook(func() { fired++ }))
	_, err := c.Login(context.Background(), LoginParams{Email: "a@b.c", Password: "bad"})
	if err == nil {
		t.Fatal("expected error")
	}
	// A failed login is not an expired session
	if fired != 0 {
		t.Errorf("expired hook fired %d times, want 0", fired)
	}
}

func TestClient_ConnectionErrorDistinguished(t *testing.T) {
	// Point at a server that is already closed
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL, staticTokens("tok"))
	_, err := c.Goals(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsConnection(err) {
		t.Errorf("IsConnection(%v) = false, want true", err)
	}
}

func TestNormalizeDeadline(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"date only", "2025-12-01", "2025-12-01T23:59:00Z"},
		{"full timestamp passthrough", "2025-12-01T10:00:00Z", "2025-12-01T10:00:00Z"},
		{"empty", "", ""},
		{"garbage passthrough", "someday", "someday"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDeadline(tt.in); got != tt.want {
				t.Errorf("NormalizeDeadline(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClient_CreateTeamReturnsCreatedTeam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/teams" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"message":"created","team":{"id":"t1","name":"Alpha"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticTokens("tok"))
	team, err := c.CreateTeam(context.Background(), "Alpha")
	if err != nil {
		t.Fatalf("CreateTeam() error = %v", err)
	}
	if team == nil {
		t.Fatal("expected a team from the creation response")
	}
	if team.ID != "t1" || team.Name != "Alpha" {
		t.Errorf("team = %+v, want id t1 name Alpha", team)
	}
	// Defaults applied when the response omits them
	if team.Role != "owner" {
		t.Errorf("Role = %q, want owner default", team.Role)
	}
	if team.MemberCount != 1 {
		t.Errorf("MemberCount = %d, want 1 default", team.MemberCount)
	}
}

func TestClient_CreateTeamUnusableResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"created"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticTokens("tok"))
	team, err := c.CreateTeam(context.Background(), "Alpha")
	if err != nil {
		t.Fatalf("CreateTeam() error = %v", err)
	}
	if team != nil {
		t.Errorf("team = %+v, want nil for unusable response", team)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"connection",
			&ConnectionError{Op: "GET /api/goals"},
			"Cannot reach the server. Check your connection and try again.",
		},
		{
			"unauthorized",
			&APIError{Status: 401, Message: "token expired"},
			"Your session has expired. Please log in again.",
		},
		{
			"server fault",
			&APIError{Status: 500, Message: "boom"},
			"The server hit a problem. Please try again shortly.",
		},
		{
			"validation passthrough",
			&APIError{Status: 400, Message: "title is required"},
			"title is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
