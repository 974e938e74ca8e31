// Package views contains the individual screens of the terminal UI.
// Each view owns its remote data lifecycle: it loads through the api
// client inside tea commands, keeps the last good result while a
// refresh is in flight, and re-fetches after every mutation so the
// backend stays the source of truth.
package views

import (
	"github.com/xenonnoble69/assistdeck-frontend/internal/api"
	"github.com/xenonnoble69/assistdeck-frontend/internal/cache"
	"github.com/xenonnoble69/assistdeck-frontend/internal/deck"
	"github.com/xenonnoble69/assistdeck-frontend/internal/session"
)

// Deps bundles the shared services every view draws on.
type Deps struct {
	Client  *api.Client
	Session *session.Store
	Cache   *cache.Cache
}

// LoggedInMsg is sent when the login view completes authentication.
// (Defined here to avoid a circular import with the ui package.)
type LoggedInMsg struct {
	User deck.User
}

// errorText renders an error for the status line, preferring the
// user-facing wording over raw error chains.
func errorText(err error) string {
	if err == nil {
		return ""
	}
	return api.UserMessage(err)
}
