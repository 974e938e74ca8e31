package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/xenonnoble69/assistdeck-frontend/internal/deck"
)

// Teams fetches the team collection for the current user.
func (c *Client) Teams(ctx context.Context) ([]deck.Team, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/teams", nil)
	if err != nil {
		return nil, err
	}
	return deck.Teams(body), nil
}

// CreateTeam creates a team. The backend responds with the created
// team under a "team" field; that object seeds the optimistic insert
// so the new team is visible before the next reload.
func (c *Client) CreateTeam(ctx context.Context, name string) (*deck.Team, error) {
	payload := map[string]string{"name": name}
	body, err := c.do(ctx, http.MethodPost, "/api/teams", payload)
	if err != nil {
		return nil, err
	}
	team, ok := deck.TeamDetail(body)
	if !ok {
		// Creation succeeded but the response was unusable; callers
		// fall back to a full reload.
		return nil, nil
	}
	return &team, nil
}

// Team fetches one team with its member list.
func (c *Client) Team(ctx context.Context, id string) (*deck.Team, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/teams/"+id, nil)
	if err != nil {
		return nil, err
	}
	team, ok := deck.TeamDetail(body)
	if !ok {
		return nil, fmt.Errorf("unexpected team payload for %s", id)
	}
	return &team, nil
}

// InviteMember invites a user to a team by email.
func (c *Client) InviteMember(ctx context.Context, teamID, email string) error {
	payload := map[string]string{"email": email}
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/api/teams/%s/invite", teamID), payload, nil)
}

// Invitations fetches pending invitations for the current user.
func (c *Client) Invitations(ctx context.Context) ([]deck.Invitation, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/invitations", nil)
	if err != nil {
		return nil, err
	}
	return deck.Invitations(body), nil
}

// AcceptInvitation accepts an invitation by its token.
func (c *Client) AcceptInvitation(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/api/teams/invite/%s/accept", token), struct{}{}, nil)
}

// Dashboard fetches the aggregate dashboard payload.
func (c *Client) Dashboard(ctx context.Context) (*deck.Dashboard, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/dashboard", nil)
	if err != nil {
		return nil, err
	}
	dash, ok := deck.DashboardPayload(body)
	if !ok {
		return nil, fmt.Errorf("unexpected dashboard payload: %s", firstBytes(body, 64))
	}
	return &dash, nil
}

func firstBytes(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	var compact json.RawMessage = b
	return string(compact)
}
