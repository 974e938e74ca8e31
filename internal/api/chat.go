package api

import (
	"context"
	"net/http"

	"github.com/xenonnoble69/assistdeck-frontend/internal/deck"
)

// MessageParams is the payload for sending a team chat message.
type MessageParams struct {
	Message  string `json:"message"`
	SenderID string `json:"sender_id"`
	TeamID   string `json:"team_id"`
}

// SendMessage posts a chat message to a team.
func (c *Client) SendMessage(ctx context.Context, params MessageParams) error {
	return c.doJSON(ctx, http.MethodPost, "/api/chat", params, nil)
}

// Messages fetches the chat history for a team.
func (c *Client) Messages(ctx context.Context, teamID string) ([]deck.ChatMessage, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/chat/"+teamID, nil)
	if err != nil {
		return nil, err
	}
	return deck.Messages(body), nil
}
