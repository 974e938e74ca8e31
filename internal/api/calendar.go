package api

import (
	"context"
	"net/http"

	"github.com/xenonnoble69/assistdeck-frontend/internal/deck"
)

// EventParams is the create/update payload for a calendar event.
// Times are RFC3339.
type EventParams struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	AllDay      bool   `json:"all_day"`
	Color       string `json:"color"`
}

// Events fetches the calendar collection.
func (c *Client) Events(ctx context.Context) ([]deck.Event, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/calendar", nil)
	if err != nil {
		return nil, err
	}
	return deck.Events(body), nil
}

// CreateEvent creates a calendar event.
func (c *Client) CreateEvent(ctx context.Context, params EventParams) error {
	return c.doJSON(ctx, http.MethodPost, "/api/calendar", params, nil)
}

// UpdateEvent replaces an event's fields.
func (c *Client) UpdateEvent(ctx context.Context, id string, params EventParams) error {
	return c.doJSON(ctx, http.MethodPut, "/api/calendar/"+id, params, nil)
}

// DeleteEvent removes an event.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/calendar/"+id, nil, nil)
}
