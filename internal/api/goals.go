package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/xenonnoble69/assistdeck-frontend/internal/deck"
)

// GoalParams is the create/update payload for a goal. Deadline accepts
// either a full RFC3339 timestamp or a date-only value; date-only input
// is expanded to end of day UTC before sending.
type GoalParams struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Deadline    string `json:"deadline"`
}

// NormalizeDeadline expands a date-only deadline ("2025-12-01") into
// the full RFC3339 form the backend expects ("2025-12-01T23:59:00Z").
// Already-complete timestamps pass through untouched.
func NormalizeDeadline(deadline string) string {
	if deadline == "" {
		return ""
	}
	if _, err := time.Parse(time.RFC3339, deadline); err == nil {
		return deadline
	}
	if _, err := time.Parse("2006-01-02", deadline); err == nil {
		return deadline + "T23:59:00Z"
	}
	return deadline
}

// Goals fetches the goal collection.
func (c *Client) Goals(ctx context.Context) ([]deck.Goal, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/goals", nil)
	if err != nil {
		return nil, err
	}
	return deck.Goals(body), nil
}

// CreateGoal creates a goal. Progress starts at zero server-side.
func (c *Client) CreateGoal(ctx context.Context, params GoalParams) error {
	params.Deadline = NormalizeDeadline(params.Deadline)
	return c.doJSON(ctx, http.MethodPost, "/api/goals", params, nil)
}

// UpdateGoal replaces a goal's editable fields.
func (c *Client) UpdateGoal(ctx context.Context, id string, params GoalParams) error {
	params.Deadline = NormalizeDeadline(params.Deadline)
	return c.doJSON(ctx, http.MethodPut, "/api/goals/"+id, params, nil)
}

// DeleteGoal removes a goal.
func (c *Client) DeleteGoal(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/goals/"+id, nil, nil)
}

// UpdateGoalProgress patches the numeric progress. The value is
// clamped to [0,100] before sending.
func (c *Client) UpdateGoalProgress(ctx context.Context, id string, progress int) error {
	clamped := deck.BumpProgress(progress, 0)
	body := map[string]int{"progress": clamped}
	return c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/api/goals/%s/progress", id), body, nil)
}
