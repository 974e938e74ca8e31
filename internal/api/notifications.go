package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/xenonnoble69/assistdeck-frontend/internal/deck"
)

// Notifications fetches the notification list for the current user.
func (c *Client) Notifications(ctx context.Context) ([]deck.Notification, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/notifications", nil)
	if err != nil {
		return nil, err
	}
	return deck.Notifications(body), nil
}

// MarkNotificationRead flags a notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/api/notifications/%s/read", id), struct{}{}, nil)
}

// CreatePayment starts a PayPal payment for the given plan and returns
// the approval URL.
func (c *Client) CreatePayment(ctx context.Context, plan string) (string, error) {
	var result struct {
		ApprovalURL string `json:"approval_url"`
	}
	payload := map[string]string{"plan": plan}
	if err := c.doJSON(ctx, http.MethodPost, "/api/paypal/create", payload, &result); err != nil {
		return "", err
	}
	return result.ApprovalURL, nil
}
