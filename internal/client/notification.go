package client

import (
	"context"
	"net/http"
	"time"
)

// NotificationClient talks to the notification collaborator. Delivery is
// best effort; the response body is ignored beyond the status code.
type NotificationClient struct {
	baseURL string
	http    *http.Client
}

// NewNotificationClient creates a new NotificationClient.
func NewNotificationClient(baseURL string, timeout time.Duration) *NotificationClient {
	return &NotificationClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type notificationPayload struct {
	UserID  int64  `json:"userId"`
	Message string `json:"message"`
}

// Send pushes one (user, message) pair to the notification service.
func (c *NotificationClient) Send(ctx context.Context, userID int64, message string) error {
	u := c.baseURL + "/notifications"
	return doJSON(ctx, c.http, http.MethodPost, u, notificationPayload{UserID: userID, Message: message}, nil)
}
