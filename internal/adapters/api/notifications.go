package api

import (
	"context"
	"net/url"
	"strconv"

	"flightdesk/internal/domain/notification"
)

// Notifications lists the caller's notifications. read filters by state
// when non-nil.
func (c *Client) Notifications(ctx context.Context, read *bool) ([]notification.Notification, error) {
	var q url.Values
	if read != nil {
		q = url.Values{}
		q.Set("leida", strconv.FormatBool(*read))
	}
	var list []notification.Notification
	if err := c.get(ctx, "/notificaciones", q, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// UnreadCount returns the caller's unread notification count.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := c.get(ctx, "/notificaciones/no-leidas/count", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// MarkRead marks one notification as read.
func (c *Client) MarkRead(ctx context.Context, id int) error {
	return c.post(ctx, "/notificaciones/"+strconv.Itoa(id)+"/marcar-leida", nil, nil)
}

// MarkAllRead marks every notification of the caller as read.
func (c *Client) MarkAllRead(ctx context.Context) error {
	return c.post(ctx, "/notificaciones/marcar-todas-leidas", nil, nil)
}

// DeleteNotification removes one notification.
func (c *Client) DeleteNotification(ctx context.Context, id int) error {
	return c.delete(ctx, "/notificaciones/"+strconv.Itoa(id))
}
