package client

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// ErrSessionExpired stops the poller: the server answered 403, so the page
// has to be reloaded to log in again.
var ErrSessionExpired = errors.New("session expired")

type Notification struct {
	ID        int       `json:"id"`
	Message   string    `json:"message"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationBatch struct {
	UnreadCount   int            `json:"unread_count"`
	Notifications []Notification `json:"notifications"`
}

// NotificationPoller fetches notifications on a fixed interval. Failures are
// logged and the next tick tries again; there is no retry or backoff.
type NotificationPoller struct {
	client   *Client
	path     string
	interval time.Duration
	onUpdate func(NotificationBatch)
}

func NewNotificationPoller(c *Client, path string, interval time.Duration, onUpdate func(NotificationBatch)) *NotificationPoller {
	return &NotificationPoller{client: c, path: path, interval: interval, onUpdate: onUpdate}
}

func (np *NotificationPoller) poll(ctx context.Context) error {
	var batch NotificationBatch
	err := np.client.doJSON(ctx, http.MethodGet, np.path, nil, &batch)
	if IsStatus(err, http.StatusForbidden) {
		return ErrSessionExpired
	}
	if err != nil {
		if ctx.Err() == nil {
			np.client.logger.Errorf("notification poll failed: %s", err.Error())
		}
		return nil
	}
	if np.onUpdate != nil {
		np.onUpdate(batch)
	}
	return nil
}

// Run polls immediately and then every interval until ctx is done, which
// returns nil, or the session expires, which returns ErrSessionExpired.
func (np *NotificationPoller) Run(ctx context.Context) error {
	if err := np.poll(ctx); err != nil {
		return err
	}
	ticker := time.NewTicker(np.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := np.poll(ctx); err != nil {
				np.client.logger.Warnf("notification polling stopped: %s", err.Error())
				return err
			}
		}
	}
}
