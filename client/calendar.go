package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

type Resource struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type EventProps struct {
	Icon    string `json:"icon,omitempty"`
	EditURL string `json:"edit_url,omitempty"`
	CanEdit bool   `json:"can_edit"`
}

// Event is shaped for the calendar widget: ISO start/end and the id of the
// resource row it is drawn on.
type Event struct {
	ID            string     `json:"id"`
	ResourceID    string     `json:"resourceId"`
	Title         string     `json:"title"`
	Start         time.Time  `json:"start"`
	End           time.Time  `json:"end"`
	ExtendedProps EventProps `json:"extendedProps"`
}

type CalendarFeed struct {
	Resources []Resource
	Events    []Event
}

func rangeQuery(path string, start, end time.Time) string {
	q := url.Values{}
	q.Set("start", start.Format(time.RFC3339))
	q.Set("end", end.Format(time.RFC3339))
	return path + "?" + q.Encode()
}

// Calendar loads resources and the events falling between start and end.
func (c *Client) Calendar(ctx context.Context, resourcesPath, eventsPath string, start, end time.Time) (CalendarFeed, error) {
	var feed CalendarFeed
	err := c.doJSON(ctx, http.MethodGet, resourcesPath, nil, &feed.Resources)
	if err != nil {
		return CalendarFeed{}, err
	}
	err = c.doJSON(ctx, http.MethodGet, rangeQuery(eventsPath, start, end), nil, &feed.Events)
	if err != nil {
		return CalendarFeed{}, err
	}
	return feed, nil
}

// Editable lists the events the current user may open for editing.
func (feed CalendarFeed) Editable() []Event {
	out := []Event{}
	for _, ev := range feed.Events {
		if ev.ExtendedProps.CanEdit && ev.ExtendedProps.EditURL != "" {
			out = append(out, ev)
		}
	}
	return out
}
