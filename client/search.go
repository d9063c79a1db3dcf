package client

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// Debouncer runs only the last of a burst of calls, once delay has passed
// without another one.
type Debouncer struct {
	delay time.Duration
	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// FieldSearch issues a catalog search after typing pauses. A request already
// in flight is not cancelled by later keystrokes.
type FieldSearch struct {
	client    *Client
	path      string
	debouncer *Debouncer
	onResult  func(query string, body map[string]any, err error)
}

func NewFieldSearch(c *Client, path string, delay time.Duration, onResult func(string, map[string]any, error)) *FieldSearch {
	return &FieldSearch{client: c, path: path, debouncer: NewDebouncer(delay), onResult: onResult}
}

func (fs *FieldSearch) Type(ctx context.Context, query string) {
	fs.debouncer.Trigger(func() {
		q := url.Values{}
		q.Set("q", query)
		var body map[string]any
		err := fs.client.doJSON(ctx, http.MethodGet, fs.path+"?"+q.Encode(), nil, &body)
		fs.onResult(query, body, err)
	})
}

func (fs *FieldSearch) Stop() {
	fs.debouncer.Stop()
}
