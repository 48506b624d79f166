package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListUdhaari returns ledger entries, optionally filtered by status.
func (c *Client) ListUdhaari(ctx context.Context, status string) ([]UdhaariEntry, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": {status}}
	}
	return call[[]UdhaariEntry](ctx, c, request{method: http.MethodGet, path: "/udhaari", query: q})
}

func (c *Client) CreateUdhaari(ctx context.Context, e UdhaariEntry) (UdhaariEntry, error) {
	return call[UdhaariEntry](ctx, c, request{method: http.MethodPost, path: "/udhaari", body: e})
}

func (c *Client) UpdateUdhaari(ctx context.Context, id int64, e UdhaariEntry) (UdhaariEntry, error) {
	return call[UdhaariEntry](ctx, c, request{method: http.MethodPut, path: fmt.Sprintf("/udhaari/%d", id), body: e})
}

func (c *Client) DeleteUdhaari(ctx context.Context, id int64) error {
	return c.send(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/udhaari/%d", id)}, nil)
}

// SettleUdhaari marks entry id as settled.
func (c *Client) SettleUdhaari(ctx context.Context, id int64) (UdhaariEntry, error) {
	return call[UdhaariEntry](ctx, c, request{method: http.MethodPut, path: fmt.Sprintf("/udhaari/%d/settle", id)})
}

func (c *Client) UdhaariSummary(ctx context.Context) (UdhaariSummary, error) {
	return call[UdhaariSummary](ctx, c, request{method: http.MethodGet, path: "/udhaari/summary"})
}
