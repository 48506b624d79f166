package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

func (c *Client) ListSubscriptions(ctx context.Context) ([]Subscription, error) {
	return call[[]Subscription](ctx, c, request{method: http.MethodGet, path: "/subscriptions"})
}

func (c *Client) CreateSubscription(ctx context.Context, s Subscription) (Subscription, error) {
	return call[Subscription](ctx, c, request{method: http.MethodPost, path: "/subscriptions", body: s})
}

func (c *Client) UpdateSubscription(ctx context.Context, id int64, s Subscription) (Subscription, error) {
	return call[Subscription](ctx, c, request{method: http.MethodPut, path: fmt.Sprintf("/subscriptions/%d", id), body: s})
}

func (c *Client) DeleteSubscription(ctx context.Context, id int64) error {
	return c.send(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/subscriptions/%d", id)}, nil)
}

// UpcomingSubscriptions returns subscriptions billing within the next days.
func (c *Client) UpcomingSubscriptions(ctx context.Context, days int) ([]Subscription, error) {
	q := url.Values{"days": {strconv.Itoa(days)}}
	return call[[]Subscription](ctx, c, request{method: http.MethodGet, path: "/subscriptions/upcoming", query: q})
}

// MarkSubscriptionPaid records a payment and advances the billing date.
func (c *Client) MarkSubscriptionPaid(ctx context.Context, id int64) (Subscription, error) {
	return call[Subscription](ctx, c, request{method: http.MethodPost, path: fmt.Sprintf("/subscriptions/%d/mark-paid", id)})
}
