package api

import (
	"context"
	"fmt"
	"net/http"
)

func (c *Client) ListGoals(ctx context.Context) ([]Goal, error) {
	return call[[]Goal](ctx, c, request{method: http.MethodGet, path: "/goals"})
}

func (c *Client) GetGoal(ctx context.Context, id int64) (Goal, error) {
	return call[Goal](ctx, c, request{method: http.MethodGet, path: fmt.Sprintf("/goals/%d", id)})
}

func (c *Client) CreateGoal(ctx context.Context, g Goal) (Goal, error) {
	return call[Goal](ctx, c, request{method: http.MethodPost, path: "/goals", body: g})
}

func (c *Client) UpdateGoal(ctx context.Context, id int64, g Goal) (Goal, error) {
	return call[Goal](ctx, c, request{method: http.MethodPut, path: fmt.Sprintf("/goals/%d", id), body: g})
}

func (c *Client) DeleteGoal(ctx context.Context, id int64) error {
	return c.send(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/goals/%d", id)}, nil)
}
