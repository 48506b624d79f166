package api

import (
	"context"
	"net/http"
)

func (c *Client) Advice(ctx context.Context) (Advice, error) {
	return call[Advice](ctx, c, request{method: http.MethodGet, path: "/advisor/advice"})
}

func (c *Client) Recommendations(ctx context.Context) ([]Recommendation, error) {
	return call[[]Recommendation](ctx, c, request{method: http.MethodGet, path: "/advisor/recommendations"})
}
