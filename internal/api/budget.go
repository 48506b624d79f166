package api

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) CreateBudget(ctx context.Context, b Budget) (Budget, error) {
	return call[Budget](ctx, c, request{method: http.MethodPost, path: "/budget", body: b})
}

func (c *Client) GetBudget(ctx context.Context) (Budget, error) {
	return call[Budget](ctx, c, request{method: http.MethodGet, path: "/budget"})
}

func (c *Client) UpdateBudgetPercentages(ctx context.Context, p BudgetPercentages) (Budget, error) {
	return call[Budget](ctx, c, request{method: http.MethodPut, path: "/budget/percentages", body: p})
}

// BudgetAnalysis compares the budget with spend for month (YYYY-MM, or the
// current month when empty).
func (c *Client) BudgetAnalysis(ctx context.Context, month string) (BudgetAnalysis, error) {
	var q url.Values
	if month != "" {
		q = url.Values{"month": {month}}
	}
	return call[BudgetAnalysis](ctx, c, request{method: http.MethodGet, path: "/budget/analysis", query: q})
}
