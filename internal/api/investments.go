package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

func (c *Client) ListInvestments(ctx context.Context) ([]Investment, error) {
	return call[[]Investment](ctx, c, request{method: http.MethodGet, path: "/investments"})
}

func (c *Client) GetInvestment(ctx context.Context, id int64) (Investment, error) {
	return call[Investment](ctx, c, request{method: http.MethodGet, path: fmt.Sprintf("/investments/%d", id)})
}

func (c *Client) CreateInvestment(ctx context.Context, inv Investment) (Investment, error) {
	return call[Investment](ctx, c, request{method: http.MethodPost, path: "/investments", body: inv})
}

func (c *Client) UpdateInvestment(ctx context.Context, id int64, inv Investment) (Investment, error) {
	return call[Investment](ctx, c, request{method: http.MethodPut, path: fmt.Sprintf("/investments/%d", id), body: inv})
}

func (c *Client) DeleteInvestment(ctx context.Context, id int64) error {
	return c.send(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/investments/%d", id)}, nil)
}

// PortfolioSummary returns invested, current value and returns.
func (c *Client) PortfolioSummary(ctx context.Context) (PortfolioSummary, error) {
	return call[PortfolioSummary](ctx, c, request{method: http.MethodGet, path: "/investments/portfolio/summary"})
}

// PortfolioDistribution returns value share by asset type.
func (c *Client) PortfolioDistribution(ctx context.Context) ([]AssetShare, error) {
	return call[[]AssetShare](ctx, c, request{method: http.MethodGet, path: "/investments/portfolio/distribution"})
}

// PortfolioPerformance returns the value series for period (e.g. "1M", "1Y").
func (c *Client) PortfolioPerformance(ctx context.Context, period string) ([]PerformancePoint, error) {
	var q url.Values
	if period != "" {
		q = url.Values{"period": {period}}
	}
	return call[[]PerformancePoint](ctx, c, request{method: http.MethodGet, path: "/investments/portfolio/performance", query: q})
}

// RefreshPrices asks the backend to re-quote every holding.
func (c *Client) RefreshPrices(ctx context.Context) ([]Investment, error) {
	return call[[]Investment](ctx, c, request{method: http.MethodPost, path: "/investments/refresh-prices"})
}

// UploadInvestmentStatement sends a broker statement for platform.
func (c *Client) UploadInvestmentStatement(ctx context.Context, file Upload, platform string) (ImportResult, error) {
	return call[ImportResult](ctx, c, request{
		method: http.MethodPost,
		path:   "/investments/upload-statement",
		form:   &form{file: file, fields: [][2]string{{"platform", platform}}},
		upload: true,
	})
}
