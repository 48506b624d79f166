package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/go-querystring/query"
)

func encodeQuery(v any) (url.Values, error) {
	q, err := query.Values(v)
	if err != nil {
		return nil, fmt.Errorf("api: encoding query: %w", err)
	}
	return q, nil
}

// ListTransactions returns transactions matching f.
func (c *Client) ListTransactions(ctx context.Context, f TransactionFilter) ([]Transaction, error) {
	q, err := encodeQuery(f)
	if err != nil {
		return nil, err
	}
	return call[[]Transaction](ctx, c, request{method: http.MethodGet, path: "/transactions", query: q})
}

// GetTransaction returns one transaction.
func (c *Client) GetTransaction(ctx context.Context, id int64) (Transaction, error) {
	return call[Transaction](ctx, c, request{method: http.MethodGet, path: fmt.Sprintf("/transactions/%d", id)})
}

// CreateTransaction records a new transaction.
func (c *Client) CreateTransaction(ctx context.Context, t Transaction) (Transaction, error) {
	return call[Transaction](ctx, c, request{method: http.MethodPost, path: "/transactions", body: t})
}

// UpdateTransaction replaces transaction id.
func (c *Client) UpdateTransaction(ctx context.Context, id int64, t Transaction) (Transaction, error) {
	return call[Transaction](ctx, c, request{method: http.MethodPut, path: fmt.Sprintf("/transactions/%d", id), body: t})
}

// DeleteTransaction removes transaction id.
func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	return c.send(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/transactions/%d", id)}, nil)
}

// TransactionSummary returns income, expense and savings totals for r.
func (c *Client) TransactionSummary(ctx context.Context, r DateRange) (TransactionSummary, error) {
	q, err := encodeQuery(r)
	if err != nil {
		return TransactionSummary{}, err
	}
	return call[TransactionSummary](ctx, c, request{method: http.MethodGet, path: "/transactions/summary", query: q})
}

// TransactionAnalysis returns the server's category breakdown for r.
func (c *Client) TransactionAnalysis(ctx context.Context, r DateRange) (TransactionAnalysis, error) {
	q, err := encodeQuery(r)
	if err != nil {
		return TransactionAnalysis{}, err
	}
	return call[TransactionAnalysis](ctx, c, request{method: http.MethodGet, path: "/transactions/analysis", query: q})
}

// MonthlyTransactions returns per-month totals for year.
func (c *Client) MonthlyTransactions(ctx context.Context, year int) ([]MonthlyTotal, error) {
	q := url.Values{"year": {strconv.Itoa(year)}}
	return call[[]MonthlyTotal](ctx, c, request{method: http.MethodGet, path: "/transactions/monthly", query: q})
}
