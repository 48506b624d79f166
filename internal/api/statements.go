package api

import (
	"context"
	"net/http"
)

// UploadStatement sends a bank statement for parsing. statementType names
// the source format (e.g. "CSV", "PDF") and may be empty.
func (c *Client) UploadStatement(ctx context.Context, file Upload, statementType string) (ImportResult, error) {
	return call[ImportResult](ctx, c, request{
		method: http.MethodPost,
		path:   "/statements/upload",
		form:   &form{file: file, fields: [][2]string{{"statementType", statementType}}},
		upload: true,
	})
}

// ImportStatement commits parsed statement rows as transactions.
func (c *Client) ImportStatement(ctx context.Context, req ImportRequest) (ImportResult, error) {
	return call[ImportResult](ctx, c, request{method: http.MethodPost, path: "/statements/import", body: req})
}
