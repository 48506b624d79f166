package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/finboard/internal/logger"
	"github.com/theirongolddev/finboard/internal/notify"
	"github.com/theirongolddev/finboard/internal/session"
)

// request describes one backend call.
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	form   *form

	upload bool // use the upload timeout
	// authCall marks sign-in and sign-up; a 401 there is a credential
	// failure and does not invalidate the stored session.
	authCall bool
}

// form is a multipart payload with one file part.
type form struct {
	fields [][2]string
	file   Upload
}

// Upload is a file to send as the multipart "file" field.
type Upload struct {
	Filename string
	Content  io.Reader
}

// requestContext lives for one call and only feeds the latency log.
type requestContext struct {
	id     string
	method string
	url    string
	start  time.Time
}

type noticePolicy int

const (
	noticesDefault noticePolicy = iota
	noticesWithNotFound
	noticesOff
)

type noticeKey struct{}

// WithNotFoundNotice makes a 404 on calls made with ctx produce a notice.
func WithNotFoundNotice(ctx context.Context) context.Context {
	return context.WithValue(ctx, noticeKey{}, noticesWithNotFound)
}

// WithoutNotices suppresses notices for calls made with ctx. Side effects
// such as clearing the session on 401 still happen.
func WithoutNotices(ctx context.Context) context.Context {
	return context.WithValue(ctx, noticeKey{}, noticesOff)
}

func policyFrom(ctx context.Context) noticePolicy {
	p, _ := ctx.Value(noticeKey{}).(noticePolicy)
	return p
}

// call sends r and decodes a successful response into a new T.
func call[T any](ctx context.Context, c *Client, r request) (T, error) {
	var out T
	err := c.send(ctx, r, &out)
	return out, err
}

// send runs r through the pipeline. out may be nil.
func (c *Client) send(ctx context.Context, r request, out any) error {
	timeout := c.cfg.Timeout
	if r.upload {
		timeout = c.cfg.UploadTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, contentType, err := r.encode()
	if err != nil {
		return fmt.Errorf("api: encoding %s %s: %w", r.method, r.path, err)
	}

	req, err := http.NewRequestWithContext(callCtx, r.method, c.url(r.path, r.query), body)
	if err != nil {
		return fmt.Errorf("api: creating request: %w", err)
	}
	rc := c.prepare(req, contentType)

	//nolint:gosec // URL is built from the configured base address
	resp, err := c.http.Do(req)
	if err != nil {
		return c.reject(ctx, rc, r, classifyTransport(err, ctx.Err()))
	}
	defer func() { _ = resp.Body.Close() }()

	data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.reject(ctx, rc, r, classifyStatus(resp.StatusCode, data))
	}
	if readErr != nil {
		return c.reject(ctx, rc, r, classifyTransport(readErr, ctx.Err()))
	}
	if len(data) > maxBodySize {
		return fmt.Errorf("api: %s %s: %w", r.method, r.path, ErrResponseTooLarge)
	}

	c.log.Debug("api response",
		logger.F("request_id", rc.id),
		logger.F("method", rc.method),
		logger.F("url", rc.url),
		logger.F("status", resp.StatusCode),
		logger.F("duration_ms", time.Since(rc.start).Milliseconds()),
	)

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("api: decoding %s %s: %w", r.method, r.path, err)
	}
	return nil
}

func (c *Client) url(path string, q url.Values) string {
	u := c.cfg.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// prepare is the outgoing interceptor. It applies the default headers and
// the stored token, and records the request context.
func (c *Client) prepare(req *http.Request, contentType string) requestContext {
	for k, v := range c.defaultHeaders() {
		req.Header[k] = v
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	} else {
		req.Header.Del("Content-Type")
	}

	if token := session.Token(c.store); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else {
		req.Header.Del("Authorization")
	}

	rc := requestContext{
		id:     uuid.NewString(),
		method: req.Method,
		url:    req.URL.String(),
		start:  time.Now(),
	}
	req.Header.Set("X-Request-ID", rc.id)
	return rc
}

// reject is the incoming interceptor's failure path: side effects, then the
// notice, then the classified error goes back to the caller.
func (c *Client) reject(ctx context.Context, rc requestContext, r request, e *Error) error {
	fields := []logger.Field{
		logger.F("request_id", rc.id),
		logger.F("method", rc.method),
		logger.F("url", rc.url),
		logger.F("kind", e.Kind.String()),
		logger.F("duration_ms", time.Since(rc.start).Milliseconds()),
	}
	if e.Status > 0 {
		fields = append(fields, logger.F("status", e.Status))
	}

	policy := policyFrom(ctx)

	switch e.Kind {
	case KindCancelled:
		c.log.Debug("api request cancelled", fields...)
		return e

	case KindUnauthorized:
		c.log.Warn("api request unauthorized", fields...)
		if r.authCall {
			return e
		}
		if err := c.store.Clear(); err != nil {
			c.log.Error("clearing session", logger.F("error", err.Error()))
		}
		c.setAuthorization("")
		if !isAuthPage(c.nav.Location()) {
			c.notify(policy, notify.Error, e.Message)
			c.scheduleLogin()
		}
		return e

	case KindNotFound:
		c.log.Warn("api resource not found", fields...)
		if policy == noticesWithNotFound || (policy == noticesDefault && c.notFoundNotices) {
			c.notify(noticesDefault, notify.Warning, e.Message)
		}
		return e
	}

	c.log.Warn("api request failed", fields...)
	c.notify(policy, notify.Error, e.Message)
	return e
}

func (c *Client) notify(p noticePolicy, level notify.Level, msg string) {
	if p == noticesOff {
		return
	}
	c.notes.Notify(notify.Notice{Level: level, Message: msg})
}

// encode returns the request body and its content type.
func (r request) encode() (io.Reader, string, error) {
	switch {
	case r.form != nil:
		return r.form.encode()
	case r.body != nil:
		raw, err := json.Marshal(r.body)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(raw), "application/json", nil
	default:
		return nil, "", nil
	}
}

func (f *form) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", f.file.Filename)
	if err != nil {
		return nil, "", err
	}
	if f.file.Content != nil {
		if _, err := io.Copy(part, f.file.Content); err != nil {
			return nil, "", fmt.Errorf("reading %s: %w", f.file.Filename, err)
		}
	}
	for _, kv := range f.fields {
		if kv[1] == "" {
			continue
		}
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
