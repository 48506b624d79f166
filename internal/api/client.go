// Package api is the single point of contact with the finance backend.
//
// Every call goes through the same pipeline: default headers and the stored
// bearer token are applied on the way out, and failures are classified,
// acted on (session invalidation, login redirect) and announced through the
// notifier on the way back. The classified *Error is always returned to the
// caller as well.
package api

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/theirongolddev/finboard/internal/logger"
	"github.com/theirongolddev/finboard/internal/notify"
	"github.com/theirongolddev/finboard/internal/schedule"
	"github.com/theirongolddev/finboard/internal/session"
)

const (
	DefaultTimeout       = 15 * time.Second
	DefaultUploadTimeout = 30 * time.Second
	DefaultRedirectDelay = time.Second
	maxBodySize          = 10 << 20 // 10 MB

	LoginPath    = "/login"
	RegisterPath = "/register"
)

// Config holds the connection settings.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	UploadTimeout time.Duration
}

// Navigator exposes the current location and moves the user elsewhere.
type Navigator interface {
	Location() string
	Navigate(path string)
}

type staticNavigator struct{}

func (staticNavigator) Location() string { return "/" }
func (staticNavigator) Navigate(string) {}

// Client is the backend API gateway. It is safe for concurrent use.
type Client struct {
	cfg   Config
	http  *http.Client
	store session.Store
	notes notify.Notifier
	nav   Navigator
	sched schedule.Scheduler
	log   *logger.Logger

	notFoundNotices bool
	redirectDelay   time.Duration

	mu       sync.RWMutex
	headers  http.Header
	redirect schedule.Task
}

// Option configures a Client.
type Option func(*Client)

func WithStore(s session.Store) Option { return func(c *Client) { c.store = s } }
func WithNotifier(n notify.Notifier) Option { return func(c *Client) { c.notes = n } }
func WithNavigator(n Navigator) Option { return func(c *Client) { c.nav = n } }
func WithScheduler(s schedule.Scheduler) Option { return func(c *Client) { c.sched = s } }
func WithLogger(l *logger.Logger) Option { return func(c *Client) { c.log = l } }
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }
func WithRedirectDelay(d time.Duration) Option { return func(c *Client) { c.redirectDelay = d } }

// WithNotFoundNotices makes every 404 produce a notice. By default 404s are
// only logged, since callers often probe for optional resources.
func WithNotFoundNotices(on bool) Option { return func(c *Client) { c.notFoundNotices = on } }

// New creates a client for cfg.
func New(cfg Config, opts ...Option) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UploadTimeout <= 0 {
		cfg.UploadTimeout = DefaultUploadTimeout
	}

	c := &Client{
		cfg:           cfg,
		http:          &http.Client{},
		store:         session.NewMemory(),
		notes:         notify.Discard,
		nav:           staticNavigator{},
		sched:         &schedule.Timers{},
		log:           logger.Nop(),
		redirectDelay: DefaultRedirectDelay,
		headers: http.Header{
			"Content-Type": {"application/json"},
			"Accept":       {"application/json"},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base address.
func (c *Client) BaseURL() string { return c.cfg.BaseURL }

// DefaultAuthorization returns the Authorization default header, or "".
func (c *Client) DefaultAuthorization() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.headers.Get("Authorization")
}

// setAuthorization is the only writer of the Authorization default.
// An empty token removes it.
func (c *Client) setAuthorization(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token == "" {
		c.headers.Del("Authorization")
		return
	}
	c.headers.Set("Authorization", "Bearer "+token)
}

func (c *Client) defaultHeaders() http.Header {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.headers.Clone()
}

// RestoreSession loads the stored session at startup. Expired, malformed or
// partial records are cleared and reported absent.
func (c *Client) RestoreSession(now time.Time) (session.Session, bool) {
	s, ok, err := session.Restore(c.store, now)
	if err != nil {
		c.log.Warn("restoring session", logger.F("error", err.Error()))
	}
	if !ok {
		c.setAuthorization("")
		return session.Session{}, false
	}
	c.setAuthorization(s.Token)
	return s, true
}

// CurrentSession returns the stored session, if any.
func (c *Client) CurrentSession() (session.Session, bool) {
	s, ok, err := c.store.Load()
	if err != nil {
		c.log.Warn("loading session", logger.F("error", err.Error()))
		return session.Session{}, false
	}
	return s, ok
}

// scheduleLogin replaces any pending login redirect with a new one.
func (c *Client) scheduleLogin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.redirect != nil {
		c.redirect.Stop()
	}
	c.redirect = c.sched.AfterFunc(c.redirectDelay, func() {
		c.nav.Navigate(LoginPath)
	})
}

func (c *Client) cancelRedirect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.redirect != nil {
		c.redirect.Stop()
		c.redirect = nil
	}
}

func isAuthPage(location string) bool {
	for _, p := range []string{LoginPath, RegisterPath} {
		if location == p || strings.HasPrefix(location, p+"/") || strings.HasPrefix(location, p+"?") {
			return true
		}
	}
	return false
}
