package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/theirongolddev/finboard/internal/notify"
	"github.com/theirongolddev/finboard/internal/schedule"
	"github.com/theirongolddev/finboard/internal/session"
)

type fakeNav struct {
	mu      sync.Mutex
	loc     string
	visited []string
}

func (n *fakeNav) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.loc
}

func (n *fakeNav) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.visited = append(n.visited, path)
}

func (n *fakeNav) Visited() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.visited...)
}

type harness struct {
	client *Client
	server *httptest.Server
	notes  *notify.Recorder
	clock  *schedule.Manual
	nav    *fakeNav
	store  *session.Memory
}

func newHarness(t *testing.T, h http.Handler, opts ...Option) *harness {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	hs := &harness{
		server: srv,
		notes:  &notify.Recorder{},
		clock:  schedule.NewManual(time.Unix(1_700_000_000, 0)),
		nav:    &fakeNav{loc: "/dashboard"},
		store:  session.NewMemory(),
	}
	base := []Option{
		WithStore(hs.store),
		WithNotifier(hs.notes),
		WithScheduler(hs.clock),
		WithNavigator(hs.nav),
	}
	hs.client = New(Config{BaseURL: srv.URL + "/api"}, append(base, opts...)...)
	return hs
}

func statusHandler(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func jsonHandler(v any) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	})
}

func makeToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims, err := json.Marshal(map[string]any{"sub": "1", "exp": exp.Unix()})
	if err != nil {
		t.Fatal(err)
	}
	return "eyJhbGciOiJIUzI1NiJ9." + base64.RawURLEncoding.EncodeToString(claims) + ".sig"
}

var testUser = session.User{ID: 1, FirstName: "A", LastName: "B", Email: "a@b.com"}
