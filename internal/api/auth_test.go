package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/finboard/internal/notify"
	"github.com/theirongolddev/finboard/internal/session"
)

func TestLoginPersistsSession(t *testing.T) {
	var gotCreds Credentials
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/signin", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&gotCreds)
		_, _ = w.Write([]byte(`{"accessToken":"t1","id":1,"firstName":"A","lastName":"B","email":"a@b.com"}`))
	}))
	h.nav.loc = LoginPath

	res := h.client.Login(context.Background(), Credentials{Email: "a@b.com", Password: "x"})
	require.True(t, res.Success, "message: %s", res.Message)
	assert.Equal(t, Credentials{Email: "a@b.com", Password: "x"}, gotCreds)
	assert.Equal(t, &testUser, res.User)

	s, present, err := h.store.Load()
	require.NoError(t, err)
	require.True(t, present)
	assert.Equal(t, "t1", s.Token)
	assert.Equal(t, testUser, s.User)
	assert.Equal(t, "Bearer t1", h.client.DefaultAuthorization())

	notes := h.notes.Notices()
	require.Len(t, notes, 1)
	assert.Equal(t, notify.Success, notes[0].Level)
	assert.Contains(t, notes[0].Message, "A")
}

func TestLoginFailureKeepsExistingSession(t *testing.T) {
	h := newHarness(t, statusHandler(401, `{"message":"Bad credentials"}`))
	existing := session.Session{Token: "old", User: testUser}
	require.NoError(t, h.store.Save(existing))
	h.client.setAuthorization("old")

	res := h.client.Login(context.Background(), Credentials{Email: "a@b.com", Password: "wrong"})
	assert.False(t, res.Success)
	assert.Equal(t, "Bad credentials", res.Message)
	assert.True(t, IsKind(res.Err, KindUnauthorized))

	s, present, _ := h.store.Load()
	assert.True(t, present)
	assert.Equal(t, existing, s)
	assert.Equal(t, "Bearer old", h.client.DefaultAuthorization())
	assert.Zero(t, h.clock.Pending())
	assert.Zero(t, h.notes.Len())
}

func TestLoginFailureFallbackMessage(t *testing.T) {
	h := newHarness(t, statusHandler(401, ``))
	res := h.client.Login(context.Background(), Credentials{Email: "a@b.com"})
	assert.False(t, res.Success)
	assert.Equal(t, msgLoginFailed, res.Message)
}

func TestLoginWithoutTokenFails(t *testing.T) {
	h := newHarness(t, jsonHandler(map[string]any{"id": 1, "firstName": "A"}))
	res := h.client.Login(context.Background(), Credentials{Email: "a@b.com", Password: "x"})
	assert.False(t, res.Success)
	assert.Error(t, res.Err)

	_, present, _ := h.store.Load()
	assert.False(t, present)
	assert.Empty(t, h.client.DefaultAuthorization())
}

func TestLoginServerErrorStillNotifies(t *testing.T) {
	h := newHarness(t, statusHandler(503, ``))
	res := h.client.Login(context.Background(), Credentials{Email: "a@b.com", Password: "x"})
	assert.False(t, res.Success)
	assert.Equal(t, msgLoginFailed, res.Message)
	require.Equal(t, 1, h.notes.Len())
	assert.Equal(t, msgUnavailable, h.notes.Notices()[0].Message)
}

func TestRegister(t *testing.T) {
	var body map[string]string
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/signup", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"User registered successfully!"}`))
	}))
	h.nav.loc = RegisterPath

	res := h.client.Register(context.Background(), RegisterRequest{
		FirstName: "A", LastName: "B", Email: "a@b.com", Password: "x",
	})
	require.True(t, res.Success)
	assert.Equal(t, "A", body["firstName"])
	assert.Equal(t, "a@b.com", body["email"])

	_, present, _ := h.store.Load()
	assert.False(t, present, "register must not sign in")
	require.Equal(t, 1, h.notes.Len())
	assert.Equal(t, msgRegistered, h.notes.Notices()[0].Message)
}

func TestRegisterFailure(t *testing.T) {
	h := newHarness(t, statusHandler(400, `{"message":"Error: Email is already in use!"}`))
	h.nav.loc = RegisterPath

	res := h.client.Register(context.Background(), RegisterRequest{Email: "a@b.com"})
	assert.False(t, res.Success)
	assert.Equal(t, "Error: Email is already in use!", res.Message)
}

func TestLogout(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("logout must not call the server, got %s %s", r.Method, r.URL.Path)
	}))
	require.NoError(t, h.store.Save(session.Session{Token: "t1", User: testUser}))
	h.client.setAuthorization("t1")

	require.NoError(t, h.client.Logout())

	_, present, _ := h.store.Load()
	assert.False(t, present)
	assert.Empty(t, h.client.DefaultAuthorization())
	require.Equal(t, 1, h.notes.Len())
	assert.True(t, strings.Contains(h.notes.Notices()[0].Message, "logged out"))
}

func TestLoginCancelsPendingRedirect(t *testing.T) {
	calls := 0
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"accessToken":"t2","id":1,"firstName":"A"}`))
	}))

	_, _ = h.client.ListGoals(context.Background())
	require.Equal(t, 1, h.clock.Pending())

	res := h.client.Login(context.Background(), Credentials{Email: "a@b.com", Password: "x"})
	require.True(t, res.Success)
	assert.Zero(t, h.clock.Pending())
}
