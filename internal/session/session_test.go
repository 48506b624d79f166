package session

import (
	"encoding/base64"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/finboard/internal/store"
)

func makeToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	raw, err := json.Marshal(claims)
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(raw) + ".sig"
}

func openDurable(t *testing.T) (*Durable, *store.KV) {
	t.Helper()
	kv, err := store.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return NewDurable(kv), kv
}

func TestDurableRoundTrip(t *testing.T) {
	d, _ := openDurable(t)
	want := Session{
		Token: "t1",
		User:  User{ID: 1, FirstName: "A", LastName: "B", Email: "a@b.com"},
	}
	require.NoError(t, d.Save(want))

	got, ok, err := d.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.Equal(t, "t1", Token(d))
}

func TestDurableStoresUserAsJSON(t *testing.T) {
	d, kv := openDurable(t)
	require.NoError(t, d.Save(Session{Token: "t1", User: User{ID: 1, FirstName: "A", LastName: "B", Email: "a@b.com"}}))

	raw, err := kv.Get(KeyUser)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"firstName":"A","lastName":"B","email":"a@b.com"}`, raw)
}

func TestDurablePartialRecordIsCleared(t *testing.T) {
	d, kv := openDurable(t)
	require.NoError(t, kv.Put(map[string]string{KeyToken: "orphan"}))

	_, ok, err := d.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := kv.Count()
	require.NoError(t, err)
	assert.Zero(t, n, "leftover token should be removed")
}

func TestDurableCorruptUserIsCleared(t *testing.T) {
	d, kv := openDurable(t)
	require.NoError(t, kv.Put(map[string]string{KeyToken: "t", KeyUser: "{not json"}))

	_, ok, err := d.Load()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, Token(d))
}

func TestClearRemovesBoth(t *testing.T) {
	d, kv := openDurable(t)
	require.NoError(t, d.Save(Session{Token: "t1", User: User{ID: 1}}))
	require.NoError(t, d.Clear())

	n, err := kv.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSaveRejectsEmptyToken(t *testing.T) {
	d, _ := openDurable(t)
	assert.Error(t, d.Save(Session{User: User{ID: 1}}))
	assert.Error(t, NewMemory().Save(Session{}))
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	tok := makeToken(t, map[string]any{"sub": "1", "exp": exp.Unix()})

	got, ok := TokenExpiry(tok)
	require.True(t, ok)
	assert.True(t, got.Equal(exp))
}

func TestTokenExpiryMalformed(t *testing.T) {
	for _, tok := range []string{
		"",
		"opaque",
		"a.b",
		"a.!!!.c",
		"a." + base64.RawURLEncoding.EncodeToString([]byte("not json")) + ".c",
		makeToken(t, map[string]any{"sub": "no-exp"}),
		makeToken(t, map[string]any{"exp": -5}),
	} {
		_, ok := TokenExpiry(tok)
		assert.False(t, ok, "token %q", tok)
		assert.True(t, Expired(tok, time.Now()), "malformed token %q should count as expired", tok)
	}
}

func TestExpiredBoundary(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	atNow := makeToken(t, map[string]any{"exp": now.Unix()})
	later := makeToken(t, map[string]any{"exp": now.Unix() + 1})

	assert.True(t, Expired(atNow, now), "exp == now is expired")
	assert.False(t, Expired(later, now))
}

func TestRestore(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	user := User{ID: 1, FirstName: "A", LastName: "B", Email: "a@b.com"}

	t.Run("valid", func(t *testing.T) {
		m := NewMemory()
		tok := makeToken(t, map[string]any{"exp": now.Add(time.Hour).Unix()})
		require.NoError(t, m.Save(Session{Token: tok, User: user}))

		s, ok, err := Restore(m, now)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, Session{Token: tok, User: user}, s)
	})

	t.Run("expired clears storage", func(t *testing.T) {
		m := NewMemory()
		tok := makeToken(t, map[string]any{"exp": now.Add(-time.Minute).Unix()})
		require.NoError(t, m.Save(Session{Token: tok, User: user}))

		_, ok, err := Restore(m, now)
		require.NoError(t, err)
		assert.False(t, ok)
		_, present, _ := m.Load()
		assert.False(t, present)
	})

	t.Run("absent", func(t *testing.T) {
		_, ok, err := Restore(NewMemory(), now)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
