// Package session holds the signed-in user's credentials and persists them.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Storage keys, matching the backend client's persisted layout.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// User is the profile subset kept alongside the token.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Session is a bearer token and the user it belongs to.
type Session struct {
	Token string
	User  User
}

// Valid reports whether s carries a token.
func (s Session) Valid() bool {
	return s.Token != ""
}

// Store persists a Session as a whole: Save and Clear replace both the token
// and the user, and Load never returns only one of them.
type Store interface {
	Load() (Session, bool, error)
	Save(s Session) error
	Clear() error
}

// Token returns the stored token, or "" when no complete session exists.
func Token(st Store) string {
	s, ok, err := st.Load()
	if err != nil || !ok {
		return ""
	}
	return s.Token
}

// Backend is the key/value surface Durable needs. *store.KV satisfies it.
type Backend interface {
	GetMany(keys ...string) (map[string]string, error)
	Put(entries map[string]string) error
	Delete(keys ...string) error
}

// Durable stores the session in a key/value backend under KeyToken and KeyUser.
type Durable struct {
	kv Backend
}

// NewDurable returns a Store backed by kv.
func NewDurable(kv Backend) *Durable {
	return &Durable{kv: kv}
}

// Load returns the stored session. A partial or corrupt record is cleared
// and reported absent.
func (d *Durable) Load() (Session, bool, error) {
	vals, err := d.kv.GetMany(KeyToken, KeyUser)
	if err != nil {
		return Session{}, false, fmt.Errorf("loading session: %w", err)
	}

	token, hasToken := vals[KeyToken]
	rawUser, hasUser := vals[KeyUser]
	if !hasToken && !hasUser {
		return Session{}, false, nil
	}

	var u User
	if !hasToken || !hasUser || token == "" || json.Unmarshal([]byte(rawUser), &u) != nil {
		if err := d.Clear(); err != nil {
			return Session{}, false, err
		}
		return Session{}, false, nil
	}
	return Session{Token: token, User: u}, true, nil
}

// Save writes the token and user in one transaction.
func (d *Durable) Save(s Session) error {
	if s.Token == "" {
		return errors.New("session: refusing to save empty token")
	}
	raw, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}
	if err := d.kv.Put(map[string]string{KeyToken: s.Token, KeyUser: string(raw)}); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Clear deletes the token and user in one transaction.
func (d *Durable) Clear() error {
	if err := d.kv.Delete(KeyToken, KeyUser); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// Memory is an in-process Store.
type Memory struct {
	mu      sync.RWMutex
	session Session
	present bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load() (Session, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session, m.present, nil
}

func (m *Memory) Save(s Session) error {
	if s.Token == "" {
		return errors.New("session: refusing to save empty token")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
	m.present = true
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = Session{}
	m.present = false
	return nil
}
