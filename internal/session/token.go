package session

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

// TokenExpiry decodes the exp claim from a JWT-shaped token. The signature is
// not checked. ok is false for anything that is not three dot-separated
// segments with a base64url JSON payload carrying a positive exp.
func TokenExpiry(token string) (exp time.Time, ok bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return time.Time{}, false
	}

	var claims struct {
		Exp json.Number `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return time.Time{}, false
	}
	secs, err := claims.Exp.Float64()
	if err != nil || secs <= 0 {
		return time.Time{}, false
	}
	return time.Unix(int64(secs), 0), true
}

// Expired reports whether token is expired at now. Malformed tokens are
// treated as expired.
func Expired(token string, now time.Time) bool {
	exp, ok := TokenExpiry(token)
	if !ok {
		return true
	}
	return !exp.After(now)
}

// Restore loads the stored session for startup. An expired or malformed
// token clears storage and yields an absent session.
func Restore(st Store, now time.Time) (Session, bool, error) {
	s, ok, err := st.Load()
	if err != nil || !ok {
		return Session{}, false, err
	}
	if Expired(s.Token, now) {
		if err := st.Clear(); err != nil {
			return Session{}, false, err
		}
		return Session{}, false, nil
	}
	return s, true, nil
}
