package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/theirongolddev/finboard/internal/logger"
	"github.com/theirongolddev/finboard/internal/notify"
	"github.com/theirongolddev/finboard/internal/session"
)

const (
	msgLoginFailed    = "Login failed. Please check your credentials."
	msgRegisterFailed = "Registration failed. Please try again."
	msgRegistered     = "Registration successful! Please log in."
	msgLoggedOut      = "You have been logged out successfully."
)

// Login signs in and, on success, persists the session and sets the default
// Authorization header. Failures never touch the stored session.
func (c *Client) Login(ctx context.Context, creds Credentials) AuthResult {
	var resp loginResponse
	err := c.send(ctx, request{
		method:   http.MethodPost,
		path:     "/auth/signin",
		body:     creds,
		authCall: true,
	}, &resp)
	if err != nil {
		return AuthResult{Message: failureMessage(err, msgLoginFailed), Err: err}
	}

	token := resp.AccessToken
	if token == "" {
		token = resp.Token
	}
	if token == "" {
		err := errors.New("api: sign-in response carried no token")
		return AuthResult{Message: msgLoginFailed, Err: err}
	}

	user := session.User{
		ID:        resp.ID,
		FirstName: resp.FirstName,
		LastName:  resp.LastName,
		Email:     resp.Email,
	}
	if err := c.store.Save(session.Session{Token: token, User: user}); err != nil {
		c.log.Error("saving session", logger.F("error", err.Error()))
		return AuthResult{Message: "Login succeeded but the session could not be saved.", Err: err}
	}
	c.setAuthorization(token)
	c.cancelRedirect()

	c.notify(policyFrom(ctx), notify.Success, fmt.Sprintf("Welcome back, %s!", user.FirstName))
	return AuthResult{Success: true, User: &user}
}

// Register creates an account. It does not sign the new user in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) AuthResult {
	err := c.send(ctx, request{
		method:   http.MethodPost,
		path:     "/auth/signup",
		body:     req,
		authCall: true,
	}, nil)
	if err != nil {
		return AuthResult{Message: failureMessage(err, msgRegisterFailed), Err: err}
	}

	c.notify(policyFrom(ctx), notify.Success, msgRegistered)
	return AuthResult{Success: true}
}

// Logout forgets the session locally. No request is sent.
func (c *Client) Logout() error {
	err := c.store.Clear()
	c.setAuthorization("")
	c.cancelRedirect()
	if err != nil {
		return fmt.Errorf("logging out: %w", err)
	}
	c.notes.Notify(notify.Notice{Level: notify.Success, Message: msgLoggedOut})
	return nil
}

// failureMessage prefers what the server said about the failure.
func failureMessage(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) {
		if m := serverMessage(e.Body); m != "" {
			return m
		}
	}
	return fallback
}
