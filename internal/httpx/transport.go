// Package httpx provides HTTP client plumbing shared by outbound API calls.
package httpx

import (
	"io"
	"net/http"
	"sync"
)

// AuthTransport is an http.RoundTripper that attaches a bearer token to every
// request. When a response comes back 401 it refreshes the token once and
// retries the request; a second 401 is returned to the caller untouched so
// the caller can force a re-login.
type AuthTransport struct {
	// Base performs the actual round trips. Defaults to
	// http.DefaultTransport when nil.
	Base http.RoundTripper

	// Refresh exchanges whatever credential the process holds (for the
	// server, the refresh cookie) for a new access token. When nil a 401
	// is returned without retrying.
	Refresh func() (string, error)

	mu    sync.Mutex
	token string
}

func (t *AuthTransport) SetToken(token string) {
	t.mu.Lock()
	t.token = token
	t.mu.Unlock()
}

func (t *AuthTransport) Token() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.token
}

func (t *AuthTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.send(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || t.Refresh == nil {
		return resp, nil
	}

	// A request with a consumed one-shot body cannot be replayed.
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	token, err := t.Refresh()
	if err != nil {
		return resp, nil
	}
	t.SetToken(token)

	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	return t.send(req)
}

// send issues a clone of req so the caller's request is never mutated, per
// the RoundTripper contract.
func (t *AuthTransport) send(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		clone.Body = body
	}
	if token := t.Token(); token != "" {
		clone.Header.Set("Authorization", "Bearer "+token)
	}
	return t.base().RoundTrip(clone)
}
