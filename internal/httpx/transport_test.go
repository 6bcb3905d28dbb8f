package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func TestAuthTransportAttachesBearer(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	tr := &AuthTransport{}
	tr.SetToken("abc123")
	client := &http.Client{Transport: tr}

	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()

	if got != "Bearer abc123" {
		t.Errorf("Authorization = %q, want Bearer abc123", got)
	}
}

func TestAuthTransportRefreshesOnceOn401(t *testing.T) {
	var refreshes int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := &AuthTransport{
		Refresh: func() (string, error) {
			atomic.AddInt32(&refreshes, 1)
			return "fresh", nil
		},
	}
	tr.SetToken("stale")
	client := &http.Client{Transport: tr}

	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200 after refresh", resp.StatusCode)
	}
	if n := atomic.LoadInt32(&refreshes); n != 1 {
		t.Errorf("refresh calls = %d, want 1", n)
	}
	if tr.Token() != "fresh" {
		t.Errorf("stored token = %q, want fresh", tr.Token())
	}
}

func TestAuthTransportSecond401Propagates(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tr := &AuthTransport{
		Refresh: func() (string, error) { return "still-bad", nil },
	}
	client := &http.Client{Transport: tr}

	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
	// Exactly one retry; the second 401 must not loop.
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("server calls = %d, want 2", n)
	}
}

func TestAuthTransportRefreshFailureReturnsOriginal401(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tr := &AuthTransport{
		Refresh: func() (string, error) { return "", errors.New("session expired") },
	}
	client := &http.Client{Transport: tr}

	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("server calls = %d, want 1 when refresh fails", n)
	}
}

func TestAuthTransportReplaysBodyOnRetry(t *testing.T) {
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 64)
		n, _ := r.Body.Read(buf)
		bodies = append(bodies, string(buf[:n]))
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	tr := &AuthTransport{
		Refresh: func() (string, error) { return "fresh", nil },
	}
	client := &http.Client{Transport: tr}

	resp, err := client.Post(srv.URL, "application/json", strings.NewReader(`{"id":1}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	if len(bodies) != 2 || bodies[0] != `{"id":1}` || bodies[1] != `{"id":1}` {
		t.Errorf("bodies = %q, want the payload sent twice", bodies)
	}
}
