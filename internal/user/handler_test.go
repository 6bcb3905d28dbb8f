package user

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// helper to build an app with a simple "bootstrap" middleware that injects a
// jwt.Token into locals when the X-User-ID header is provided. This avoids
// pulling in the full jwtware middleware and keeps tests lightweight.
func newTestApp(t *testing.T, seed []User) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	app := fiber.New()
	h := NewHandler(NewService(NewInMemoryRepository(seed)))
	h.RegisterPublicRoutes(app)

	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, err := strconv.Atoi(v)
			if err == nil {
				claims := jwt.MapClaims{"user_id": id}
				c.Locals("user", &jwt.Token{Claims: claims})
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func seedUser(t *testing.T, email, password string) User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return User{ID: 1, Email: email, Password: string(hashed), FirstName: "Ada"}
}

func TestRegisterThenLogin(t *testing.T) {
	app := newTestApp(t, nil)

	body := `{"email":"ada@example.com","password":"hunter22","firstName":"Ada","lastName":"L"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sign-up", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("sign-up: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("sign-up status = %d, want 201", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/sign-in", strings.NewReader(`{"email":"ada@example.com","password":"hunter22"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("sign-in: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("sign-in status = %d, want 200", resp.StatusCode)
	}

	var payload struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Token == "" {
		t.Error("expected an access token")
	}
	if payload.User.Password != "" {
		t.Error("password leaked in login response")
	}

	var refresh string
	for _, ck := range resp.Cookies() {
		if ck.Name == RefreshCookieName {
			refresh = ck.Value
			if !ck.HttpOnly {
				t.Error("refresh cookie must be HttpOnly")
			}
		}
	}
	if refresh == "" {
		t.Fatal("login did not set a refresh cookie")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	app := newTestApp(t, []User{seedUser(t, "ada@example.com", "hunter22")})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sign-in", strings.NewReader(`{"email":"ada@example.com","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("sign-in: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := newTestApp(t, []User{seedUser(t, "ada@example.com", "hunter22")})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sign-up", strings.NewReader(`{"email":"ada@example.com","password":"other"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("sign-up: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want 409", resp.StatusCode)
	}
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	app := newTestApp(t, []User{seedUser(t, "ada@example.com", "hunter22")})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sign-in", strings.NewReader(`{"email":"ada@example.com","password":"hunter22"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("sign-in: %v", err)
	}
	var refresh *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == RefreshCookieName {
			refresh = ck
		}
	}
	if refresh == nil {
		t.Fatal("no refresh cookie from login")
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil)
	req.AddCookie(refresh)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("refresh status = %d, body %s", resp.StatusCode, body)
	}
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Token == "" {
		t.Error("refresh returned an empty token")
	}
}

func TestRefreshWithoutCookie(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	app := newTestApp(t, []User{seedUser(t, "ada@example.com", "hunter22")})

	// An access token lacks typ=refresh and must not mint new tokens.
	access, err := signAccessToken(User{ID: 1, Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil)
	req.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: access})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestProfileRoute(t *testing.T) {
	app := newTestApp(t, []User{seedUser(t, "ada@example.com", "hunter22")})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status without token = %d, want 401", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	req.Header.Set("X-User-ID", "1")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status with token = %d, want 200", resp.StatusCode)
	}

	var got User
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Email != "ada@example.com" {
		t.Errorf("email = %q, want ada@example.com", got.Email)
	}
	if got.Password != "" {
		t.Error("password leaked in profile response")
	}
}
