package user

import (
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const (
	accessTokenTTL  = time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour

	// RefreshCookieName carries the refresh token; HttpOnly so scripts never
	// see it.
	RefreshCookieName = "refresh_token"
)

type Handler struct {
	service *Service
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/sign-in", h.login)
	app.Post("/api/v1/sign-up", h.register)
	app.Post("/api/v1/refresh", h.refresh)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/profile", h.getProfile)
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	u, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid email or password"})
	}

	access, err := signAccessToken(u)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}
	refresh, err := signRefreshToken(u)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}

	setRefreshCookie(c, refresh)

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    sanitizeUser(u),
		"token":   access,
	})
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	if payload.Email == "" || payload.Password == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Missing required fields")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	created, err := h.service.Register(User{
		Email:     payload.Email,
		Password:  payload.Password,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if err == ErrEmailExists {
			return c.Status(fiber.StatusConflict).SendString("Email already exists")
		}
		return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(sanitizeUser(created))
}

// refresh exchanges the HttpOnly refresh cookie for a new access token. The
// access token never round-trips through cookies; clients keep it in memory
// and call this endpoint after a 401.
func (h *Handler) refresh(c *fiber.Ctx) error {
	cookie := c.Cookies(RefreshCookieName)
	if cookie == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "missing refresh token"})
	}

	tok, err := jwt.Parse(cookie, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !tok.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid refresh token"})
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || claims["typ"] != "refresh" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid refresh token"})
	}

	uid, err := claimInt(claims, "user_id")
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid refresh token"})
	}
	u, err := h.service.GetByID(uid)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "user not found"})
	}

	access, err := signAccessToken(u)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}
	return c.JSON(fiber.Map{"token": access})
}

func (h *Handler) getProfile(c *fiber.Ctx) error {
	userID, err := GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	u, err := h.service.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	}

	return c.JSON(sanitizeUser(u))
}

func signAccessToken(u User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"exp":     time.Now().Add(accessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func signRefreshToken(u User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"typ":     "refresh",
		"exp":     time.Now().Add(refreshTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     RefreshCookieName,
		Value:    token,
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(refreshTokenTTL),
	})
}

// GetUserIDFromCtx extracts the user_id claim set by the JWT middleware.
func GetUserIDFromCtx(c *fiber.Ctx) (int, error) {
	u := c.Locals("user")
	if u == nil {
		return 0, fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	return claimInt(claims, "user_id")
}

func claimInt(claims jwt.MapClaims, key string) (int, error) {
	raw, ok := claims[key]
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	switch v := raw.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		id, err := strconv.Atoi(v)
		if err != nil {
			return 0, fiber.ErrUnauthorized
		}
		return id, nil
	default:
		return 0, fiber.ErrUnauthorized
	}
}

func sanitizeUser(u User) User {
	u.Password = ""
	return u
}
