package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CookieName identifies the browser session carrying cart/wishlist state.
const CookieName = "session_id"

// ID returns the request's session id, minting and setting a cookie when the
// browser has none yet.
func ID(c *fiber.Ctx) string {
	if sid := c.Cookies(CookieName); sid != "" {
		return sid
	}
	sid := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    sid,
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
	return sid
}

// Key namespaces a storage key per session, e.g. Key(c, "cart") → "cart:<sid>".
func Key(c *fiber.Ctx, prefix string) string {
	return prefix + ":" + ID(c)
}
