package wishlist

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/partline/auto-parts-backend/internal/cart"
	"github.com/partline/auto-parts-backend/internal/product"
	"github.com/partline/auto-parts-backend/internal/session"
	"github.com/partline/auto-parts-backend/internal/storage"
)

// Handler exposes the session wishlist over HTTP.
type Handler struct {
	kv storage.KV
}

func NewHandler(kv storage.KV) *Handler {
	return &Handler{kv: kv}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/wishlist", h.getWishlist)
	app.Get("/api/v1/wishlist/:id<[0-9]+>", h.isWishlisted)
	app.Post("/api/v1/wishlist", h.addToWishlist)
	app.Put("/api/v1/wishlist/:id<[0-9]+>", h.updateQuantity)
	app.Delete("/api/v1/wishlist/:id<[0-9]+>", h.removeFromWishlist)
	app.Post("/api/v1/wishlist/:id<[0-9]+>/move-to-cart", h.moveToCart)
}

func (h *Handler) store(c *fiber.Ctx) *Store {
	return NewStore(c.Context(), h.kv, session.Key(c, DefaultKey))
}

type addRequest struct {
	Product  product.RawProduct `json:"product"`
	Quantity int                `json:"quantity,omitempty"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) getWishlist(c *fiber.Ctx) error {
	return c.JSON(h.store(c).Items())
}

func (h *Handler) isWishlisted(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	return c.JSON(fiber.Map{"productId": id, "wishlisted": h.store(c).IsWishlisted(id)})
}

func (h *Handler) addToWishlist(c *fiber.Ctx) error {
	payload := new(addRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	p, err := product.Normalize(payload.Product)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product payload"})
	}

	s := h.store(c)
	if err := s.Add(c.Context(), p, payload.Quantity); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusOK).JSON(s.Items())
}

func (h *Handler) updateQuantity(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	payload := new(quantityRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	s := h.store(c)
	if err := s.UpdateQuantity(c.Context(), id, payload.Quantity); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(s.Items())
}

func (h *Handler) removeFromWishlist(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	s := h.store(c)
	if err := s.Remove(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(s.Items())
}

func (h *Handler) moveToCart(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	dst := cart.NewStore(c.Context(), h.kv, session.Key(c, cart.DefaultKey))
	s := h.store(c)
	if err := s.MoveToCart(c.Context(), id, dst); err != nil {
		switch err {
		case ErrNotWishlisted:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not in wishlist"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"cart": dst.Items(), "wishlist": s.Items()})
}
