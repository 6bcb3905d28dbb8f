package cart

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/partline/auto-parts-backend/internal/product"
	"github.com/partline/auto-parts-backend/internal/session"
	"github.com/partline/auto-parts-backend/internal/storage"
)

// Handler exposes the session cart over HTTP. Each request rehydrates the
// store from the KV under the session's key, so the persisted state is always
// the source of truth.
type Handler struct {
	kv storage.KV
}

func NewHandler(kv storage.KV) *Handler {
	return &Handler{kv: kv}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Get("/api/v1/cart/count", h.getCount)
	app.Post("/api/v1/cart", h.addToCart)
	app.Put("/api/v1/cart/:id<[0-9]+>", h.updateQuantity)
	app.Delete("/api/v1/cart/:id<[0-9]+>", h.removeFromCart)
	app.Delete("/api/v1/cart", h.clearCart)
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

func (h *Handler) getCart(c *fiber.Ctx) error {
	return c.JSON(h.store(c).Items())
}

func (h *Handler) getCount(c *fiber.Ctx) error {
	s := h.store(c)
	return c.JSON(fiber.Map{"count": s.Count(), "subtotal": s.Subtotal()})
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
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

func (h *Handler) removeFromCart(c *fiber.Ctx) error {
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

func (h *Handler) clearCart(c *fiber.Ctx) error {
	if err := h.store(c).Clear(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
