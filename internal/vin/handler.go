package vin

import (
	"github.com/gofiber/fiber/v2"
)

// Handler proxies VIN decoding for the storefront so the registry URL and
// response massaging stay server-side.
type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/vin/:vin", h.decodeVin)
}

// decodeResult decorates the vehicle with the silhouette the frontend should
// render.
type decodeResult struct {
	Vehicle
	Visualization Visualization `json:"visualization"`
}

func (h *Handler) decodeVin(c *fiber.Ctx) error {
	vehicle, err := h.client.Decode(c.Context(), c.Params("vin"))
	if err != nil {
		switch err {
		case ErrVinTooShort:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid VIN. Must be at least 11 characters."})
		default:
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to fetch VIN data"})
		}
	}

	return c.JSON(decodeResult{
		Vehicle:       vehicle,
		Visualization: VisualizationFor(vehicle.BodyClass),
	})
}
