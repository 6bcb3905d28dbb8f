package product

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/parts/parts-public/", h.listParts)
	app.Get("/parts/parts/:slug/", h.getPart)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/parts/parts/", h.createPart)
	app.Put("/parts/parts/:id<[0-9]+>/", h.updatePart)
	app.Delete("/parts/parts/:id<[0-9]+>/", h.deletePart)
}

const defaultPageSize = 12

// listResponse mirrors the paginated shape the storefront expects.
type listResponse struct {
	Count    int       `json:"count"`
	Next     *string   `json:"next"`
	Previous *string   `json:"previous"`
	Results  []Product `json:"results"`
}

func (h *Handler) listParts(c *fiber.Ctx) error {
	f := Filter{
		Ordering: c.Query("ordering"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", defaultPageSize),
	}
	// the storefront sends the category filter as `new_category`; accept the
	// plain name too
	f.Category = c.Query("new_category")
	if f.Category == "" {
		f.Category = c.Query("category")
	}
	if v := c.Query("min_price"); v != "" {
		if min, err := strconv.ParseFloat(v, 64); err == nil {
			f.PriceMin = &min
		}
	}
	if v := c.Query("max_price"); v != "" {
		if max, err := strconv.ParseFloat(v, 64); err == nil {
			f.PriceMax = &max
		}
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = defaultPageSize
	}

	results, total := h.service.List(f)

	resp := listResponse{Count: total, Results: results}
	if f.Page*f.PageSize < total {
		next := pageURL(c.Path(), f.Page+1)
		resp.Next = &next
	}
	if f.Page > 1 {
		prev := pageURL(c.Path(), f.Page-1)
		resp.Previous = &prev
	}
	return c.JSON(resp)
}

func pageURL(path string, page int) string {
	return fmt.Sprintf("%s?page=%d", path, page)
}

func (h *Handler) getPart(c *fiber.Ctx) error {
	slug := c.Params("slug")
	p, err := h.service.GetBySlug(slug)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	return c.JSON(p)
}

func (h *Handler) createPart(c *fiber.Ctx) error {
	var raw RawProduct
	if err := c.BodyParser(&raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	// admin payloads go through the same normalization as catalog reads, so
	// string-typed prices and missing fields never reach the repository.
	// a create has no id yet; stub one in and strip it after normalizing.
	hadID := raw.ID != nil
	if !hadID {
		placeholder := flexInt(1)
		raw.ID = &placeholder
	}
	p, err := Normalize(raw)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if !hadID {
		p.ID = 0
	}

	created, err := h.service.Create(p)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updatePart(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	var raw RawProduct
	if err := c.BodyParser(&raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	fid := flexInt(id)
	raw.ID = &fid
	p, err := Normalize(raw)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.Update(id, p)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(updated)
}

func (h *Handler) deletePart(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	if err := h.service.Delete(id); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
