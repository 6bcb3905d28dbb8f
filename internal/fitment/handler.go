package fitment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/partline/auto-parts-backend/internal/vin"
)

// PageSize is the number of parts per category page.
const PageSize = 5

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/parts/fitment/", h.queryFitment)
}

func (h *Handler) queryFitment(c *fiber.Ctx) error {
	var vehicle vin.Vehicle
	if err := c.BodyParser(&vehicle); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if vehicle.Make == "" || vehicle.Model == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "make and model are required"})
	}

	matched := h.repo.Match(vehicle)

	out := make(Results, len(matched))
	// stable iteration keeps page links deterministic
	categories := make([]string, 0, len(matched))
	for cat := range matched {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	for _, cat := range categories {
		parts := matched[cat]
		page := c.QueryInt("page_"+CategorySlug(cat), 1)
		if page < 1 {
			page = 1
		}
		out[cat] = paginate(c.Path(), cat, parts, page)
	}
	return c.JSON(out)
}

// CategorySlug turns a category name into its query-parameter form,
// e.g. "Brake Pads" → "brake_pads".
func CategorySlug(category string) string {
	return strings.Join(strings.Fields(strings.ToLower(category)), "_")
}

func paginate(path, category string, parts []Part, page int) Page {
	total := len(parts)
	start := (page - 1) * PageSize
	if start > total {
		start = total
	}
	end := start + PageSize
	if end > total {
		end = total
	}

	out := Page{Count: total, Results: parts[start:end]}
	if out.Results == nil {
		out.Results = []Part{}
	}
	param := "page_" + CategorySlug(category)
	if end < total {
		next := fmt.Sprintf("%s?%s=%d", path, param, page+1)
		out.Next = &next
	}
	if page > 1 {
		prev := fmt.Sprintf("%s?%s=%d", path, param, page-1)
		out.Previous = &prev
	}
	return out
}
