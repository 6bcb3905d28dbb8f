package fitment

import (
	"github.com/partline/auto-parts-backend/internal/product"
)

// Part ties a product to the vehicle range it fits.
type Part struct {
	ID        int             `json:"id"`
	Make      string          `json:"make,omitempty"`
	Model     string          `json:"model,omitempty"`
	YearStart int             `json:"year_start,omitempty"`
	YearEnd   int             `json:"year_end,omitempty"`
	Trim      *string         `json:"trim,omitempty"`
	DriveType *string         `json:"drive_type,omitempty"`
	BodyClass *string         `json:"body_class,omitempty"`
	Product   product.Product `json:"product"`
}

// Page is one paginated slice of a category's matches.
type Page struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []Part  `json:"results"`
}

// Results maps category names to their paginated matches. Each category
// paginates independently.
type Results map[string]Page
