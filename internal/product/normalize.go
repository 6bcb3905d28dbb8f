package product

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

var (
	ErrInvalidPayload = errors.New("payload has no product identifier")
)

// flexFloat tolerates numeric fields arriving as JSON numbers, numeric
// strings, or null. Admin tooling upstream has historically sent prices and
// star ratings as strings.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// flexInt is the integer counterpart of flexFloat.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexInt(v)
	return nil
}

// RawProduct is the union of every payload version the backend has served.
// Older payloads are flat; newer ones nest the product under a `product` key
// and rename the category field.
type RawProduct struct {
	ID           *flexInt       `json:"id"`
	Slug         *string        `json:"slug"`
	Name         *string        `json:"name"`
	Category     *string        `json:"category"`
	NewCategory  *string        `json:"new_category"`
	CategoryName *string        `json:"category_name"`
	Price        *flexFloat     `json:"price"`
	Stars        *flexFloat     `json:"stars"`
	StockStatus  *bool          `json:"stock_status"`
	ImageURL     *string        `json:"image_url"`
	Warranty     *flexInt       `json:"warranty"`
	DeliveryDays *flexInt       `json:"delivery_days"`
	ReturnDays   *flexInt       `json:"return_days"`
	Images       []ProductImage `json:"images"`

	// Product holds the nested payload version; when present its fields win.
	Product *RawProduct `json:"product"`
}

// Normalize converts any known payload shape into the canonical Product.
// Missing fields get deterministic fallbacks; only a missing identifier is an
// error.
func Normalize(raw RawProduct) (Product, error) {
	if raw.Product != nil {
		nested := *raw.Product
		// fitment rows put the part id at the top level and the product
		// underneath; the product id is the one that matters here
		if nested.ID == nil {
			nested.ID = raw.ID
		}
		return Normalize(nested)
	}

	if raw.ID == nil || int(*raw.ID) <= 0 {
		return Product{}, ErrInvalidPayload
	}

	p := Product{
		ID:       int(*raw.ID),
		Name:     PlaceholderName,
		Category: DefaultCategory,
	}

	if raw.Slug != nil {
		p.Slug = *raw.Slug
	}
	if raw.Name != nil && *raw.Name != "" {
		p.Name = *raw.Name
	}
	switch {
	case raw.Category != nil && *raw.Category != "":
		p.Category = *raw.Category
	case raw.NewCategory != nil && *raw.NewCategory != "":
		p.Category = *raw.NewCategory
	case raw.CategoryName != nil && *raw.CategoryName != "":
		p.Category = *raw.CategoryName
	}
	if raw.Price != nil && float64(*raw.Price) > 0 {
		p.Price = float64(*raw.Price)
	}
	if raw.Stars != nil {
		stars := float64(*raw.Stars)
		if stars < 0 {
			stars = 0
		}
		if stars > 5 {
			stars = 5
		}
		p.Stars = &stars
	}
	if raw.StockStatus != nil {
		p.StockStatus = *raw.StockStatus
	}
	if raw.ImageURL != nil && *raw.ImageURL != "" {
		url := *raw.ImageURL
		p.ImageURL = &url
	}
	if raw.Warranty != nil && int(*raw.Warranty) > 0 {
		p.Warranty = int(*raw.Warranty)
	}
	if raw.DeliveryDays != nil && int(*raw.DeliveryDays) > 0 {
		p.DeliveryDays = int(*raw.DeliveryDays)
	}
	if raw.ReturnDays != nil && int(*raw.ReturnDays) > 0 {
		p.ReturnDays = int(*raw.ReturnDays)
	}
	if len(raw.Images) > 0 {
		p.Images = make([]ProductImage, len(raw.Images))
		copy(p.Images, raw.Images)
	}

	return p, nil
}

// NormalizeJSON parses raw bytes and normalizes in one step.
func NormalizeJSON(data []byte) (Product, error) {
	var raw RawProduct
	if err := json.Unmarshal(data, &raw); err != nil {
		return Product{}, err
	}
	return Normalize(raw)
}
