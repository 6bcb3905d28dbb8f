package product

// Product is the canonical in-memory product shape. Backend payloads arrive
// in several historical shapes (flat, nested under `product`, renamed category
// keys, string-typed numerics) and are funneled through Normalize before
// anything else sees them.
type Product struct {
	ID           int            `json:"id"`
	Slug         string         `json:"slug,omitempty"`
	Name         string         `json:"name"`
	Category     string         `json:"category"`
	Price        float64        `json:"price"`
	Stars        *float64       `json:"stars"`
	StockStatus  bool           `json:"stock_status"`
	ImageURL     *string        `json:"image_url"`
	Warranty     int            `json:"warranty"`
	DeliveryDays int            `json:"delivery_days"`
	ReturnDays   int            `json:"return_days"`
	Images       []ProductImage `json:"images,omitempty"`
}

// ProductImage is one entry of the optional ordered gallery.
type ProductImage struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

// PlaceholderName is shown when a payload carries no product name.
const PlaceholderName = "—"

// DefaultCategory is used when no category key is present in the payload.
const DefaultCategory = "uncategorized"
