package product

import (
	"testing"
)

func TestNormalize_FlatPayloadWithFallbacks(t *testing.T) {
	payload := []byte(`{"id": 7}`)
	p, err := NormalizeJSON(payload)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if p.ID != 7 {
		t.Fatalf("expected id 7, got %d", p.ID)
	}
	if p.Name != PlaceholderName {
		t.Fatalf("expected placeholder name, got %q", p.Name)
	}
	if p.Category != DefaultCategory {
		t.Fatalf("expected %q, got %q", DefaultCategory, p.Category)
	}
	if p.Price != 0 || p.Warranty != 0 || p.DeliveryDays != 0 || p.ReturnDays != 0 {
		t.Fatalf("expected zero numeric defaults, got %+v", p)
	}
	if p.Stars != nil {
		t.Fatalf("missing stars must stay nil, got %v", *p.Stars)
	}
	if p.ImageURL != nil {
		t.Fatalf("missing image must stay nil, got %v", *p.ImageURL)
	}
}

func TestNormalize_StringTypedNumerics(t *testing.T) {
	payload := []byte(`{"id": "3", "name": "Brake Pad Set", "price": "49.90", "stars": "4.5", "warranty": "12"}`)
	p, err := NormalizeJSON(payload)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if p.ID != 3 {
		t.Fatalf("expected id 3, got %d", p.ID)
	}
	if p.Price != 49.90 {
		t.Fatalf("expected price 49.90, got %v", p.Price)
	}
	if p.Stars == nil || *p.Stars != 4.5 {
		t.Fatalf("expected stars 4.5, got %v", p.Stars)
	}
	if p.Warranty != 12 {
		t.Fatalf("expected warranty 12, got %d", p.Warranty)
	}
}

func TestNormalize_AlternateCategoryKeys(t *testing.T) {
	cases := map[string]string{
		`{"id":1,"category":"brakes"}`:       "brakes",
		`{"id":1,"new_category":"filters"}`:  "filters",
		`{"id":1,"category_name":"engine"}`:  "engine",
		`{"id":1}`:                           DefaultCategory,
		`{"id":1,"category":null}`:           DefaultCategory,
	}
	for payload, want := range cases {
		p, err := NormalizeJSON([]byte(payload))
		if err != nil {
			t.Fatalf("normalize %s failed: %v", payload, err)
		}
		if p.Category != want {
			t.Fatalf("payload %s: expected category %q, got %q", payload, want, p.Category)
		}
	}
}

func TestNormalize_NestedProductKey(t *testing.T) {
	payload := []byte(`{"id": 55, "product": {"id": 9, "name": "Oil Filter", "price": 12.5, "category_name": "filters"}}`)
	p, err := NormalizeJSON(payload)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if p.ID != 9 {
		t.Fatalf("expected nested product id 9, got %d", p.ID)
	}
	if p.Name != "Oil Filter" || p.Category != "filters" || p.Price != 12.5 {
		t.Fatalf("unexpected normalized product: %+v", p)
	}
}

func TestNormalize_NestedProductWithoutOwnID(t *testing.T) {
	// fitment rows sometimes carry only the outer id
	payload := []byte(`{"id": 55, "product": {"name": "Wiper Blade"}}`)
	p, err := NormalizeJSON(payload)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if p.ID != 55 {
		t.Fatalf("expected outer id 55, got %d", p.ID)
	}
}

func TestNormalize_MissingIDIsError(t *testing.T) {
	if _, err := NormalizeJSON([]byte(`{"name": "No ID"}`)); err != ErrInvalidPayload {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
	if _, err := NormalizeJSON([]byte(`{"id": 0, "name": "Zero ID"}`)); err != ErrInvalidPayload {
		t.Fatalf("expected ErrInvalidPayload for zero id, got %v", err)
	}
}

func TestNormalize_StarsClampedToRange(t *testing.T) {
	p, err := NormalizeJSON([]byte(`{"id":1,"stars":9.9}`))
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if p.Stars == nil || *p.Stars != 5 {
		t.Fatalf("expected stars clamped to 5, got %v", p.Stars)
	}

	p2, err := NormalizeJSON([]byte(`{"id":1,"stars":-1}`))
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if p2.Stars == nil || *p2.Stars != 0 {
		t.Fatalf("expected stars clamped to 0, got %v", p2.Stars)
	}
}

func TestNormalize_GalleryPreserved(t *testing.T) {
	payload := []byte(`{"id":1,"images":[{"id":10,"url":"/img/a.jpg"},{"id":11,"url":"/img/b.jpg"}]}`)
	p, err := NormalizeJSON(payload)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if len(p.Images) != 2 {
		t.Fatalf("expected 2 gallery images, got %d", len(p.Images))
	}
	if p.Images[0].URL != "/img/a.jpg" || p.Images[1].URL != "/img/b.jpg" {
		t.Fatalf("gallery order not preserved: %+v", p.Images)
	}
}
