package fitment

import (
	"strconv"
	"strings"
	"sync"

	"github.com/partline/auto-parts-backend/internal/vin"
)

type Repository interface {
	// Match returns every part fitting the vehicle, grouped by product
	// category, in stable id order within each category.
	Match(v vin.Vehicle) map[string][]Part
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	parts []Part
}

func NewInMemoryRepository(seed []Part) *InMemoryRepository {
	r := &InMemoryRepository{parts: make([]Part, 0, len(seed))}
	r.parts = append(r.parts, seed...)
	return r
}

func (r *InMemoryRepository) Match(v vin.Vehicle) map[string][]Part {
	r.mu.RLock()
	defer r.mu.RUnlock()

	year, _ := strconv.Atoi(v.Year)
	out := make(map[string][]Part)
	for _, pt := range r.parts {
		if !fits(pt, v, year) {
			continue
		}
		cat := pt.Product.Category
		out[cat] = append(out[cat], pt)
	}
	return out
}

func fits(pt Part, v vin.Vehicle, year int) bool {
	if pt.Make != "" && !strings.EqualFold(pt.Make, v.Make) {
		return false
	}
	if pt.Model != "" && !strings.EqualFold(pt.Model, v.Model) {
		return false
	}
	if year > 0 {
		if pt.YearStart > 0 && year < pt.YearStart {
			return false
		}
		if pt.YearEnd > 0 && year > pt.YearEnd {
			return false
		}
	}
	return true
}
