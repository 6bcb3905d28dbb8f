package product

import (
	"errors"
	"sort"
	"sync"
)

var (
	ErrNotFound = errors.New("product not found")
)

// Filter narrows and orders catalog listings.
type Filter struct {
	Category string
	PriceMin *float64
	PriceMax *float64
	// Ordering accepts "price", "-price", "name", "-name"; empty keeps
	// insertion order.
	Ordering string
	Page     int
	PageSize int
}

type Repository interface {
	// List returns the requested page plus the total count before paging.
	List(f Filter) ([]Product, int)
	GetByID(id int) (Product, error)
	GetBySlug(slug string) (Product, error)
	Create(p Product) (Product, error)
	Update(id int, p Product) (Product, error)
	Delete(id int) error
}

// InMemoryRepository is a simple in-memory implementation useful for tests and
// seeding local data.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
	nextID  int
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]Product, 0, len(seed)),
		nextID:  1,
	}

	maxID := 0
	for _, p := range seed {
		r.storage = append(r.storage, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List(f Filter) ([]Product, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]Product, 0, len(r.storage))
	for _, p := range r.storage {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.PriceMin != nil && p.Price < *f.PriceMin {
			continue
		}
		if f.PriceMax != nil && p.Price > *f.PriceMax {
			continue
		}
		matched = append(matched, p)
	}

	switch f.Ordering {
	case "price":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	case "-price":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price > matched[j].Price })
	case "name":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	case "-name":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Name > matched[j].Name })
	}

	total := len(matched)
	page, size := f.Page, f.PageSize
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		return matched, total
	}
	start := (page - 1) * size
	if start >= total {
		return []Product{}, total
	}
	end := start + size
	if end > total {
		end = total
	}
	out := make([]Product, end-start)
	copy(out, matched[start:end])
	return out, total
}

func (r *InMemoryRepository) GetByID(id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) GetBySlug(slug string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}
	r.storage = append(r.storage, p)
	return p, nil
}

func (r *InMemoryRepository) Update(id int, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			p.ID = id
			r.storage[i] = p
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
