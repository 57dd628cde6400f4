package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"gerai/internal/models"
)

// MemoryProductRepository is an in-memory implementation of
// ProductRepository, useful for tests and local development without a
// database.
type MemoryProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[string]models.Product),
	}
}

func matchesFilter(p models.Product, filter models.ListFilter) bool {
	if p.IsDeleted || p.Stock <= 0 {
		return false
	}
	if filter.Category != "" && filter.Category != models.CategoryAll && p.Category != filter.Category {
		return false
	}
	if filter.Query != "" && !strings.Contains(strings.ToLower(p.ProductName), strings.ToLower(filter.Query)) {
		return false
	}
	return true
}

// List returns one page of visible products plus the total matching count.
func (r *MemoryProductRepository) List(filter models.ListFilter) ([]models.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matching := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if matchesFilter(p, filter) {
			matching = append(matching, p)
		}
	}
	sort.Slice(matching, func(i, j int) bool {
		return matching[i].CreatedAt.After(matching[j].CreatedAt)
	})

	total := int64(len(matching))

	skip := filter.Skip
	if skip < 0 {
		skip = 0
	}
	if skip > len(matching) {
		skip = len(matching)
	}
	page := matching[skip:]
	if filter.Limit >= 0 && filter.Limit < len(page) {
		page = page[:filter.Limit]
	}
	return page, total, nil
}

// GetByID returns a product by its ID, including soft-deleted products.
func (r *MemoryProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	product.UpdatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

// Update overwrites the editable fields of an existing product.
func (r *MemoryProductRepository) Update(id string, in models.ProductInput) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	product.ProductName = in.ProductName
	product.Description = in.Description
	product.Price = in.Price
	product.Stock = in.Stock
	product.Image = in.Image
	product.Brand = in.Brand
	product.Category = in.Category
	product.UpdatedAt = time.Now()
	r.products[id] = product
	return &product, nil
}

// SetDeleted marks a product as deleted.
func (r *MemoryProductRepository) SetDeleted(id string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	product.IsDeleted = true
	product.UpdatedAt = time.Now()
	r.products[id] = product
	return &product, nil
}
