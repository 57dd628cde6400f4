package repositories

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gerai/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// listQuery builds the listing predicate. Both Count and the page fetch go
// through here so they always agree on which products are visible.
func (r *GORMProductRepository) listQuery(filter models.ListFilter) *gorm.DB {
	query := r.db.Model(&models.Product{}).
		Where("is_deleted = ?", false).
		Where("stock > ?", 0)
	if filter.Category != "" && filter.Category != models.CategoryAll {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Query != "" {
		// Case-insensitive substring match on the product name.
		query = query.Where("LOWER(product_name) LIKE ?", "%"+strings.ToLower(filter.Query)+"%")
	}
	return query
}

// List returns one page of visible products plus the total count of all
// products matching the filter (the count ignores skip/limit).
func (r *GORMProductRepository) List(filter models.ListFilter) ([]models.Product, int64, error) {
	var total int64
	if err := r.listQuery(filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	products := make([]models.Product, 0)
	err := r.listQuery(filter).
		Order("created_at DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// GetByID retrieves a single product by its ID, including soft-deleted and
// out-of-stock products.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update overwrites the editable fields of the identified product and
// returns the post-update state. The map form forces zero values through,
// so fields missing from the payload really are cleared.
func (r *GORMProductRepository) Update(id string, in models.ProductInput) (*models.Product, error) {
	res := r.db.Model(&models.Product{}).Where("id = ?", id).Updates(map[string]interface{}{
		"product_name": in.ProductName,
		"description":  in.Description,
		"price":        in.Price,
		"stock":        in.Stock,
		"image":        in.Image,
		"brand":        in.Brand,
		"category":     in.Category,
	})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return r.GetByID(id)
}

// SetDeleted marks the identified product as deleted and returns the
// post-update state. A single UPDATE keeps the flip atomic at the storage
// layer and idempotent.
func (r *GORMProductRepository) SetDeleted(id string) (*models.Product, error) {
	res := r.db.Model(&models.Product{}).Where("id = ?", id).Update("is_deleted", true)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to soft delete product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return r.GetByID(id)
}
