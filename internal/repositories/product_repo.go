package repositories

import (
	"errors"

	"gerai/internal/models"
)

// ErrNotFound is returned when an identifier does not resolve to a record.
// Callers match it with errors.Is.
var ErrNotFound = errors.New("not found")

// ProductRepository defines the interface for product data access.
//
// List applies the catalog visibility predicate (not deleted, stock > 0)
// plus the optional category and name filters, and returns the page along
// with the total count of matching products. Count and page use the same
// predicate so the total is consistent with what pagination pages over.
//
// GetByID ignores the soft-delete flag and stock: a deleted or out-of-stock
// product is still retrievable by ID.
//
// Update overwrites all editable fields from the input, including zero
// values, and returns the post-update state. SetDeleted flips the
// soft-delete flag in a single statement and returns the post-update state;
// calling it on an already-deleted product succeeds again.
type ProductRepository interface {
	List(filter models.ListFilter) ([]models.Product, int64, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(id string, in models.ProductInput) (*models.Product, error)
	SetDeleted(id string) (*models.Product, error)
}
