package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gerai/internal/models"
	"gerai/internal/repositories"
)

// The in-memory repository has to honor the same listing contract as the
// GORM one, since service tests lean on it.

func TestMemoryProductRepository_ListContract(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		p := models.Product{
			ProductName: fmt.Sprintf("Gadget %d", i),
			Category:    "Electronics",
			Stock:       1,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		assert.NoError(t, repo.Create(&p))
	}
	hidden := models.Product{ProductName: "Ghost Gadget", Category: "Electronics", Stock: 0}
	assert.NoError(t, repo.Create(&hidden))

	products, total, err := repo.List(models.ListFilter{Limit: 2, Skip: 1, Category: models.CategoryAll})
	assert.NoError(t, err)
	assert.Equal(t, int64(4), total) // out-of-stock product is invisible
	assert.Len(t, products, 2)
	assert.Equal(t, "Gadget 2", products[0].ProductName)
	assert.Equal(t, "Gadget 1", products[1].ProductName)

	products, total, err = repo.List(models.ListFilter{Limit: 10, Category: models.CategoryAll, Query: "gadget 3"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, products, 1)
	assert.Equal(t, "Gadget 3", products[0].ProductName)

	products, total, err = repo.List(models.ListFilter{Limit: 10, Category: "Furniture"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, products)
}

func TestMemoryProductRepository_UpdateAndSetDeleted(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()

	p := models.Product{ProductName: "Gadget", Brand: "Acme", Stock: 3}
	assert.NoError(t, repo.Create(&p))
	assert.NotEmpty(t, p.ID)

	updated, err := repo.Update(p.ID, models.ProductInput{ProductName: "Widget", Stock: 1})
	assert.NoError(t, err)
	assert.Equal(t, "Widget", updated.ProductName)
	assert.Equal(t, "", updated.Brand) // overwritten with the zero value
	assert.Nil(t, updated.Image)

	deleted, err := repo.SetDeleted(p.ID)
	assert.NoError(t, err)
	assert.True(t, deleted.IsDeleted)

	again, err := repo.SetDeleted(p.ID)
	assert.NoError(t, err)
	assert.True(t, again.IsDeleted)

	// Still retrievable by ID after deletion
	got, err := repo.GetByID(p.ID)
	assert.NoError(t, err)
	assert.True(t, got.IsDeleted)

	_, err = repo.Update("missing-id", models.ProductInput{ProductName: "Nothing"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = repo.SetDeleted("missing-id")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
