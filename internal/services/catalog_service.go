package services

import (
	"fmt"
	"log"

	"gerai/internal/models"
	"gerai/internal/repositories"
)

// EventPublisher publishes catalog change events to the message broker.
type EventPublisher interface {
	PublishProductEvent(event string, payload map[string]interface{}) error
}

// CatalogService translates catalog requests into single repository calls.
// Authorization is enforced here, before any repository mutation, so a
// rejected request never has partial side effects.
type CatalogService struct {
	repo   repositories.ProductRepository
	events EventPublisher // may be nil; publishing is then skipped
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.ProductRepository, events EventPublisher) *CatalogService {
	return &CatalogService{
		repo:   repo,
		events: events,
	}
}

// List returns one page of visible products and the total count of products
// matching the filter.
func (s *CatalogService) List(filter models.ListFilter) ([]models.Product, int64, error) {
	return s.repo.List(filter)
}

// GetByID retrieves a single product by its ID. Soft-deleted and
// out-of-stock products are still retrievable here.
func (s *CatalogService) GetByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// Create persists a new product on behalf of an admin identity.
//
// The image comes from the server-side upload path, not from the payload:
// whatever the client put in the image field is ignored on create. The
// path is nil when no file was attached.
func (s *CatalogService) Create(ident models.Identity, in models.ProductInput, imagePath *string) (*models.Product, error) {
	if !ident.IsAdmin() {
		return nil, ErrUnauthorized
	}

	product := &models.Product{
		ProductName: in.ProductName,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Image:       imagePath,
		Brand:       in.Brand,
		Category:    in.Category,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.publish("product.created", map[string]interface{}{
		"product_id":   product.ID,
		"product_name": product.ProductName,
		"category":     product.Category,
		"stock":        product.Stock,
	})
	return product, nil
}

// Update overwrites the editable fields of the identified product on behalf
// of an admin identity and returns the post-update state. Unlike Create,
// the image field is taken verbatim from the payload.
func (s *CatalogService) Update(ident models.Identity, id string, in models.ProductInput) (*models.Product, error) {
	if !ident.IsAdmin() {
		return nil, ErrUnauthorized
	}
	return s.repo.Update(id, in)
}

// SoftDelete marks the identified product as deleted on behalf of an admin
// identity and returns the post-update state. Deleting an already-deleted
// product succeeds again with the flag still set.
func (s *CatalogService) SoftDelete(ident models.Identity, id string) (*models.Product, error) {
	if !ident.IsAdmin() {
		return nil, ErrUnauthorized
	}

	product, err := s.repo.SetDeleted(id)
	if err != nil {
		return nil, err
	}

	s.publish("product.deleted", map[string]interface{}{
		"product_id": product.ID,
	})
	return product, nil
}

// publish forwards a catalog event to the broker. Publishing is
// fire-and-forget: a failure is logged and never fails the request.
func (s *CatalogService) publish(event string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishProductEvent(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}
