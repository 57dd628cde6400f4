package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gerai/internal/models"
	"gerai/internal/repositories"
	"gerai/internal/services"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(filter models.ListFilter) ([]models.Product, int64, error) {
	args := m.Called(filter)
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(id string, in models.ProductInput) (*models.Product, error) {
	args := m.Called(id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) SetDeleted(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishProductEvent(event string, payload map[string]interface{}) error {
	args := m.Called(event, payload)
	return args.Error(0)
}

var (
	adminIdent    = models.Identity{UserID: "admin-1", Username: "admin", Role: models.RoleAdmin}
	customerIdent = models.Identity{UserID: "cust-1", Username: "customer", Role: models.RoleCustomer}
)

func TestCatalogService_List(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo, nil)

	filter := models.ListFilter{Limit: 3, Skip: 0, Category: models.CategoryAll, Query: ""}
	expected := []models.Product{
		{ID: "1", ProductName: "Hammer", Stock: 5},
		{ID: "2", ProductName: "Saw", Stock: 2},
	}
	mockRepo.On("List", filter).Return(expected, int64(7), nil).Once()

	products, total, err := service.List(filter)
	assert.NoError(t, err)
	assert.Equal(t, expected, products)
	assert.Equal(t, int64(7), total)
	mockRepo.AssertExpectations(t)

	// Transport failures pass through untouched
	mockRepo.On("List", filter).Return([]models.Product{}, int64(0), fmt.Errorf("connection refused")).Once()
	_, _, err = service.List(filter)
	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_GetByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo, nil)

	expected := &models.Product{ID: "1", ProductName: "Hammer", IsDeleted: true, Stock: 0}
	mockRepo.On("GetByID", "1").Return(expected, nil).Once()

	product, err := service.GetByID("1")
	assert.NoError(t, err)
	assert.Equal(t, expected, product)
	mockRepo.AssertExpectations(t)

	mockRepo.On("GetByID", "99").Return(nil, fmt.Errorf("product with ID 99: %w", repositories.ErrNotFound)).Once()
	product, err = service.GetByID("99")
	assert.Nil(t, product)
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_Create_RequiresAdmin(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewCatalogService(mockRepo, mockEvents)

	_, err := service.Create(customerIdent, models.ProductInput{ProductName: "Hammer"}, nil)
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	// The rejection happens before any side effect
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockEvents.AssertNotCalled(t, "PublishProductEvent", mock.Anything, mock.Anything)
}

func TestCatalogService_Create_UsesUploadPathNotPayloadImage(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewCatalogService(mockRepo, mockEvents)

	clientImage := "https://evil.example/pic.png"
	uploadPath := "uploads/abc123.png"
	in := models.ProductInput{
		ProductName: "Hammer",
		Price:       10,
		Stock:       5,
		Image:       &clientImage, // must be ignored on create
		Category:    "Tools",
	}

	mockRepo.On("Create", mock.MatchedBy(func(p *models.Product) bool {
		return p.Image != nil && *p.Image == uploadPath && !p.IsDeleted
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Product).ID = "prod-1"
	}).Return(nil).Once()
	mockEvents.On("PublishProductEvent", "product.created", mock.Anything).Return(nil).Once()

	product, err := service.Create(adminIdent, in, &uploadPath)
	assert.NoError(t, err)
	assert.Equal(t, "prod-1", product.ID)
	assert.Equal(t, uploadPath, *product.Image)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestCatalogService_Create_WithoutUploadAndPublisher(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo, nil) // nil publisher must be fine

	// Negative stock is stored as supplied, no floor is enforced
	in := models.ProductInput{ProductName: "Hammer", Stock: -4}
	mockRepo.On("Create", mock.MatchedBy(func(p *models.Product) bool {
		return p.Image == nil && p.Stock == -4
	})).Return(nil).Once()

	product, err := service.Create(adminIdent, in, nil)
	assert.NoError(t, err)
	assert.Nil(t, product.Image)
	assert.Equal(t, -4, product.Stock)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_Update(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo, nil)

	in := models.ProductInput{ProductName: "Sledgehammer", Price: 25}

	// Non-admin is rejected before the repository is touched
	_, err := service.Update(customerIdent, "1", in)
	assert.ErrorIs(t, err, services.ErrUnauthorized)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	// Admin update returns the post-update state
	expected := &models.Product{ID: "1", ProductName: "Sledgehammer", Price: 25}
	mockRepo.On("Update", "1", in).Return(expected, nil).Once()
	product, err := service.Update(adminIdent, "1", in)
	assert.NoError(t, err)
	assert.Equal(t, expected, product)
	mockRepo.AssertExpectations(t)

	// Unknown id maps to the not-found sentinel
	mockRepo.On("Update", "99", in).Return(nil, fmt.Errorf("product with ID 99: %w", repositories.ErrNotFound)).Once()
	_, err = service.Update(adminIdent, "99", in)
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_SoftDelete(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewCatalogService(mockRepo, mockEvents)

	// Role check comes before existence
	_, err := service.SoftDelete(customerIdent, "1")
	assert.ErrorIs(t, err, services.ErrUnauthorized)
	mockRepo.AssertNotCalled(t, "SetDeleted", mock.Anything)

	deleted := &models.Product{ID: "1", ProductName: "Hammer", IsDeleted: true}
	mockRepo.On("SetDeleted", "1").Return(deleted, nil).Twice()
	mockEvents.On("PublishProductEvent", "product.deleted", map[string]interface{}{"product_id": "1"}).Return(nil).Twice()

	// Idempotent: deleting twice succeeds both times with the flag set
	for i := 0; i < 2; i++ {
		product, err := service.SoftDelete(adminIdent, "1")
		assert.NoError(t, err)
		assert.True(t, product.IsDeleted)
	}
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)

	// Not found passes through and publishes nothing
	mockRepo.On("SetDeleted", "99").Return(nil, fmt.Errorf("product with ID 99: %w", repositories.ErrNotFound)).Once()
	_, err = service.SoftDelete(adminIdent, "99")
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

// TestCatalogService_PublishFailureDoesNotFailRequest exercises the
// fire-and-forget publish path.
func TestCatalogService_PublishFailureDoesNotFailRequest(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewCatalogService(mockRepo, mockEvents)

	mockRepo.On("Create", mock.Anything).Return(nil).Once()
	mockEvents.On("PublishProductEvent", "product.created", mock.Anything).Return(fmt.Errorf("broker down")).Once()

	_, err := service.Create(adminIdent, models.ProductInput{ProductName: "Hammer"}, nil)
	assert.NoError(t, err)
	mockEvents.AssertExpectations(t)
}

// TestCatalogService_RoundTrip uses the in-memory repository end to end.
func TestCatalogService_RoundTrip(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()
	service := services.NewCatalogService(repo, nil)

	uploadPath := "uploads/widget.png"
	created, err := service.Create(adminIdent, models.ProductInput{
		ProductName: "Widget",
		Price:       10,
		Stock:       5,
		Category:    "Tools",
	}, &uploadPath)
	assert.NoError(t, err)

	fetched, err := service.GetByID(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Widget", fetched.ProductName)
	assert.Equal(t, 10.0, fetched.Price)
	assert.Equal(t, 5, fetched.Stock)
	assert.Equal(t, "Tools", fetched.Category)
	assert.Equal(t, uploadPath, *fetched.Image)

	products, total, err := service.List(models.ListFilter{Limit: 3, Category: "Tools"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, products, 1)
	assert.Equal(t, created.ID, products[0].ID)

	_, err = service.SoftDelete(adminIdent, created.ID)
	assert.NoError(t, err)

	_, total, err = service.List(models.ListFilter{Limit: 3, Category: "Tools"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)

	// Direct lookup still works after deletion
	fetched, err = service.GetByID(created.ID)
	assert.NoError(t, err)
	assert.True(t, fetched.IsDeleted)
}
