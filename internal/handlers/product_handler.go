package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"gerai/internal/middleware"
	"gerai/internal/models"
	"gerai/internal/services"
)

// ProductHandler handles HTTP requests for the product catalog. Every
// response uses the {status, message, data} envelope; listings additionally
// carry total, limit, and skip.
type ProductHandler struct {
	service   *services.CatalogService
	validate  *validator.Validate
	uploadDir string
}

// NewProductHandler creates a new ProductHandler. uploadDir is where
// product image uploads are stored.
func NewProductHandler(service *services.CatalogService, uploadDir string) *ProductHandler {
	return &ProductHandler{
		service:   service,
		validate:  validator.New(),
		uploadDir: uploadDir,
	}
}

// RegisterRoutes registers the product routes. Listing and detail are
// public; mutations require an authenticated identity, so they go on the
// protected router.
func (h *ProductHandler) RegisterRoutes(public fiber.Router, protected fiber.Router) {
	public.Get("/products", h.HandleListProducts)
	public.Get("/products/:id", h.HandleGetProductByID)
	protected.Post("/products", h.HandleCreateProduct)
	protected.Put("/products/:id", h.HandleUpdateProduct)
	protected.Delete("/products/:id", h.HandleDeleteProduct)
}

// HandleListProducts lists visible products with pagination and optional
// category and name filters. Defaults: limit=3, skip=0, category=All, q="".
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	filter := models.ListFilter{
		Limit:    c.QueryInt("limit", 3),
		Skip:     c.QueryInt("skip", 0),
		Category: c.Query("category", models.CategoryAll),
		Query:    c.Query("q", ""),
	}

	products, total, err := h.service.List(filter)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  false,
			"message": "Failed to list products",
			"data":    err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  true,
		"message": "Products listed successfully",
		"data":    products,
		"total":   total,
		"limit":   filter.Limit,
		"skip":    filter.Skip,
	})
}

// HandleGetProductByID fetches a single product by ID. Soft-deleted and
// out-of-stock products are still returned here.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id := c.Params("id")

	product, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  false,
				"message": "Product not found",
				"data":    nil,
			})
		}
		log.Printf("Error fetching product %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  false,
			"message": "Error fetching product",
			"data":    err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  true,
		"message": "Product fetched successfully",
		"data":    product,
	})
}

// HandleCreateProduct creates a product from a multipart form. The image
// field of the payload is ignored; the stored image path comes from the
// optional uploaded file.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var in models.ProductInput
	if err := c.BodyParser(&in); err != nil {
		log.Printf("Error parsing create product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  false,
			"message": services.ErrInvalidInput.Error(),
			"data":    err.Error(),
		})
	}

	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  false,
			"message": services.ErrInvalidInput.Error(),
			"data":    validationMessages(err),
		})
	}

	// The upload is stored before the role check, mirroring upload
	// middleware that runs ahead of the controller.
	var imagePath *string
	if file, err := c.FormFile("image"); err == nil && file != nil {
		path, saveErr := saveUpload(c, h.uploadDir, file)
		if saveErr != nil {
			log.Printf("Error saving product image: %v", saveErr)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  false,
				"message": "Error creating product",
				"data":    saveErr.Error(),
			})
		}
		imagePath = &path
	}

	product, err := h.service.Create(middleware.IdentityFromCtx(c), in, imagePath)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  false,
				"message": "User not authorized",
				"data":    nil,
			})
		}
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  false,
			"message": "Error creating product",
			"data":    err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  true,
		"message": "Product created successfully",
		"data":    product,
	})
}

// HandleUpdateProduct overwrites the editable fields of a product. Unlike
// create, the image path is taken verbatim from the payload.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	var in models.ProductInput
	if err := c.BodyParser(&in); err != nil {
		log.Printf("Error parsing update product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  false,
			"message": services.ErrInvalidInput.Error(),
			"data":    err.Error(),
		})
	}

	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  false,
			"message": services.ErrInvalidInput.Error(),
			"data":    validationMessages(err),
		})
	}

	product, err := h.service.Update(middleware.IdentityFromCtx(c), id, in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  false,
				"message": "User not authorized",
				"data":    nil,
			})
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  false,
				"message": "Product not found",
				"data":    nil,
			})
		}
		log.Printf("Error updating product %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  false,
			"message": "Error updating product",
			"data":    err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  true,
		"message": "Product updated successfully",
		"data":    product,
	})
}

// HandleDeleteProduct soft deletes a product. The record stays retrievable
// by ID afterwards, it just disappears from listings.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	product, err := h.service.SoftDelete(middleware.IdentityFromCtx(c), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  false,
				"message": "User not authorized",
				"data":    nil,
			})
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  false,
				"message": "Product not found",
				"data":    nil,
			})
		}
		log.Printf("Error soft deleting product %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  false,
			"message": "Error soft deleting product",
			"data":    err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  true,
		"message": "Product soft deleted successfully",
		"data":    product,
	})
}

// validationMessages flattens validator errors into a field → message map.
func validationMessages(err error) map[string]string {
	messages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			messages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return messages
}
