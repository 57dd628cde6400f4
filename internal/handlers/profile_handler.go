package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"gerai/internal/middleware"
	"gerai/internal/services"
)

// ProfileHandler handles HTTP requests for the authenticated user's profile.
type ProfileHandler struct {
	authService *services.AuthService
	uploadDir   string
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(authService *services.AuthService, uploadDir string) *ProfileHandler {
	return &ProfileHandler{
		authService: authService,
		uploadDir:   uploadDir,
	}
}

// RegisterRoutes registers the profile routes; both require authentication.
func (h *ProfileHandler) RegisterRoutes(protected fiber.Router) {
	protected.Get("/profile", h.HandleGetProfile)
	protected.Put("/profile/image", h.HandleUpdateProfileImage)
}

// HandleGetProfile returns the user behind the request's identity.
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	ident := middleware.IdentityFromCtx(c)

	user, err := h.authService.GetProfile(ident.UserID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  false,
				"message": "User not found",
				"data":    nil,
			})
		}
		log.Printf("Error fetching profile for user %s: %v", ident.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  false,
			"message": "Error fetching profile",
			"data":    err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  true,
		"message": "Profile fetched successfully",
		"data":    user,
	})
}

// HandleUpdateProfileImage stores an uploaded image and overwrites the
// user's profile image path. The image file is required here.
func (h *ProfileHandler) HandleUpdateProfileImage(c *fiber.Ctx) error {
	ident := middleware.IdentityFromCtx(c)

	file, err := c.FormFile("image")
	if err != nil || file == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  false,
			"message": "An image file is required",
			"data":    nil,
		})
	}

	path, err := saveUpload(c, h.uploadDir, file)
	if err != nil {
		log.Printf("Error saving profile image for user %s: %v", ident.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  false,
			"message": "Error updating profile image",
			"data":    err.Error(),
		})
	}

	user, err := h.authService.UpdateProfileImage(ident.UserID, path)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  false,
				"message": "User not found",
				"data":    nil,
			})
		}
		log.Printf("Error updating profile image for user %s: %v", ident.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  false,
			"message": "Error updating profile image",
			"data":    err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  true,
		"message": "Profile image updated successfully",
		"data":    user,
	})
}
