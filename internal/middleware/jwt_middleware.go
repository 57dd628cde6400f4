package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"gerai/internal/models"
	"gerai/internal/services"
)

// IdentityKey is the locals key under which AuthRequired stores the
// authenticated models.Identity.
const IdentityKey = "identity"

// AuthRequired is a Fiber middleware to check for a valid JWT token. On
// success it stores the verified identity in the request locals; handlers
// read it back and pass it into service calls as an explicit argument.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  false,
				"message": "Authorization header is required",
				"data":    nil,
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  false,
				"message": "Authorization header format must be 'Bearer <token>'",
				"data":    nil,
			})
		}

		tokenString := parts[1]

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  false,
				"message": "Invalid or expired token",
				"data":    err.Error(),
			})
		}

		ident := models.Identity{}
		if v, ok := claims["user_id"].(string); ok {
			ident.UserID = v
		}
		if v, ok := claims["username"].(string); ok {
			ident.Username = v
		}
		if v, ok := claims["role"].(string); ok {
			ident.Role = v
		}
		c.Locals(IdentityKey, ident)

		// Continue to the next handler
		return c.Next()
	}
}

// IdentityFromCtx returns the identity stored by AuthRequired, or a zero
// identity when the route was reached without authentication.
func IdentityFromCtx(c *fiber.Ctx) models.Identity {
	ident, _ := c.Locals(IdentityKey).(models.Identity)
	return ident
}
