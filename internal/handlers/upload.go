package handlers

import (
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// saveUpload stores an uploaded file under dir with a random name and
// returns the server-side path.
func saveUpload(c *fiber.Ctx, dir string, file *multipart.FileHeader) (string, error) {
	filename := uuid.New().String() + filepath.Ext(file.Filename)
	path := filepath.Join(dir, filename)
	if err := c.SaveFile(file, path); err != nil {
		return "", fmt.Errorf("failed to save uploaded file: %w", err)
	}
	return path, nil
}
