package server

import (
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"homiee/internal/models"
	"homiee/internal/service"
)

// parsePostID extracts the postId route parameter as a positive uint.
func parsePostID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("postId")
	if err != nil || id <= 0 {
		return 0, models.NewValidationError("Invalid post ID")
	}
	return uint(id), nil
}

// parseFormPostID parses the postId form value as a positive uint.
func parseFormPostID(raw string) (uint, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, models.NewValidationError("Invalid post ID")
	}
	return uint(id), nil
}

// callerEmail returns the authenticated caller's email from request locals.
func callerEmail(c *fiber.Ctx) string {
	if email, ok := c.Locals("userEmail").(string); ok {
		return email
	}
	return ""
}

// readFilePart buffers a multipart file header into a service.FilePart.
func readFilePart(field string, header *multipart.FileHeader) (*service.FilePart, error) {
	f, err := header.Open()
	if err != nil {
		return nil, models.NewUploadError("Failed to read uploaded file", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, models.NewUploadError("Failed to read uploaded file", err)
	}

	return &service.FilePart{
		Field:       field,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     data,
	}, nil
}

// formFilePart returns the first file uploaded under the field, or nil when
// the request carries no such file.
func formFilePart(c *fiber.Ctx, field string) (*service.FilePart, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	return readFilePart(field, header)
}

// invalidBody is the error returned when a request body cannot be parsed.
func invalidBody() error {
	return models.NewValidationError("Invalid request body")
}

// respondServiceError maps an application error to its HTTP status.
func respondServiceError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}
