package server

import (
	"github.com/gofiber/fiber/v2"

	"homiee/internal/models"
)

// GetChat handles GET /communities/:name/chat. A community with no messages
// yet yields an empty thread rather than a 404.
func (s *Server) GetChat(c *fiber.Ctx) error {
	thread, err := s.chatService.GetThread(c.UserContext(), c.Params("name"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(thread)
}

// PostChatMessage handles POST /communities/:name/chat.
func (s *Server) PostChatMessage(c *fiber.Ctx) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondServiceError(c, invalidBody())
	}

	msg, err := s.chatService.PostMessage(c.UserContext(), c.Params("name"), callerEmail(c), body.Message)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":    "Chat message added successfully",
		"newMessage": msg,
	})
}

// PostChatFile handles POST /communities/:name/chat/file.
func (s *Server) PostChatFile(c *fiber.Ctx) error {
	part, err := formFilePart(c, "file")
	if err != nil {
		return respondServiceError(c, err)
	}
	if part == nil {
		return respondServiceError(c, models.NewValidationError("No file uploaded"))
	}

	msg, err := s.chatService.PostFile(c.UserContext(), c.Params("name"), callerEmail(c), *part)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":    "File uploaded successfully",
		"newMessage": msg,
	})
}

// PostChatAudio handles POST /communities/:name/chat/audio.
func (s *Server) PostChatAudio(c *fiber.Ctx) error {
	part, err := formFilePart(c, "audio")
	if err != nil {
		return respondServiceError(c, err)
	}
	if part == nil {
		return respondServiceError(c, models.NewValidationError("No audio file uploaded"))
	}

	msg, err := s.chatService.PostAudio(c.UserContext(), c.Params("name"), callerEmail(c), *part)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":    "Audio message uploaded successfully",
		"newMessage": msg,
	})
}
