package server

import (
	"github.com/gofiber/fiber/v2"

	"homiee/internal/service"
)

// Signup handles POST /signup.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		FirstName string   `json:"firstName"`
		LastName  string   `json:"lastName"`
		UserName  string   `json:"userName"`
		Email     string   `json:"email"`
		Password  string   `json:"password"`
		Hobbies   []string `json:"hobbies"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondServiceError(c, invalidBody())
	}

	_, err := s.accountService.Signup(c.UserContext(), service.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		UserName:  req.UserName,
		Email:     req.Email,
		Password:  req.Password,
		Hobbies:   req.Hobbies,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Signup successful!",
	})
}

// Login handles POST /login.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondServiceError(c, invalidBody())
	}

	result, err := s.accountService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
