package server

import (
	"github.com/gofiber/fiber/v2"

	"homiee/internal/models"
)

// GetPosts handles GET /posts. It returns the global feed, newest first, with
// a shallow author snapshot on each post.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.profileService.ListPosts(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /posts/:postId.
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := parsePostID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	post, err := s.profileService.GetPost(c.UserContext(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// GetPostsForUser handles GET /posts/user/:email. It filters the global feed
// down to posts whose hashtags overlap the user's hobbies.
func (s *Server) GetPostsForUser(c *fiber.Ctx) error {
	posts, err := s.profileService.ListPostsForUser(c.UserContext(), c.Params("email"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetPostsByTag handles GET /posts/tag/:tag.
func (s *Server) GetPostsByTag(c *fiber.Ctx) error {
	posts, err := s.profileService.ListByHashtag(c.UserContext(), c.Params("tag"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// LikePost handles PUT /posts/:postId/like. Any authenticated user can like
// or unlike any post; the counter never drops below zero.
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := parsePostID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var body struct {
		Like bool `json:"like"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondServiceError(c, invalidBody())
	}

	if err := s.profileService.LikeAny(c.UserContext(), postID, body.Like); err != nil {
		return respondServiceError(c, err)
	}

	message := "Post unliked"
	if body.Like {
		message = "Post liked"
	}
	return c.JSON(fiber.Map{"message": message})
}

// CreateComment handles POST /posts/:postId/comment. The comment's sender
// snapshot is resolved from the authenticated caller.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := parsePostID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondServiceError(c, invalidBody())
	}
	if body.Text == "" {
		return respondServiceError(c, models.NewValidationError("Comment text is required"))
	}

	comment, err := s.profileService.AddComment(c.UserContext(), postID, callerEmail(c), body.Text)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Comment added successfully",
		"comment": comment,
	})
}
