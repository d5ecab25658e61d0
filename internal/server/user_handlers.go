package server

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"homiee/internal/models"
	"homiee/internal/service"
)

// GetUsers handles GET /users.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	users, err := s.userRepo.List(c.UserContext(), 0, 0)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}

// GetUserByEmail handles GET /users/:email.
func (s *Server) GetUserByEmail(c *fiber.Ctx) error {
	email := c.Params("email")

	user, err := s.userRepo.GetByEmailCached(c.UserContext(), email)
	if err != nil {
		return respondServiceError(c, err)
	}
	if user == nil {
		return respondServiceError(c, models.NewNotFoundMessage("User not found"))
	}
	return c.JSON(user)
}

// UpdateUsers handles PUT /users. It is a multipart dispatch endpoint: the
// form fields decide whether the request is a like, a comment, a new post, or
// a profile update.
func (s *Server) UpdateUsers(c *fiber.Ctx) error {
	email := c.FormValue("email")
	if email == "" {
		return respondServiceError(c, models.NewValidationError("Email is required."))
	}
	if email != callerEmail(c) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewAuthError("You can only modify your own profile"))
	}

	ctx := c.UserContext()
	postID := c.FormValue("postId")
	like := c.FormValue("like")
	commentJSON := c.FormValue("comment")
	postJSON := c.FormValue("post")

	// Like updates
	if postID != "" && like != "" {
		id, err := parseFormPostID(postID)
		if err != nil {
			return respondServiceError(c, err)
		}
		if err := s.profileService.Like(ctx, email, id, like == "true"); err != nil {
			return respondServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Like updated successfully!"})
	}

	// Comment additions
	if postID != "" && commentJSON != "" {
		id, err := parseFormPostID(postID)
		if err != nil {
			return respondServiceError(c, err)
		}
		var body struct {
			User models.SenderSnapshot `json:"user"`
			Text string                `json:"text"`
		}
		if err := json.Unmarshal([]byte(commentJSON), &body); err != nil {
			return respondServiceError(c, models.NewValidationError("Invalid comment data format"))
		}
		comment, err := s.profileService.AddCommentScoped(ctx, email, id, body.User, body.Text)
		if err != nil {
			return respondServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"message": "Comment added successfully!",
			"comment": comment,
		})
	}

	// Profile fields may ride alongside a new post in the same form.
	in := service.UpdateProfileInput{}
	if description := c.FormValue("description"); description != "" {
		in.Description = &description
	}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if hobbies, ok := form.Value["hobbies"]; ok {
			in.Hobbies = hobbies
		}
	}
	profileImage, err := formFilePart(c, "profileImage")
	if err != nil {
		return respondServiceError(c, err)
	}
	in.ProfileImage = profileImage
	hasProfileFields := in.Description != nil || in.Hobbies != nil || in.ProfileImage != nil

	// New post, optionally combined with a profile update
	if postJSON != "" {
		var body struct {
			Content  string   `json:"content"`
			Hashtags []string `json:"hashtags"`
		}
		if err := json.Unmarshal([]byte(postJSON), &body); err != nil {
			return respondServiceError(c, models.NewValidationError("Invalid post data format"))
		}

		image, err := formFilePart(c, "postImage")
		if err != nil {
			return respondServiceError(c, err)
		}

		post, err := s.profileService.CreatePost(ctx, email, service.CreatePostInput{
			Content:  body.Content,
			Hashtags: body.Hashtags,
			Image:    image,
		})
		if err != nil {
			return respondServiceError(c, err)
		}

		updated := fiber.Map{
			"postAdded": true,
			"mediaUrl":  post.Media,
		}
		if hasProfileFields {
			user, err := s.profileService.UpdateProfile(ctx, email, in)
			if err != nil {
				return respondServiceError(c, err)
			}
			if in.Description != nil {
				updated["description"] = user.Description
			}
			if in.Hobbies != nil {
				updated["hobbies"] = user.Hobbies
			}
			if in.ProfileImage != nil {
				updated["profileImageUrl"] = user.ProfileImage
			}
		}
		return c.JSON(fiber.Map{
			"message": "User updated successfully!",
			"updated": updated,
		})
	}

	// Profile update
	if !hasProfileFields {
		return respondServiceError(c, models.NewValidationError("No valid fields to update."))
	}

	user, err := s.profileService.UpdateProfile(ctx, email, in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "User updated successfully!",
		"updated": fiber.Map{
			"description":     user.Description,
			"hobbies":         user.Hobbies,
			"profileImageUrl": user.ProfileImage,
		},
	})
}

// DeletePost handles DELETE /users/:email/posts/:postId.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	email := c.Params("email")
	if email != callerEmail(c) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewAuthError("You can only delete your own posts"))
	}

	postID, err := parsePostID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := s.profileService.DeletePost(c.UserContext(), email, postID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted successfully!"})
}

// GetUserCommunities handles GET /users/:email/communities.
func (s *Server) GetUserCommunities(c *fiber.Ctx) error {
	communities, err := s.communityService.ForUser(c.UserContext(), c.Params("email"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(communities)
}

// GetUserPosts handles GET /users/:email/posts.
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	posts, err := s.profileService.ListOwnPosts(c.UserContext(), c.Params("email"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}
