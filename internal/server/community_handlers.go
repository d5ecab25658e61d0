package server

import "github.com/gofiber/fiber/v2"

// GetCommunities handles GET /communities. The catalog is small and static
// so it is served from cache when available.
func (s *Server) GetCommunities(c *fiber.Ctx) error {
	communities, err := s.communityService.ListAll(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(communities)
}
