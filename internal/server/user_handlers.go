package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
// @Summary Current user profile
// @Description Returns the caller's record including friends and pending requests.
// @Tags users
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.lookupService.GetProfile(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// SearchByCode handles GET /api/users/search?code=...
// @Summary Find users by public code
// @Description Case-insensitive substring match on public codes. The caller is never returned.
// @Tags users
// @Produce json
// @Param code query string true "Code fragment"
// @Success 200 {array} models.CandidateView
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/search [get]
func (s *Server) SearchByCode(c *fiber.Ctx) error {
	candidates, err := s.lookupService.FindByCode(c.UserContext(), currentUserID(c), c.Query("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(candidates)
}
