package server

import (
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed
// @Summary Get the home feed
// @Description Returns recent posts from the caller and everyone they follow,
// @Description newest first. Pass the returned next_cursor to fetch the next page.
// @Tags feed
// @Produce json
// @Param cursor query string false "Cursor from a previous page"
// @Param limit query int false "Page size (max 50)"
// @Success 200 {object} service.FeedPage
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /feed [get]
func (s *Server) GetFeed(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	page, err := s.feedService.GetFeed(c.Context(), service.GetFeedInput{
		ViewerID: userID,
		Cursor:   c.Query("cursor"),
		Limit:    c.QueryInt("limit", 0),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(page)
}
