package handlers

import (
	"net/http"

	"github.com/anonto42/nano-blog/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles HTTP requests related to following users
type FollowHandler struct {
	interactions *services.InteractionService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(interactions *services.InteractionService) *FollowHandler {
	return &FollowHandler{interactions: interactions}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/users/:username/followers", h.GetFollowers)
	g.GET("/users/:username/following", h.GetFollowing)
	g.POST("/follow/:username", h.FollowUser, requireAuth)
	g.DELETE("/unfollow/:username", h.UnfollowUser, requireAuth)
}

// FollowUser toggles whether the current user follows :username
func (h *FollowHandler) FollowUser(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	following, err := h.interactions.ToggleFollow(c.Request().Context(), userID, c.Param("username"))
	if err != nil {
		return err
	}

	if following {
		return c.JSON(http.StatusOK, echo.Map{"message": "Now following"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Unfollowed"})
}

// UnfollowUser handles unfollowing a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.interactions.Unfollow(c.Request().Context(), userID, c.Param("username")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Unfollowed successfully!"})
}

// GetFollowers lists the users following :username
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	users, err := h.interactions.Followers(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"followers": users})
}

// GetFollowing lists the users :username follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	users, err := h.interactions.Following(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"following": users})
}
