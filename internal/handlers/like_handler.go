package handlers

import (
	"net/http"

	"github.com/anonto42/nano-blog/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to post and comment likes
type LikeHandler struct {
	interactions *services.InteractionService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(interactions *services.InteractionService) *LikeHandler {
	return &LikeHandler{interactions: interactions}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/posts/:id/likes/count", h.GetLikesCountForPost)
	g.GET("/posts/:id/likes/status", h.GetUserLikeStatusForPost, requireAuth)
	g.POST("/posts/:id/like", h.LikePost, requireAuth)
	g.DELETE("/posts/:id/unlike", h.UnlikePost, requireAuth)
	g.POST("/comments/:id/like", h.LikeComment, requireAuth)
	g.DELETE("/comments/:id/unlike", h.UnlikeComment, requireAuth)
}

// LikePost toggles the current user's like on a post
func (h *LikeHandler) LikePost(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	liked, err := h.interactions.TogglePostLike(c.Request().Context(), postID, userID)
	if err != nil {
		return err
	}

	message := "Post unliked successfully!"
	if liked {
		message = "Post liked successfully!"
	}
	return c.JSON(http.StatusOK, echo.Map{"message": message, "liked": liked})
}

// UnlikePost handles removing a like; it fails when there is none
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.interactions.UnlikePost(c.Request().Context(), postID, userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post unliked successfully!"})
}

// GetLikesCountForPost retrieves the total number of likes for a specific post
func (h *LikeHandler) GetLikesCountForPost(c echo.Context) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	count, err := h.interactions.LikeCount(c.Request().Context(), postID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "likes_count": count})
}

// GetUserLikeStatusForPost checks if the authenticated user has liked a specific post
func (h *LikeHandler) GetUserLikeStatusForPost(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	hasLiked, err := h.interactions.HasLiked(c.Request().Context(), postID, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "user_id": userID, "has_liked": hasLiked})
}

// LikeComment toggles the current user's like on a comment
func (h *LikeHandler) LikeComment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	commentID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	liked, err := h.interactions.ToggleCommentLike(c.Request().Context(), commentID, userID)
	if err != nil {
		return err
	}

	message := "Comment unliked successfully!"
	if liked {
		message = "Comment liked successfully!"
	}
	return c.JSON(http.StatusOK, echo.Map{"message": message, "liked": liked})
}

func (h *LikeHandler) UnlikeComment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	commentID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.interactions.UnlikeComment(c.Request().Context(), commentID, userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Comment unliked successfully!"})
}
