package router

import (
	"fmt"
	"log"

	"github.com/anonto42/nano-blog/backend/internal/auth"
	"github.com/anonto42/nano-blog/backend/internal/handlers"
	"github.com/anonto42/nano-blog/backend/internal/middleware"
	"github.com/anonto42/nano-blog/backend/internal/models"
	"github.com/anonto42/nano-blog/backend/internal/services"
	"github.com/anonto42/nano-blog/backend/internal/validators"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Deps are the handles the routes are built from
type Deps struct {
	DB     *gorm.DB
	Tokens *auth.TokenManager

	// Firebase enables POST /login/firebase when set
	Firebase services.IDTokenVerifier

	// Publisher receives committed notifications; nil drops them
	Publisher services.NotificationPublisher
}

// SetupRoutes migrates the schema, wires services into handlers and registers every route
func SetupRoutes(e *echo.Echo, deps Deps) error {
	if err := models.AutoMigrate(deps.DB); err != nil {
		return fmt.Errorf("auto migrate models: %w", err)
	}
	log.Println("Auto-migrations completed for all models.")

	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.HTTPErrorHandler

	e.GET("/", handlers.Home)
	e.GET("/health", handlers.HealthCheck(deps.DB))

	// --- Initialize Services ---
	authService := services.NewAuthService(deps.DB, deps.Tokens)
	if deps.Firebase != nil {
		authService.WithFirebase(deps.Firebase)
	}
	notificationService := services.NewNotificationService(deps.DB, deps.Publisher)
	postService := services.NewPostService(deps.DB)
	commentService := services.NewCommentService(deps.DB)
	interactionService := services.NewInteractionService(deps.DB, notificationService)

	root := e.Group("")
	requireAuth := middleware.JWTAuthMiddleware(deps.Tokens)

	handlers.NewAuthHandler(authService).RegisterAuthRoutes(root)
	log.Println("Auth routes configured.")

	handlers.NewPostHandler(postService).RegisterPostRoutes(root, requireAuth)
	log.Println("Post routes configured.")

	handlers.NewCommentHandler(commentService).RegisterCommentRoutes(root, requireAuth)
	log.Println("Comment routes configured.")

	handlers.NewLikeHandler(interactionService).RegisterLikeRoutes(root, requireAuth)
	log.Println("Like routes configured.")

	handlers.NewFollowHandler(interactionService).RegisterFollowRoutes(root, requireAuth)
	log.Println("Follow routes configured.")

	handlers.NewNotificationHandler(notificationService).RegisterNotificationRoutes(root, requireAuth)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
	return nil
}
