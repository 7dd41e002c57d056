package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/nano-blog/backend/internal/auth"
	"github.com/anonto42/nano-blog/backend/internal/router"
	"github.com/anonto42/nano-blog/backend/pkg/config"
	"github.com/anonto42/nano-blog/backend/pkg/events"
	"github.com/anonto42/nano-blog/backend/pkg/firebase"
	"github.com/labstack/echo/v4"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
	log.Println("Server shut down.")
}

// run returns instead of exiting so deferred closes always happen
func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Initialize database connection
	db, err := config.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer db.CloseDB()

	deps := router.Deps{
		DB:     db.Gorm,
		Tokens: auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL),
	}

	ctx := context.Background()
	if cfg.FirebaseCredentialsPath != "" {
		client, err := firebase.NewAuthClient(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			return fmt.Errorf("initialize Firebase: %w", err)
		}
		deps.Firebase = client
	}

	if cfg.NATSURL != "" {
		conn, err := events.Connect(cfg.NATSURL, 10, 2*time.Second)
		if err != nil {
			return err
		}
		defer conn.Close()
		deps.Publisher = events.NewNATSPublisher(conn, cfg.NATSSubject)
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	config.SetupMiddleware(e, cfg)
	if err := router.SetupRoutes(e, deps); err != nil {
		return fmt.Errorf("set up routes: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-quit:
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
