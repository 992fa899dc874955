package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/GoArmGo/SnapShowdown/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// runServer starts the HTTP server and blocks until the context is cancelled.
func (a *App) runServer(ctx context.Context) error {
	cfg := a.Config

	authHandler := handler.NewAuthHandler(a.identity, a.authenticator, cfg.TokenTTL, a.logger)
	photoHandler := handler.NewPhotoHandler(a.moderation, a.votes, a.comments, a.queries, cfg.MaxUploadBytes, a.logger)
	adminHandler := handler.NewAdminHandler(a.moderation, a.queries, a.logger)
	notificationHandler := handler.NewNotificationHandler(a.notifications, a.logger)
	profileHandler := handler.NewProfileHandler(a.identity, a.queries, cfg.MaxUploadBytes, a.logger)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(handler.RequestLogger(a.logger))

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		// Public reads. OptionalAuth lets signed-in viewers see their own
		// pending entries and permission flags.
		r.Group(func(r chi.Router) {
			r.Use(a.authenticator.OptionalAuth)
			r.Get("/gallery", photoHandler.Gallery)
			r.Get("/leaderboard", photoHandler.Leaderboard)
			r.Get("/winners", photoHandler.Winners)
			r.Get("/photos/{id}", photoHandler.Detail)
			r.Get("/photos/{id}/comments", photoHandler.ListComments)
		})

		// Authenticated mutations.
		r.Group(func(r chi.Router) {
			r.Use(a.authenticator.RequireAuth)

			r.Post("/photos", photoHandler.Submit)
			r.Patch("/photos/{id}", photoHandler.Update)
			r.Post("/photos/{id}/vote", photoHandler.Vote)
			r.Post("/photos/{id}/comments", photoHandler.PostComment)

			r.Get("/profile", profileHandler.Get)
			r.Patch("/profile", profileHandler.Update)
			r.Post("/profile/picture", profileHandler.UploadPicture)

			r.Get("/notifications", notificationHandler.ListUnread)
			r.Post("/notifications/{id}/read", notificationHandler.MarkRead)
			r.Post("/notifications/read-all", notificationHandler.MarkAllRead)

			r.Route("/admin", func(r chi.Router) {
				r.Get("/photos", adminHandler.ListByStatus)
				r.Post("/photos/{id}/approve", adminHandler.Approve)
				r.Post("/photos/{id}/reject", adminHandler.Reject)
				r.Post("/photos/{id}/revert", adminHandler.Revert)
			})
		})
	})

	// Uploaded files are served directly when the local backend is active.
	if cfg.StorageBackend == "local" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutdown signal received, stopping server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.logger.Info("server stopped")
	return nil
}
