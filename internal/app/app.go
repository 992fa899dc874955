package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/SnapShowdown/internal/config"
	"github.com/GoArmGo/SnapShowdown/internal/core/ports"
	"github.com/GoArmGo/SnapShowdown/internal/database/client"
	"github.com/GoArmGo/SnapShowdown/internal/handler"
	"github.com/GoArmGo/SnapShowdown/internal/usecase"
)

// App wires the configured dependencies and runs either the HTTP server or
// the notification worker.
type App struct {
	Config *config.Config
	logger *slog.Logger

	dbClient *client.Client

	identity      usecase.IdentityUseCase
	moderation    usecase.ModerationUseCase
	votes         usecase.VoteUseCase
	comments      usecase.CommentUseCase
	queries       usecase.QueryUseCase
	notifications usecase.NotificationUseCase

	authenticator *handler.Authenticator
	consumer      ports.NotificationConsumer
}

func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	dbClient *client.Client,
	identity usecase.IdentityUseCase,
	moderation usecase.ModerationUseCase,
	votes usecase.VoteUseCase,
	comments usecase.CommentUseCase,
	queries usecase.QueryUseCase,
	notifications usecase.NotificationUseCase,
	authenticator *handler.Authenticator,
	consumer ports.NotificationConsumer,
) *App {
	return &App{
		Config:        cfg,
		logger:        logger,
		dbClient:      dbClient,
		identity:      identity,
		moderation:    moderation,
		votes:         votes,
		comments:      comments,
		queries:       queries,
		notifications: notifications,
		authenticator: authenticator,
		consumer:      consumer,
	}
}

// LoggerIns returns the application logger.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run starts the application in the given mode and blocks until shutdown.
func (a *App) Run(ctx context.Context, mode *string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting application", "mode", *mode)

	var err error
	switch *mode {
	case "server":
		err = a.runServer(ctx)
	case "worker":
		err = a.runWorker(ctx)
	default:
		err = fmt.Errorf("unknown mode: %s (use 'server' or 'worker')", *mode)
	}
	if err != nil {
		return err
	}

	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown error", "error", closeErr)
	}

	a.logger.Info("application stopped")
	return nil
}

// Shutdown closes the application resources.
func (a *App) Shutdown() error {
	if a.dbClient != nil {
		if err := a.dbClient.Close(); err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
	}

	if closer, ok := a.consumer.(interface{ Close() }); ok {
		closer.Close()
	}

	return nil
}
