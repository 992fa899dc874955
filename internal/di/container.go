package di

import (
	"context"
	"fmt"

	"github.com/GoArmGo/SnapShowdown/internal/adapter/storage/local"
	"github.com/GoArmGo/SnapShowdown/internal/adapter/storage/minio"
	"github.com/GoArmGo/SnapShowdown/internal/app"
	"github.com/GoArmGo/SnapShowdown/internal/config"
	"github.com/GoArmGo/SnapShowdown/internal/core/ports"
	"github.com/GoArmGo/SnapShowdown/internal/database/client"
	"github.com/GoArmGo/SnapShowdown/internal/database/postgres"
	"github.com/GoArmGo/SnapShowdown/internal/database/storage"
	"github.com/GoArmGo/SnapShowdown/internal/handler"
	"github.com/GoArmGo/SnapShowdown/internal/logger"
	"github.com/GoArmGo/SnapShowdown/internal/rabbitmq"
	"github.com/GoArmGo/SnapShowdown/internal/usecase"
)

// BuildApp initializes all dependencies and returns the assembled App.
func BuildApp() (*app.App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	if err := postgres.ApplyMigrations(cfg.DatabaseURL, slogger); err != nil {
		return nil, err
	}

	userStorage := storage.NewUserStorage(dbClient.Gorm, slogger)
	photoStorage := storage.NewPhotoStorage(dbClient.Gorm, slogger)
	commentStorage := storage.NewCommentStorage(dbClient.Gorm, slogger)
	notificationStorage := storage.NewNotificationStorage(dbClient.Gorm, slogger)
	voteLedger := storage.NewVoteLedgerStorage(dbClient.DB, slogger)

	var fileStorage usecase.FileStorage
	switch cfg.StorageBackend {
	case "s3":
		fileStorage, err = minio.NewMinioClient(cfg, slogger)
		if err != nil {
			return nil, err
		}
	case "local":
		fileStorage, err = local.NewStorage(cfg.UploadDir, slogger)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
	}

	// The broker is optional. Without it notifications still land in the
	// database; only the out-of-band relay is disabled.
	var notificationPublisher ports.NotificationPublisher
	var notificationConsumer ports.NotificationConsumer
	if cfg.RabbitMQ.RabbitMQURL != "" {
		rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
		if err != nil {
			return nil, err
		}
		notificationPublisher = rabbitMQClient
		notificationConsumer = rabbitMQClient
	} else {
		slogger.Info("RABBITMQ_URL not set, notification event relay disabled")
	}

	notificationUseCase := usecase.NewNotificationUseCase(notificationStorage, notificationPublisher, slogger)
	identityUseCase := usecase.NewIdentityUseCase(userStorage, fileStorage, slogger)

	if err := identityUseCase.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return nil, err
	}
	moderationUseCase := usecase.NewModerationUseCase(userStorage, photoStorage, fileStorage, notificationUseCase, slogger)
	voteUseCase := usecase.NewVoteUseCase(userStorage, photoStorage, voteLedger, notificationUseCase, slogger)
	commentUseCase := usecase.NewCommentUseCase(userStorage, photoStorage, commentStorage, notificationUseCase, slogger)
	queryUseCase := usecase.NewQueryUseCase(userStorage, photoStorage, voteLedger, commentStorage, slogger)

	authenticator := handler.NewAuthenticator(identityUseCase, cfg.JWTSecret, slogger)

	application := app.NewApp(
		cfg,
		slogger,
		dbClient,
		identityUseCase,
		moderationUseCase,
		voteUseCase,
		commentUseCase,
		queryUseCase,
		notificationUseCase,
		authenticator,
		notificationConsumer,
	)

	slogger.Info("all dependencies initialized")
	return application, nil
}
