package container

import (
	"fmt"

	"github.com/gdugdh24/matrimony-backend/internal/config"
	"github.com/gdugdh24/matrimony-backend/internal/delivery/http"
	"github.com/gdugdh24/matrimony-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/matrimony-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/matrimony-backend/internal/infrastructure/database"
	"github.com/gdugdh24/matrimony-backend/internal/infrastructure/notifier"
	"github.com/gdugdh24/matrimony-backend/internal/infrastructure/server"
	"github.com/gdugdh24/matrimony-backend/internal/repository/postgres"
	redisrepo "github.com/gdugdh24/matrimony-backend/internal/repository/redis"
	"github.com/gdugdh24/matrimony-backend/internal/usecase/auth"
	"github.com/gdugdh24/matrimony-backend/internal/usecase/match"
	"github.com/gdugdh24/matrimony-backend/internal/usecase/profile"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg.Database.AutoMigrate {
		if err := runMigrations(cfg, logger); err != nil {
			return nil, err
		}
	}

	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	otpRepo := redisrepo.NewOTPRepository(redisClient)

	// Initialize use cases
	authUseCase := auth.NewAuthUseCase(
		userRepo,
		otpRepo,
		newNotifier(cfg, logger),
		cfg.JWT.Secret,
		cfg.JWT.Expiry(),
		cfg.OTP.TTL(),
		logger,
	)
	profileUseCase := profile.NewProfileUseCase(profileRepo, logger)
	matchUseCase := match.NewMatchUseCase(matchRepo, logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)
	matchHandler := handler.NewMatchHandler(matchUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase, logger)

	// Initialize router
	router := http.NewRouter(
		authHandler,
		profileHandler,
		matchHandler,
		authMiddleware,
		cfg.CORS.AllowedOrigins,
		logger,
	)

	srv := server.NewServer(&cfg.Server, router.Setup(), logger)

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
	}, nil
}

func newNotifier(cfg *config.Config, logger *zap.Logger) auth.Notifier {
	if cfg.SMTP.Host == "" {
		logger.Warn("SMTP is not configured, OTP codes will only be logged")
		return notifier.NewLogNotifier(logger)
	}
	return notifier.NewSMTPNotifier(cfg.SMTP, logger)
}

func runMigrations(cfg *config.Config, logger *zap.Logger) error {
	migrator, err := database.NewMigrator(cfg.Database.GetURL(), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize migrator: %w", err)
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			logger.Warn("failed to close migrator", zap.Error(err))
		}
	}()

	if err := migrator.Up(); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("error closing redis", zap.Error(err))
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
