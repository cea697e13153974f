package routes

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/simplebank/simplebank/internal/account"
	"github.com/simplebank/simplebank/internal/config"
	"github.com/simplebank/simplebank/internal/middleware"
	"github.com/simplebank/simplebank/internal/notification"
	"github.com/simplebank/simplebank/internal/transfer"
	"github.com/simplebank/simplebank/internal/user"
)

const maxFailedAuthPerMinute = 10

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	var userRepo user.Repository
	var accountRepo account.Repository
	if d.DB != nil {
		userRepo = user.NewPostgresRepository(d.DB)
		accountRepo = account.NewPostgresRepository(d.DB)
	} else {
		userRepo = user.NewMemoryRepository()
		accountRepo = account.NewMemoryRepository()
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.AuthRateLimit(d.Cache, maxFailedAuthPerMinute))
	}
	app.Use(middleware.Authenticate(d.Cfg, userRepo))

	var idempotency fiber.Handler
	if d.Cache != nil {
		idempotency = middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger)
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Services and handlers
	notifier := notification.NewLoggerNotifier(d.Logger)
	userSvc := user.NewService(userRepo, accountRepo)
	accountSvc := account.NewService(accountRepo)
	transferSvc := transfer.NewService(accountRepo, notifier)

	RegisterUserRoutes(app, user.NewHandler(userSvc))
	RegisterAccountRoutes(app, account.NewHandler(accountSvc), idempotency)
	RegisterTransferRoutes(app, transfer.NewHandler(transferSvc), idempotency)

	return nil
}
