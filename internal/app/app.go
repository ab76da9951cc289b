package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inventory/internal/config"
	"inventory/internal/database"
	"inventory/internal/handlers"
	"inventory/internal/repositories"
	"inventory/internal/services"
	"inventory/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const healthTimeout = 2 * time.Second

// App bundles the HTTP server with the resources it owns.
type App struct {
	Fiber *fiber.App

	db  *gorm.DB
	mq  *rabbitmq.Client
	log *zap.Logger
}

// New wires storage, events, the product service and the HTTP routes.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	a := &App{log: log}

	var repo repositories.ProductRepository
	switch cfg.DatabaseDriver {
	case "memory":
		log.Warn("using in-memory product storage; data is lost on restart")
		repo = repositories.NewMemoryProductRepository()
	default:
		db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN, cfg.DatabaseLogLevel, log)
		if err != nil {
			return nil, err
		}
		a.db = db
		repo = repositories.NewGORMProductRepository(db)
	}

	opts := []services.Option{services.WithLogger(log.Named("products"))}
	if cfg.EventsEnabled() {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue}, log.Named("rabbitmq"))
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.mq = mq
		opts = append(opts, services.WithEvents(mq))
	}

	productService := services.NewProductService(repo, opts...)
	productHandler := handlers.NewProductHandler(productService, log)

	app := fiber.New(fiber.Config{
		AppName:               "inventory",
		DisableStartupMessage: true,
		ErrorHandler:          a.handleError,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSAllowOrigins}))

	api := app.Group("/api")
	productHandler.RegisterRoutes(api)

	app.Get("/health", a.handleHealth)

	a.Fiber = app
	return a, nil
}

func (a *App) handleHealth(c *fiber.Ctx) error {
	status := fiber.StatusOK
	dbState := "up"
	if a.db == nil {
		dbState = "memory"
	} else {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()
		if err := database.Ping(ctx, a.db); err != nil {
			a.log.Warn("database ping failed", zap.Error(err))
			status = fiber.StatusServiceUnavailable
			dbState = "down"
		}
	}

	health := "healthy"
	if status != fiber.StatusOK {
		health = "unhealthy"
	}
	return c.Status(status).JSON(fiber.Map{
		"status":   health,
		"time":     time.Now().Format(time.RFC3339),
		"database": dbState,
	})
}

// handleError renders errors that escaped the handlers, such as unknown routes.
func (a *App) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		a.log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(code).JSON(fiber.Map{
		"message": err.Error(),
	})
}

// Listen serves HTTP on addr until Shutdown is called.
func (a *App) Listen(addr string) error {
	a.log.Info("starting server", zap.String("addr", addr))
	return a.Fiber.Listen(addr)
}

// Shutdown stops the HTTP server and releases the database and broker connections.
func (a *App) Shutdown(timeout time.Duration) error {
	var errs []error
	if err := a.Fiber.ShutdownWithTimeout(timeout); err != nil {
		errs = append(errs, fmt.Errorf("failed to shut down http server: %w", err))
	}
	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Close releases the database and broker connections.
func (a *App) Close() error {
	var errs []error
	if a.mq != nil {
		if err := a.mq.Close(); err != nil {
			errs = append(errs, err)
		}
		a.mq = nil
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			errs = append(errs, err)
		}
		a.db = nil
	}
	return errors.Join(errs...)
}
