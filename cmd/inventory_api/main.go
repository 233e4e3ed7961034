package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/DeveloperWK/product-inventory-api/internal/core/services"
	"github.com/DeveloperWK/product-inventory-api/internal/handlers"
	"github.com/DeveloperWK/product-inventory-api/internal/middleware"
	"github.com/DeveloperWK/product-inventory-api/internal/platform/cache"
	"github.com/DeveloperWK/product-inventory-api/internal/platform/courier"
	"github.com/DeveloperWK/product-inventory-api/internal/repositories/database/pgsql"
	"github.com/DeveloperWK/product-inventory-api/pkg/config"
	"github.com/DeveloperWK/product-inventory-api/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/DeveloperWK/product-inventory-api/internal/core/ports/services"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	runMigrations(logger, cfg.DatabaseURL)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Warn("Invalid RATE_LIMIT value, falling back to 100-M", slog.String("value", cfg.RateLimit))
		rate, _ = limiter.NewRateFromFormatted("100-M")
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterCustomValidators()

	// Optional outbound integrations. Either may be absent in a deployment;
	// the services tolerate a nil courier and a nil cache.
	var courierClient portssvc.CourierBooker
	if cfg.CourierURI != "" {
		courierClient = courier.NewClient(cfg.CourierURI, cfg.CourierAPIKey, cfg.CourierSecretKey)
		logger.Info("Courier client configured", slog.String("base_url", cfg.CourierURI))
	}

	var reportingCache portssvc.Cache
	if cfg.RedisURL != "" {
		reportingCache, err = cache.NewRedisCache(context.Background(), cfg.RedisURL)
		if err != nil {
			logger.Warn("Redis unavailable, reporting cache disabled", slog.String("error", err.Error()))
			reportingCache = nil
		}
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, courierClient, reportingCache)

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending up migrations before the server accepts
// traffic. Uses a temporary database/sql connection via the pgx stdlib
// driver so migrate and the main pool share one driver.
func runMigrations(logger *slog.Logger, databaseURL string) {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		os.Exit(1)
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		os.Exit(1)
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
}
